package rpc

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/alder-network/alder/lib"
	"github.com/alder-network/alder/lib/crypto"
	"github.com/cenkalti/backoff/v4"
)

// Client is a Go wrapper over the Alder RPC surface
type Client struct {
	rpcURL    string
	rpcPort   string
	adminPort string
	client    http.Client
}

// NewClient constructs a Client pointed at a node's rpc and admin ports
func NewClient(rpcURL, rpcPort, adminPort string) *Client {
	return &Client{rpcURL: rpcURL, rpcPort: rpcPort, adminPort: adminPort, client: http.Client{}}
}

// Version returns the software version of the node
func (c *Client) Version() (version *string, err lib.ErrorI) {
	version = new(string)
	err = c.get(VersionRouteName, version)
	return
}

// Health returns the node status and ledger size
func (c *Client) Health() (p *healthResponse, err lib.ErrorI) {
	p = new(healthResponse)
	err = c.get(HealthRouteName, p)
	return
}

// Commit appends a value to the ledger
func (c *Client) Commit(value []byte) (p *commitResponse, err lib.ErrorI) {
	bz, err := lib.MarshalJSON(commitRequest{Value: value})
	if err != nil {
		return nil, err
	}
	p = new(commitResponse)
	err = c.post(CommitRouteName, bz, p)
	return
}

// Root returns the current root and commitment count
func (c *Client) Root() (p *rootResponse, err lib.ErrorI) {
	p = new(rootResponse)
	err = c.get(RootRouteName, p)
	return
}

// Commitment returns the commitment at the given index
func (c *Client) Commitment(index uint64) (p *lib.Commitment, err lib.ErrorI) {
	p = new(lib.Commitment)
	err = c.indexRequest(CommitmentRouteName, index, p)
	return
}

// Commitments returns every commitment in ledger order
func (c *Client) Commitments() (p []*lib.Commitment, err lib.ErrorI) {
	err = c.get(CommitmentsRouteName, &p)
	return
}

// Proof returns an inclusion proof for the given index against the current snapshot
func (c *Client) Proof(index uint64) (p *proofResponse, err lib.ErrorI) {
	p = new(proofResponse)
	err = c.indexRequest(ProofRouteName, index, p)
	return
}

// Verify checks a standalone proof against a trusted root on the node
func (c *Client) Verify(value []byte, proof *crypto.MerkleProof, root []byte) (valid bool, err lib.ErrorI) {
	bz, err := lib.MarshalJSON(verifyRequest{Value: value, Proof: proof, Root: root})
	if err != nil {
		return false, err
	}
	p := new(verifyResponse)
	if err = c.post(VerifyRouteName, bz, p); err != nil {
		return false, err
	}
	return p.Valid, nil
}

// Config returns the node configuration from the admin port
func (c *Client) Config() (p *lib.Config, err lib.ErrorI) {
	p = new(lib.Config)
	err = c.get(ConfigRouteName, p, true)
	return
}

// ResourceUsage returns process and system usage from the admin port
func (c *Client) ResourceUsage() (p *resourceUsageResponse, err lib.ErrorI) {
	p = new(resourceUsageResponse)
	err = c.get(ResourceUsageRouteName, p, true)
	return
}

// WaitForReady polls the version route with exponential backoff until the node
// answers or the retry budget is exhausted
func (c *Client) WaitForReady(maxWait time.Duration) lib.ErrorI {
	retry := backoff.NewExponentialBackOff()
	retry.MaxElapsedTime = maxWait
	if err := backoff.Retry(func() error {
		_, err := c.Version()
		return err
	}, retry); err != nil {
		return ErrServerDown(c.url(VersionRouteName))
	}
	return nil
}

// indexRequest posts an {index} body to the given route
func (c *Client) indexRequest(routeName string, index uint64, ptr any) (err lib.ErrorI) {
	bz, err := lib.MarshalJSON(indexRequest{Index: index})
	if err != nil {
		return
	}
	err = c.post(routeName, bz, ptr)
	return
}

// url resolves the full URL of a route, selecting the admin port when requested
func (c *Client) url(routeName string, admin ...bool) string {
	if admin != nil && admin[0] {
		return c.rpcURL + colon + c.adminPort + routePaths[routeName].Path
	}
	return c.rpcURL + colon + c.rpcPort + routePaths[routeName].Path
}

func (c *Client) post(routeName string, json []byte, ptr any, admin ...bool) lib.ErrorI {
	resp, err := c.client.Post(c.url(routeName, admin...), ApplicationJSON, bytes.NewBuffer(json))
	if err != nil {
		return ErrPostRequest(err)
	}
	return c.unmarshal(resp, ptr)
}

func (c *Client) get(routeName string, ptr any, admin ...bool) lib.ErrorI {
	resp, err := c.client.Get(c.url(routeName, admin...))
	if err != nil {
		return ErrGetRequest(err)
	}
	return c.unmarshal(resp, ptr)
}

func (c *Client) unmarshal(resp *http.Response, ptr any) lib.ErrorI {
	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return ErrReadBody(err)
	}
	if resp.StatusCode != http.StatusOK {
		return ErrHttpStatus(resp.Status, resp.StatusCode, bz)
	}
	return lib.UnmarshalJSON(bz, ptr)
}

// VerifyProofFile loads a proof file saved from the proof route and checks it against the node
func VerifyProofFile(c *Client, filePath string) (bool, lib.ErrorI) {
	p := new(proofResponse)
	if err := lib.NewJSONFromFile(p, "", filePath); err != nil {
		return false, err
	}
	return c.Verify(p.Value, p.Proof, p.Root)
}
