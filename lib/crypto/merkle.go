package crypto

import (
	"bytes"
	"runtime"

	"github.com/alder-network/alder/lib"
	"golang.org/x/sync/errgroup"
)

/*
	MerkleTree folds an ordered sequence of data blocks into a single fixed-size digest (the root)
	and produces compact inclusion proofs for individual blocks. Flat layers were chosen over a
	pointer graph since they use less memory and turn the proof walk into an index-halving loop
	example: blocks = {a, b, c, d} -> layers = { {H(a), H(b), H(c), H(d)},
	                                             {H(H(a)|H(b)), H(H(c)|H(d))},
	                                             {root} }

	Layer folding pairs consecutive digests, parent = H(left | right). When a layer has an odd
	count the lone last digest is paired with itself, parent = H(last | last); the duplicated
	sibling is a real sibling and appears in any proof touching that position. The same policy is
	applied during build, proof generation, and verification.

	A built tree is immutable and safe for use by any number of concurrent readers.
*/

// OddNodePolicy names the pairing rule for the lone digest of an odd-length layer
type OddNodePolicy string

const (
	// OddNodeDuplicateLast pairs the lone digest with itself: parent = H(last | last)
	OddNodeDuplicateLast OddNodePolicy = "duplicate-last"
)

// NewOddNodePolicy() resolves a policy name from configuration; an empty name selects duplicate-last
func NewOddNodePolicy(name string) (OddNodePolicy, lib.ErrorI) {
	switch OddNodePolicy(name) {
	case "", OddNodeDuplicateLast:
		return OddNodeDuplicateLast, nil
	default:
		return "", ErrUnknownOddNodePolicy(name)
	}
}

// minParallelHashes is the layer size below which a parallel fold isn't worth the scheduling cost
const minParallelHashes = 2048

// MerkleTree owns every layer from the leaf digests up to the single root digest
type MerkleTree struct {
	hasher *Hasher
	policy OddNodePolicy
	layers [][][]byte // layers[0] = leaf digests, layers[len-1] = {root}
}

// MerkleOption is a functional configuration option for tree construction and proof verification
type MerkleOption func(*MerkleTree)

// WithHasher() overrides the default sha256 hasher
func WithHasher(h *Hasher) MerkleOption { return func(t *MerkleTree) { t.hasher = h } }

// WithOddNodePolicy() overrides the odd layer pairing policy
func WithOddNodePolicy(p OddNodePolicy) MerkleOption { return func(t *MerkleTree) { t.policy = p } }

// newMerkleConfig() applies options over the default hasher and policy
func newMerkleConfig(opts []MerkleOption) (*MerkleTree, lib.ErrorI) {
	hasher, _ := NewHasher(SHA256)
	t := &MerkleTree{hasher: hasher, policy: OddNodeDuplicateLast}
	for _, opt := range opts {
		opt(t)
	}
	if t.hasher == nil {
		return nil, ErrNilHasher()
	}
	if _, err := NewOddNodePolicy(string(t.policy)); err != nil {
		return nil, err
	}
	return t, nil
}

// NewMerkleTree() builds the full tree from an ordered sequence of opaque blocks. The build is
// deterministic: identical (blocks, order, hasher, policy) always yield byte-identical layers.
// An empty input produces a tree with zero layers (see Root() for the empty root policy).
func NewMerkleTree(blocks [][]byte, opts ...MerkleOption) (*MerkleTree, lib.ErrorI) {
	t, err := newMerkleConfig(opts)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return t, nil
	}
	// layer 0: hash each block in order
	t.layers = append(t.layers, t.hashBlocks(blocks))
	// fold until a single digest remains
	for top := t.layers[len(t.layers)-1]; len(top) > 1; top = t.layers[len(t.layers)-1] {
		t.layers = append(t.layers, t.foldLayer(top))
	}
	return t, nil
}

// hashBlocks() produces the ordered leaf digests, hashing chunks concurrently for large inputs
func (t *MerkleTree) hashBlocks(blocks [][]byte) [][]byte {
	out := make([][]byte, len(blocks))
	if len(blocks) < minParallelHashes {
		for i, block := range blocks {
			out[i] = t.hasher.Hash(block)
		}
		return out
	}
	t.parallel(len(blocks), func(i int) {
		out[i] = t.hasher.Hash(blocks[i])
	})
	return out
}

// foldLayer() reduces a layer of size N to the next layer of size ceil(N/2)
func (t *MerkleTree) foldLayer(layer [][]byte) [][]byte {
	out := make([][]byte, (len(layer)+1)/2)
	pair := func(i int) {
		left, right := layer[2*i], rightOrDuplicate(layer, 2*i)
		out[i] = t.hasher.Hash(concat(left, right))
	}
	if len(out) < minParallelHashes {
		for i := range out {
			pair(i)
		}
		return out
	}
	// every pair in a layer is independent; the return below is the barrier before the next layer
	t.parallel(len(out), pair)
	return out
}

// rightOrDuplicate() returns the right partner of the pair starting at i, duplicating
// the lone last digest of an odd layer per the duplicate-last policy
func rightOrDuplicate(layer [][]byte, i int) []byte {
	if i+1 < len(layer) {
		return layer[i+1]
	}
	return layer[i]
}

// parallel() runs fn(0..n-1) across the available CPUs in contiguous chunks and waits for all
func (t *MerkleTree) parallel(n int, fn func(i int)) {
	g := new(errgroup.Group)
	workers := runtime.NumCPU()
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		start, end := start, start+chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never error, the group is used for the barrier
}

// Root() returns the single digest summarizing all leaves. For a tree with zero leaves the
// root is defined as the digest of the empty byte sequence for the configured algorithm;
// this is the documented empty-tree policy of this implementation
func (t *MerkleTree) Root() []byte {
	if len(t.layers) == 0 {
		return t.hasher.Empty()
	}
	return t.layers[len(t.layers)-1][0]
}

// LeafCount() returns the number of leaves the tree was built from
func (t *MerkleTree) LeafCount() uint64 {
	if len(t.layers) == 0 {
		return 0
	}
	return uint64(len(t.layers[0]))
}

// Height() returns the number of layers from the leaf layer to the root layer inclusive
func (t *MerkleTree) Height() int { return len(t.layers) }

// Layer() returns one horizontal level of digests; index 0 is the leaf layer. The returned
// slice is owned by the tree and must not be mutated
func (t *MerkleTree) Layer(i int) [][]byte {
	if i < 0 || i >= len(t.layers) {
		return nil
	}
	return t.layers[i]
}

// Hasher() returns the hasher the tree was built with
func (t *MerkleTree) Hasher() *Hasher { return t.hasher }

// ProofStep is one hop of an inclusion proof: the digest paired with the path node at one
// layer and which side of the concatenation it sits on
type ProofStep struct {
	Sibling lib.HexBytes `json:"sibling"` // the digest paired with the path node at this layer
	Left    bool         `json:"left"`    // true when the sibling is the left half of the concatenation
}

// MerkleProof is a standalone inclusion proof, ordered leaf-to-root; verifying it requires
// only the claimed block and a trusted root, never the tree that generated it
type MerkleProof struct {
	Index     uint64      `json:"index"`     // the leaf index the proof was generated for
	LeafCount uint64      `json:"leafCount"` // the leaf count of the source tree, bounds the expected step count
	Steps     []ProofStep `json:"steps"`     // sibling digests from the leaf's sibling up to (excluding) the root
}

// Proof() generates the inclusion proof for the leaf at the given index by walking the
// layers upward, halving the position at each level
func (t *MerkleTree) Proof(index uint64) (*MerkleProof, lib.ErrorI) {
	leafCount := t.LeafCount()
	if leafCount == 0 {
		return nil, ErrEmptyTree()
	}
	if index >= leafCount {
		return nil, ErrInvalidLeafIndex(index, leafCount)
	}
	proof := &MerkleProof{Index: index, LeafCount: leafCount, Steps: make([]ProofStep, 0, len(t.layers)-1)}
	pos := index
	// stop before the root layer; the root is never part of the proof
	for _, layer := range t.layers[:len(t.layers)-1] {
		var step ProofStep
		if pos%2 == 0 {
			// right sibling; a lone last node is its own (duplicated) sibling
			step = ProofStep{Sibling: rightOrDuplicate(layer, int(pos)), Left: false}
		} else {
			step = ProofStep{Sibling: layer[pos-1], Left: true}
		}
		proof.Steps = append(proof.Steps, step)
		pos /= 2
	}
	return proof, nil
}

// ProofLength() returns the exact number of steps a valid proof carries for a tree of n
// leaves: the fold count from n down to 1, which equals ceil(log2(n))
func ProofLength(n uint64) (steps int) {
	for ; n > 1; n = (n + 1) / 2 {
		steps++
	}
	return
}

// VerifyProof() recomputes the root from a claimed block and a proof, then compares it with
// the trusted root. A mismatch is a legitimate negative answer (false, nil), not a fault;
// a structurally invalid proof refuses verification with ErrMalformedProof. The hasher and
// policy options must match those of the tree the proof claims membership in.
func VerifyProof(block []byte, proof *MerkleProof, root []byte, opts ...MerkleOption) (bool, lib.ErrorI) {
	t, err := newMerkleConfig(opts)
	if err != nil {
		return false, err
	}
	if proof == nil {
		return false, ErrMalformedProof("proof is nil")
	}
	if len(root) != t.hasher.Size() {
		return false, ErrMalformedProof("root digest has the wrong length")
	}
	for _, step := range proof.Steps {
		if len(step.Sibling) != t.hasher.Size() {
			return false, ErrMalformedProof("sibling digest has the wrong length")
		}
	}
	// when the declared tree shape is known, the step count must match it exactly
	if proof.LeafCount > 0 {
		if proof.Index >= proof.LeafCount {
			return false, ErrMalformedProof("leaf index exceeds the declared leaf count")
		}
		if len(proof.Steps) != ProofLength(proof.LeafCount) {
			return false, ErrMalformedProof("step count is inconsistent with the declared leaf count")
		}
	}
	current := t.hasher.Hash(block)
	for _, step := range proof.Steps {
		if step.Left {
			current = t.hasher.Hash(concat(step.Sibling, current))
		} else {
			current = t.hasher.Hash(concat(current, step.Sibling))
		}
	}
	return bytes.Equal(current, root), nil
}

// concat() concatenates two byte slices
func concat(a, b []byte) []byte {
	out := make([]byte, len(a)+len(b))
	copy(out, a)
	copy(out[len(a):], b)
	return out
}
