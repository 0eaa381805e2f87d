package rpc

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Alder RPC Paths
const (
	VersionRoutePath     = "/v1/"
	CommitRoutePath      = "/v1/commit"
	HealthRoutePath      = "/v1/query/health"
	RootRoutePath        = "/v1/query/root"
	CommitmentRoutePath  = "/v1/query/commitment"
	CommitmentsRoutePath = "/v1/query/commitments"
	ProofRoutePath       = "/v1/query/proof"
	VerifyRoutePath      = "/v1/query/verify"
	// admin
	ConfigRoutePath        = "/v1/admin/config"
	ResourceUsageRoutePath = "/v1/admin/resource-usage"
)

const (
	VersionRouteName     = "version"
	CommitRouteName      = "commit"
	HealthRouteName      = "health"
	RootRouteName        = "root"
	CommitmentRouteName  = "commitment"
	CommitmentsRouteName = "commitments"
	ProofRouteName       = "proof"
	VerifyRouteName      = "verify"
	// admin
	ConfigRouteName        = "config"
	ResourceUsageRouteName = "resource-usage"
)

// routePaths maps route names to their HTTP method and path
var routePaths = map[string]struct {
	Method string
	Path   string
}{
	VersionRouteName:     {Method: http.MethodGet, Path: VersionRoutePath},
	CommitRouteName:      {Method: http.MethodPost, Path: CommitRoutePath},
	HealthRouteName:      {Method: http.MethodGet, Path: HealthRoutePath},
	RootRouteName:        {Method: http.MethodGet, Path: RootRoutePath},
	CommitmentRouteName:  {Method: http.MethodPost, Path: CommitmentRoutePath},
	CommitmentsRouteName: {Method: http.MethodGet, Path: CommitmentsRoutePath},
	ProofRouteName:       {Method: http.MethodPost, Path: ProofRoutePath},
	VerifyRouteName:      {Method: http.MethodPost, Path: VerifyRoutePath},
	// admin
	ConfigRouteName:        {Method: http.MethodGet, Path: ConfigRoutePath},
	ResourceUsageRouteName: {Method: http.MethodGet, Path: ResourceUsageRoutePath},
}

// httpRouteHandlers is a custom type that maps strings to httprouter handle functions
type httpRouteHandlers map[string]httprouter.Handle

// createRouter initializes and returns a new HTTP router with the query route handlers
func createRouter(s *Server) *httprouter.Router {
	return buildRouter(s, httpRouteHandlers{
		VersionRouteName:     s.Version,
		CommitRouteName:      s.Commit,
		HealthRouteName:      s.Health,
		RootRouteName:        s.Root,
		CommitmentRouteName:  s.Commitment,
		CommitmentsRouteName: s.Commitments,
		ProofRouteName:       s.Proof,
		VerifyRouteName:      s.Verify,
	})
}

// createAdminRouter initializes and returns a new HTTP router with the admin route handlers
func createAdminRouter(s *Server) *httprouter.Router {
	return buildRouter(s, httpRouteHandlers{
		ConfigRouteName:        s.Config,
		ResourceUsageRouteName: s.ResourceUsage,
	})
}

// buildRouter registers each handler under its configured method and path
func buildRouter(s *Server, r httpRouteHandlers) *httprouter.Router {
	// Initialize a new router using the httprouter package.
	router := httprouter.New()

	for name, handler := range r {
		// Retrieve the path configuration for the current route name.
		path := routePaths[name]

		// Add the handler for the specific path and HTTP method to the router.
		router.Handle(path.Method, path.Path, logHandler{path.Path, handler}.Handle)
	}

	return router
}
