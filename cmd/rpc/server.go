package rpc

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/alder-network/alder/lib"
	"github.com/alder-network/alder/store"
	"github.com/alecthomas/units"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

const (
	colon = ":"

	SoftwareVersion = "0.1.0"
	ContentType     = "Content-Type"
	ApplicationJSON = "application/json; charset=utf-8"
	localhost       = "localhost"
)

// Server represents an Alder RPC server with configuration options
type Server struct {
	// the commitment ledger
	store *store.Store

	// node configuration
	config lib.Config

	logger lib.LoggerI
}

// NewServer constructs and returns a new Alder RPC server
func NewServer(store *store.Store, config lib.Config, logger lib.LoggerI) *Server {
	return &Server{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Start initializes the query and admin RPC servers concurrently
func (s *Server) Start() {
	go s.startRPC(createRouter(s), s.config.RPCPort)
	go s.startRPC(createAdminRouter(s), s.config.AdminPort)
}

// startRPC starts an RPC server with the provided router and port
func (s *Server) startRPC(router *httprouter.Router, port string) {

	// Create CORS policy
	cor := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS", "POST"},
	})

	// Create a default timeout for HTTP requests
	timeout := time.Duration(s.config.TimeoutS) * time.Second

	// Start RPC server
	s.logger.Infof("Starting RPC server at 0.0.0.0:%s", port)
	s.logger.Fatal((&http.Server{
		Addr:    colon + port,
		Handler: cor.Handler(http.TimeoutHandler(router, timeout, ErrServerTimeout().Error())),
	}).ListenAndServe().Error())
}

// logHandler serves as a middleware that logs incoming RPC calls for debugging purposes
type logHandler struct {
	path string
	h    httprouter.Handle
}

// Handle
func (h logHandler) Handle(resp http.ResponseWriter, req *http.Request, p httprouter.Params) {
	// Uncomment the line below to enable endpoint path logging for debugging.
	// logger.Debug(h.path)

	// Call the actual handler function with the response, request, and parameters.
	h.h(resp, req, p)
}

// unmarshal reads request body and unmarshals it into ptr
func unmarshal(w http.ResponseWriter, r *http.Request, ptr interface{}) bool {
	bz, err := io.ReadAll(io.LimitReader(r.Body, int64(units.MB)))
	if err != nil {
		write(w, ErrReadBody(err), http.StatusBadRequest)
		return false
	}
	defer func() { _ = r.Body.Close() }()
	if err = json.Unmarshal(bz, ptr); err != nil {
		write(w, ErrInvalidParams(err), http.StatusBadRequest)
		return false
	}
	return true
}

// write marshaled payload to w
func write(w http.ResponseWriter, payload interface{}, code int) {
	w.Header().Set(ContentType, ApplicationJSON)
	w.WriteHeader(code)

	// Marshal and indent the payload
	bz, _ := json.MarshalIndent(payload, "", "  ")
	_, _ = w.Write(bz)
}

// writeError maps a coded error to an HTTP status and writes it to w
func writeError(w http.ResponseWriter, err lib.ErrorI) {
	write(w, err, errorStatus(err))
}

// errorStatus resolves the HTTP status for a coded error
func errorStatus(err lib.ErrorI) int {
	switch err.Module() {
	case lib.StorageModule:
		if err.Code() == lib.CodeCommitmentNotFound {
			return http.StatusNotFound
		}
	case lib.CryptoModule:
		switch err.Code() {
		case lib.CodeEmptyTree, lib.CodeInvalidLeafIndex, lib.CodeMalformedProof:
			return http.StatusBadRequest
		}
	case lib.MainModule:
		switch err.Code() {
		case lib.CodeEmptyValue, lib.CodeValueTooLarge, lib.CodeJSONUnmarshal, lib.CodeStringToBytes:
			return http.StatusBadRequest
		}
	case lib.RPCModule:
		if err.Code() == lib.CodeInvalidParams {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
