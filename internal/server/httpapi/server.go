// Package httpapi exposes the HTTP/JSON surface of the cipherdrop server:
// challenge/response login, file catalog, access token registry and the
// ciphertext blob store. All binary fields travel base64-encoded in JSON
// bodies; ciphertext bytes travel as application/octet-stream.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avolkovs/cipherdrop/internal/logging"
	"github.com/avolkovs/cipherdrop/internal/server/config"
	"github.com/avolkovs/cipherdrop/internal/server/services"
	"github.com/avolkovs/cipherdrop/internal/server/storage"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	config  *config.Config

	auth   *services.AuthService
	files  *services.FileService
	tokens *services.TokenService
	store  storage.ContentStore

	mux *http.ServeMux
}

func NewServer(l logging.Logger, cfg *config.Config, as *services.AuthService, fs *services.FileService, ts *services.TokenService, store storage.ContentStore) *Server {
	s := &Server{
		address: cfg.EndpointAddrHTTP,
		logger:  l.With("module", "http_server"),
		config:  cfg,
		auth:    as,
		files:   fs,
		tokens:  ts,
		store:   store,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/auth/start", s.handleAuthStart)
	s.mux.HandleFunc("POST /api/auth/verify", s.handleAuthVerify)
	s.mux.HandleFunc("GET /api/auth/me", s.handleAuthMe)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleAuthLogout)
	s.mux.HandleFunc("GET /api/csrf", s.handleCsrf)

	s.mux.HandleFunc("POST /api/files", s.requireSession(s.handleFileCreate))
	s.mux.HandleFunc("GET /api/files/list", s.requireSession(s.handleFileList))

	s.mux.HandleFunc("POST /api/tokens/issue", s.requireSession(s.handleTokenIssue))
	s.mux.HandleFunc("POST /api/tokens/validate", s.handleTokenValidate)
	s.mux.HandleFunc("POST /api/tokens/revoke", s.requireSession(s.handleTokenRevoke))
	s.mux.HandleFunc("GET /api/tokens/list", s.requireSession(s.handleTokenList))

	s.mux.HandleFunc("POST /api/storage/upload", s.requireSession(s.handleUpload))
	s.mux.HandleFunc("GET /api/storage/get", s.handleDownload)

	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the routing handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.mux}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
