package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/avolkovs/cipherdrop/internal/common"
)

type sessionHandler func(w http.ResponseWriter, r *http.Request, address string)

// requireSession resolves the session cookie and passes the wallet address
// through to the handler. Missing or bad credentials end the request with 401.
func (s *Server) requireSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, err := s.sessionAddress(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next(w, r, address)
	}
}

func (s *Server) sessionAddress(r *http.Request) (string, error) {
	cookie, err := r.Cookie(common.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", common.ErrorUnauthorized
	}
	return s.auth.ResolveSession(cookie.Value)
}

// checkCSRF enforces the double-submit check on state-mutating requests:
// the csrf cookie must equal the X-CSRF header. A no-op unless RequireCSRF
// is configured.
func (s *Server) checkCSRF(r *http.Request) error {
	if !s.config.RequireCSRF {
		return nil
	}
	cookie, err := r.Cookie(common.CsrfCookieName)
	if err != nil || cookie.Value == "" {
		return common.ErrorForbidden
	}
	header := r.Header.Get(common.CsrfHeaderName)
	if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
		return common.ErrorForbidden
	}
	return nil
}
