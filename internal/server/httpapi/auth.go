package httpapi

import (
	"encoding/hex"
	"net/http"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/google/uuid"
)

const csrfTokenBytes = 16

type authStartResponse struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

type authVerifyRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

type authVerifyResponse struct {
	OK      bool   `json:"ok"`
	Address string `json:"address"`
}

type authMeResponse struct {
	OK      bool   `json:"ok"`
	Address string `json:"address,omitempty"`
}

type csrfResponse struct {
	Csrf string `json:"csrf"`
}

// handleAuthStart opens a login attempt: it binds a challenge context to the
// visitor via cookie and returns the nonce plus the exact message to sign.
// A visitor who already holds a context cookie keeps it, so restarting the
// login replaces the pending challenge instead of piling up rows.
func (s *Server) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	contextID := ""
	if cookie, err := r.Cookie(common.ChallengeCookieName); err == nil {
		// Only server-issued ids are accepted back.
		if _, err := uuid.Parse(cookie.Value); err == nil {
			contextID = cookie.Value
		}
	}
	if contextID == "" {
		contextID = uuid.New().String()
	}

	nonce, message, err := s.auth.IssueNonce(r.Context(), contextID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.ChallengeCookieName,
		Value:    contextID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.NonceValidityDuration.Seconds()),
	})

	writeJSON(w, http.StatusOK, authStartResponse{Nonce: nonce, Message: message})
}

// handleAuthVerify consumes the pending challenge, checks the signature and
// mints a session cookie for the recovered address.
func (s *Server) handleAuthVerify(w http.ResponseWriter, r *http.Request) {
	var req authVerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Address == "" || req.Signature == "" {
		s.writeError(w, r, common.NewValidationError("address", "address and signature required"))
		return
	}

	cookie, err := r.Cookie(common.ChallengeCookieName)
	if err != nil || cookie.Value == "" {
		s.writeError(w, r, common.ErrMissingChallenge)
		return
	}

	address, err := s.auth.Verify(r.Context(), cookie.Value, req.Address, req.Signature)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.auth.MintSession(address)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   common.ChallengeCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.SessionValidityDuration.Seconds()),
	})

	writeJSON(w, http.StatusOK, authVerifyResponse{OK: true, Address: address})
}

// handleAuthMe reports the current session without failing the request:
// an absent or expired session is {ok:false}, not an error.
func (s *Server) handleAuthMe(w http.ResponseWriter, r *http.Request) {
	address, err := s.sessionAddress(r)
	if err != nil {
		writeJSON(w, http.StatusOK, authMeResponse{OK: false})
		return
	}
	writeJSON(w, http.StatusOK, authMeResponse{OK: true, Address: address})
}

func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleCsrf issues the double-submit token: the same value is returned in
// the body and set as a cookie the client must echo in the X-CSRF header.
// The cookie is intentionally readable by scripts.
func (s *Server) handleCsrf(w http.ResponseWriter, r *http.Request) {
	token := hex.EncodeToString(common.GenerateRandByteArray(csrfTokenBytes))

	http.SetCookie(w, &http.Cookie{
		Name:     common.CsrfCookieName,
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, csrfResponse{Csrf: token})
}
