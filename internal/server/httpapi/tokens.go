package httpapi

import (
	"net/http"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
)

type tokenIssueRequest struct {
	FileID     string `json:"fileId"`
	TTLMinutes int    `json:"ttlMinutes,omitempty"`
	IssuedTo   string `json:"issuedTo,omitempty"`
}

type tokenIssueResponse struct {
	OK        bool      `json:"ok"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type tokenValidateResponse struct {
	OK         bool   `json:"ok"`
	FileID     string `json:"fileId"`
	CID        string `json:"cid"`
	IV         []byte `json:"iv"`
	Salt       []byte `json:"salt,omitempty"`
	IVWrap     []byte `json:"ivWrap,omitempty"`
	WrappedKey []byte `json:"wrappedKey,omitempty"`
	RawKey     []byte `json:"rawKeyBase64,omitempty"`
	Name       string `json:"name"`
	Mime       string `json:"mime"`
	SizeBytes  int64  `json:"sizeBytes"`
}

type tokenListItem struct {
	Token     string    `json:"token"`
	FileID    string    `json:"fileId"`
	Revoked   bool      `json:"revoked"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
}

type tokenListResponse struct {
	OK     bool            `json:"ok"`
	Tokens []tokenListItem `json:"tokens"`
}

func (s *Server) handleTokenIssue(w http.ResponseWriter, r *http.Request, address string) {
	if err := s.checkCSRF(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req tokenIssueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.FileID == "" {
		s.writeError(w, r, common.NewValidationError("fileId", "required"))
		return
	}

	token, err := s.tokens.Issue(r.Context(), address, req.FileID, req.TTLMinutes, req.IssuedTo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenIssueResponse{OK: true, Token: token.Token, ExpiresAt: token.ExpiresAt})
}

// handleTokenValidate is the anonymous redemption endpoint: a valid bearer
// token yields everything the holder needs to fetch and decrypt the file.
func (s *Server) handleTokenValidate(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Token == "" {
		s.writeError(w, r, common.NewValidationError("token", "required"))
		return
	}

	redemption, err := s.tokens.Validate(r.Context(), req.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenValidateResponse{
		OK:         true,
		FileID:     redemption.FileID,
		CID:        redemption.CID,
		IV:         redemption.IV,
		Salt:       redemption.Salt,
		IVWrap:     redemption.WrapIV,
		WrappedKey: redemption.WrappedKey,
		RawKey:     redemption.RawKey,
		Name:       redemption.Name,
		Mime:       redemption.Mime,
		SizeBytes:  redemption.SizeBytes,
	})
}

func (s *Server) handleTokenRevoke(w http.ResponseWriter, r *http.Request, address string) {
	if err := s.checkCSRF(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Token == "" {
		s.writeError(w, r, common.NewValidationError("token", "required"))
		return
	}

	if err := s.tokens.Revoke(r.Context(), address, req.Token); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleTokenList(w http.ResponseWriter, r *http.Request, address string) {
	tokens, err := s.tokens.ListByOwner(r.Context(), address)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]tokenListItem, 0, len(tokens))
	for _, t := range tokens {
		items = append(items, tokenListItem{
			Token:     t.Token,
			FileID:    t.FileID,
			Revoked:   t.Revoked,
			ExpiresAt: t.ExpiresAt,
			CreatedAt: t.CreatedAt,
			Title:     t.Title,
			Name:      t.Name,
			SizeBytes: t.SizeBytes,
		})
	}

	writeJSON(w, http.StatusOK, tokenListResponse{OK: true, Tokens: items})
}
