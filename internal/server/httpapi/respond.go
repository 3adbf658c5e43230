package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkovs/cipherdrop/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the wire. Internal failures are
// reported with a generic message; everything else carries its sentinel text.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, common.ErrMissingChallenge),
		errors.Is(err, common.ErrInvalidSignature),
		errors.Is(err, common.ErrRawKeysNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAddressMismatch),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidSession),
		errors.Is(err, common.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// JSON bodies carry at most a few kilobytes of key material; anything
// bigger gets cut off before it is buffered.
const maxJSONBodyBytes = 1 << 20

// decodeJSON reads a JSON request body into v. A malformed body is the
// caller's fault, never a server error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return common.ErrFileTooLarge
		}
		return common.NewValidationError("body", "invalid JSON")
	}
	return nil
}
