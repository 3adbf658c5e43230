package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/avolkovs/cipherdrop/internal/common"
)

// multipartOverheadBytes covers boundary and part-header framing so a
// payload right at the ceiling still parses.
const multipartOverheadBytes = 64 * 1024

type uploadResponse struct {
	CID string `json:"cid"`
}

// handleUpload ingests one ciphertext blob. The part must be declared as
// application/octet-stream (or carry no type at all): plaintext uploads are
// a client bug and refused by media type.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, address string) {
	if err := s.checkCSRF(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes+multipartOverheadBytes)

	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, common.ErrFileTooLarge)
			return
		}
		s.writeError(w, r, common.NewValidationError("body", "expected multipart/form-data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, common.NewValidationError("file", "required"))
		return
	}
	defer file.Close()

	partType := header.Header.Get("Content-Type")
	if partType != "" && !strings.HasPrefix(partType, "application/octet-stream") {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "unsupported media type"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, common.NewValidationError("file", "unreadable"))
		return
	}
	if len(data) == 0 {
		s.writeError(w, r, common.NewValidationError("file", "empty"))
		return
	}
	if int64(len(data)) > s.config.MaxUploadBytes {
		s.writeError(w, r, common.ErrFileTooLarge)
		return
	}

	cid, err := s.store.Put(r.Context(), data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Debug(r.Context(), "blob stored", "cid", cid, "bytes", len(data), "owner", address)

	writeJSON(w, http.StatusOK, uploadResponse{CID: cid})
}

// handleDownload streams a ciphertext blob by content id. Anonymous:
// possession of a cid grants nothing beyond the ciphertext bytes.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	cid := r.URL.Query().Get("cid")
	if cid == "" {
		s.writeError(w, r, common.NewValidationError("cid", "required"))
		return
	}

	data, err := s.store.Get(r.Context(), cid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
