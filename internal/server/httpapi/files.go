package httpapi

import (
	"net/http"
	"time"

	"github.com/avolkovs/cipherdrop/internal/server/models"
)

type fileCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CID         string `json:"cid"`
	FileName    string `json:"fileName"`
	Mime        string `json:"mime"`
	SizeBytes   int64  `json:"sizeBytes"`
	IV          []byte `json:"iv"`
	Salt        []byte `json:"salt,omitempty"`
	IVWrap      []byte `json:"ivWrap,omitempty"`
	WrappedKey  []byte `json:"wrappedKey,omitempty"`
	RawKey      []byte `json:"rawKeyBase64,omitempty"`
	TTLMinutes  int    `json:"ttlMinutes,omitempty"`
}

type fileCreateResponse struct {
	FileID string `json:"fileId"`
	Token  string `json:"token"`
}

type fileListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

type fileListResponse struct {
	OK    bool           `json:"ok"`
	Files []fileListItem `json:"files"`
}

// handleFileCreate stores a file metadata record and returns its id along
// with the default access token issued in the same transaction.
func (s *Server) handleFileCreate(w http.ResponseWriter, r *http.Request, address string) {
	if err := s.checkCSRF(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req fileCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	file := &models.File{
		OwnerAddress: address,
		Title:        req.Title,
		Description:  req.Description,
		CID:          req.CID,
		Name:         req.FileName,
		Mime:         req.Mime,
		SizeBytes:    req.SizeBytes,
		IV:           req.IV,
		Salt:         req.Salt,
		WrapIV:       req.IVWrap,
		WrappedKey:   req.WrappedKey,
		RawKey:       req.RawKey,
	}

	fileID, token, err := s.files.Create(r.Context(), file, req.TTLMinutes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fileCreateResponse{FileID: fileID, Token: token.Token})
}

func (s *Server) handleFileList(w http.ResponseWriter, r *http.Request, address string) {
	files, err := s.files.ListByOwner(r.Context(), address)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]fileListItem, 0, len(files))
	for _, f := range files {
		items = append(items, fileListItem{
			ID:        f.ID,
			Title:     f.Title,
			Name:      f.Name,
			SizeBytes: f.SizeBytes,
			CreatedAt: f.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, fileListResponse{OK: true, Files: items})
}
