// Package api implements the HTTP client for the cipherdrop server. It keeps
// session and CSRF state in a cookie jar, so one Client corresponds to one
// logged-in identity.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"strings"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client
	csrf    string
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// Error is a non-2xx server reply.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server: %s (status %d)", e.Message, e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.csrf != "" && method != http.MethodGet {
		req.Header.Set(common.CsrfHeaderName, c.csrf)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorPayload
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type errorPayload struct {
	Error string `json:"error"`
}

// AuthStart opens a login attempt and returns the message to sign. The
// challenge context cookie lands in the jar.
func (c *Client) AuthStart(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/start", map[string]any{}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// AuthVerify submits the signed message; on success the session cookie lands
// in the jar and the confirmed address is returned.
func (c *Client) AuthVerify(ctx context.Context, address, signature string) (string, error) {
	var out struct {
		Address string `json:"address"`
	}
	req := map[string]string{"address": address, "signature": signature}
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify", req, &out); err != nil {
		return "", err
	}
	return out.Address, nil
}

// Me reports the current session address, or ok=false when not logged in.
func (c *Client) Me(ctx context.Context) (string, bool, error) {
	var out struct {
		OK      bool   `json:"ok"`
		Address string `json:"address"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return "", false, err
	}
	return out.Address, out.OK, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", map[string]any{}, nil)
}

// FetchCsrf obtains a double-submit token; subsequent mutating requests carry
// it in the X-CSRF header automatically.
func (c *Client) FetchCsrf(ctx context.Context) error {
	var out struct {
		Csrf string `json:"csrf"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/csrf", nil, &out); err != nil {
		return err
	}
	c.csrf = out.Csrf
	return nil
}

type FileCreateRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	CID         string `json:"cid"`
	FileName    string `json:"fileName,omitempty"`
	Mime        string `json:"mime,omitempty"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
	IV          []byte `json:"iv"`
	Salt        []byte `json:"salt,omitempty"`
	IVWrap      []byte `json:"ivWrap,omitempty"`
	WrappedKey  []byte `json:"wrappedKey,omitempty"`
	RawKey      []byte `json:"rawKeyBase64,omitempty"`
	TTLMinutes  int    `json:"ttlMinutes,omitempty"`
}

// CreateFile registers an uploaded ciphertext and returns the record id plus
// the default sharing token.
func (c *Client) CreateFile(ctx context.Context, req *FileCreateRequest) (string, string, error) {
	var out struct {
		FileID string `json:"fileId"`
		Token  string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/files", req, &out); err != nil {
		return "", "", err
	}
	return out.FileID, out.Token, nil
}

type FileListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Client) ListFiles(ctx context.Context) ([]FileListItem, error) {
	var out struct {
		Files []FileListItem `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/files/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// IssueToken mints an extra sharing token for an owned file.
func (c *Client) IssueToken(ctx context.Context, fileID string, ttlMinutes int, issuedTo string) (string, time.Time, error) {
	var out struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	req := map[string]any{"fileId": fileID, "ttlMinutes": ttlMinutes, "issuedTo": issuedTo}
	if err := c.do(ctx, http.MethodPost, "/api/tokens/issue", req, &out); err != nil {
		return "", time.Time{}, err
	}
	return out.Token, out.ExpiresAt, nil
}

// Redemption is everything the server returns for a valid sharing token.
type Redemption struct {
	FileID     string `json:"fileId"`
	CID        string `json:"cid"`
	IV         []byte `json:"iv"`
	Salt       []byte `json:"salt"`
	IVWrap     []byte `json:"ivWrap"`
	WrappedKey []byte `json:"wrappedKey"`
	RawKey     []byte `json:"rawKeyBase64"`
	Name       string `json:"name"`
	Mime       string `json:"mime"`
	SizeBytes  int64  `json:"sizeBytes"`
}

// ValidateToken redeems a sharing token anonymously.
func (c *Client) ValidateToken(ctx context.Context, token string) (*Redemption, error) {
	var out Redemption
	if err := c.do(ctx, http.MethodPost, "/api/tokens/validate", map[string]string{"token": token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RevokeToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/tokens/revoke", map[string]string{"token": token}, nil)
}

type TokenListItem struct {
	Token     string    `json:"token"`
	FileID    string    `json:"fileId"`
	Revoked   bool      `json:"revoked"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
}

func (c *Client) ListTokens(ctx context.Context) ([]TokenListItem, error) {
	var out struct {
		Tokens []TokenListItem `json:"tokens"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tokens/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// Upload sends one ciphertext blob as multipart form data and returns its
// content id.
func (c *Client) Upload(ctx context.Context, name string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", "application/octet-stream")
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/storage/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.csrf != "" {
		req.Header.Set(common.CsrfHeaderName, c.csrf)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		CID string `json:"cid"`
	}
	if err := decodeResponse(resp, &out); err != nil {
		return "", err
	}
	return out.CID, nil
}

// Download fetches a ciphertext blob by content id.
func (c *Client) Download(ctx context.Context, cid string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/storage/get?cid="+cid, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorPayload
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Status: resp.StatusCode, Message: e.Error}
	}

	return io.ReadAll(resp.Body)
}
