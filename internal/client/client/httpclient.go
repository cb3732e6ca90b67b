package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/dmitrijs2005/lynkc/internal/common"
)

const requestTimeout = 15 * time.Second

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type wireFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	Size       int64  `json:"size"`
	DataBase64 string `json:"data_base64"`
}

type createRequest struct {
	Text     string     `json:"text"`
	Files    []wireFile `json:"files"`
	Password string     `json:"password,omitempty"`
}

type createResponse struct {
	ID         string `json:"id"`
	Password   string `json:"password"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

type channelResponse struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Files      []wireFile `json:"files"`
	TTLSeconds int64      `json:"ttl_seconds"`
}

type updateRequest struct {
	Text  string     `json:"text"`
	Files []wireFile `json:"files"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func encodeFiles(files []models.File) []wireFile {
	out := make([]wireFile, 0, len(files))
	for _, f := range files {
		out = append(out, wireFile{
			ID:         f.ID,
			Name:       f.Name,
			MimeType:   f.MimeType,
			Size:       f.SizeBytes,
			DataBase64: base64.StdEncoding.EncodeToString(f.Content),
		})
	}
	return out
}

func decodeFiles(files []wireFile) ([]models.File, error) {
	out := make([]models.File, 0, len(files))
	for _, f := range files {
		content, err := base64.StdEncoding.DecodeString(f.DataBase64)
		if err != nil {
			return nil, fmt.Errorf("file %q: %w", f.Name, common.ErrorInvalidFileData)
		}
		out = append(out, models.File{
			ID:        f.ID,
			Name:      f.Name,
			MimeType:  f.MimeType,
			SizeBytes: int64(len(content)),
			Content:   content,
		})
	}
	return out, nil
}

func (c *HTTPClient) Create(ctx context.Context, text string, files []models.File, password string) (*CreateResult, error) {
	body := createRequest{Text: text, Files: encodeFiles(files), Password: password}

	var resp createResponse
	if err := c.do(ctx, http.MethodPost, "/api/channels", "", body, &resp); err != nil {
		return nil, err
	}

	return &CreateResult{ID: resp.ID, Password: resp.Password, TTLSeconds: resp.TTLSeconds}, nil
}

func (c *HTTPClient) Fetch(ctx context.Context, id string, password string) (*models.Snapshot, error) {
	var resp channelResponse
	if err := c.do(ctx, http.MethodGet, "/api/channels/"+id, password, nil, &resp); err != nil {
		return nil, err
	}

	files, err := decodeFiles(resp.Files)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{Text: resp.Text, Files: files, TTLSeconds: resp.TTLSeconds}, nil
}

func (c *HTTPClient) Update(ctx context.Context, id string, password string, text string, files []models.File) error {
	body := updateRequest{Text: text, Files: encodeFiles(files)}
	return c.do(ctx, http.MethodPut, "/api/channels/"+id, password, body, nil)
}

func (c *HTTPClient) DeleteFile(ctx context.Context, id string, password string, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/channels/"+id+"/files/"+fileID, password, nil, nil)
}

// do issues one JSON request and decodes the response into out (when out is
// non-nil). All failures come back classified.
func (c *HTTPClient) do(ctx context.Context, method, path, password string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if password != "" {
		req.Header.Set(common.PasswordHeaderName, password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", common.ErrorUnavailable, err)
		}
	}
	return nil
}

// mapError folds an HTTP error response into the closed error taxonomy.
func (c *HTTPClient) mapError(resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&er)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		if er.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrorPayloadTooLarge, er.Message)
		}
		return common.ErrorPayloadTooLarge
	default:
		return fmt.Errorf("%w: status %d", common.ErrorUnavailable, resp.StatusCode)
	}
}
