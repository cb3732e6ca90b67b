package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/lynkc/internal/common"
	"github.com/dmitrijs2005/lynkc/internal/server/channels"
	"github.com/gorilla/mux"
)

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
	Password string     `json:"password"`
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

func decodeFiles(files []wireFile) ([]channels.File, error) {
	out := make([]channels.File, 0, len(files))
	for _, f := range files {
		content, err := base64.StdEncoding.DecodeString(f.DataBase64)
		if err != nil {
			return nil, fmt.Errorf("file %q: %w", f.Name, common.ErrorInvalidFileData)
		}
		out = append(out, channels.File{
			ID:       f.ID,
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     int64(len(content)),
			Content:  content,
		})
	}
	return out, nil
}

func encodeFiles(files []channels.File) []wireFile {
	out := make([]wireFile, 0, len(files))
	for _, f := range files {
		out = append(out, wireFile{
			ID:         f.ID,
			Name:       f.Name,
			MimeType:   f.MimeType,
			Size:       f.Size,
			DataBase64: base64.StdEncoding.EncodeToString(f.Content),
		})
	}
	return out
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.channels.Ping(r.Context()); err != nil {
		s.writeError(w, r, fmt.Errorf("store unreachable: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *HTTPServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: decode request: %v", common.ErrorInvalidFileData, err))
		return
	}

	files, err := decodeFiles(req.Files)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.channels.Create(r.Context(), &channels.Channel{Text: req.Text, Files: files}, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, createResponse{
		ID:         res.ID,
		Password:   res.Password,
		TTLSeconds: res.TTLSeconds,
	})
}

func (s *HTTPServer) handleFetch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	password := r.Header.Get(common.PasswordHeaderName)

	res, err := s.channels.Fetch(r.Context(), id, password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, channelResponse{
		ID:         id,
		Text:       res.Channel.Text,
		Files:      encodeFiles(res.Channel.Files),
		TTLSeconds: res.TTLSeconds,
	})
}

func (s *HTTPServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	password := r.Header.Get(common.PasswordHeaderName)

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: decode request: %v", common.ErrorInvalidFileData, err))
		return
	}

	files, err := decodeFiles(req.Files)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.channels.Update(r.Context(), id, password, &channels.Channel{Text: req.Text, Files: files}); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	password := r.Header.Get(common.PasswordHeaderName)

	if err := s.channels.DeleteFile(r.Context(), vars["id"], password, vars["fileId"]); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError folds a service error into a status code and a JSON message.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorPayloadTooLarge), errors.Is(err, common.ErrorInvalidFileData):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	s.writeJSON(w, status, errorResponse{Message: err.Error()})
}
