package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/lynkc/internal/common"
	"github.com/gorilla/mux"
)

func (s *HTTPServer) router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/channels", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/channels/{id}", s.handleFetch).Methods(http.MethodGet)
	api.HandleFunc("/channels/{id}", s.handleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/channels/{id}/files/{fileId}", s.handleDeleteFile).Methods(http.MethodDelete)

	var h http.Handler = r
	h = limitBody(h)
	h = cors(h)
	return h
}

// limitBody caps request bodies. Base64 framing inflates payloads, so the
// request cap is twice the channel budget.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, common.MaxRequestBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// cors allows browser clients on any origin; channels are short-lived and
// password-gated, the API carries no ambient credentials.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+common.PasswordHeaderName)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
