// Package httpapi exposes the channel service over REST. Routes:
//
//	GET    /health                             liveness plus store reachability
//	POST   /api/channels                       create a channel
//	GET    /api/channels/{id}                  fetch payload, re-arms TTL
//	PUT    /api/channels/{id}                  replace payload, re-arms TTL
//	DELETE /api/channels/{id}/files/{fileId}   delete one attachment
//
// The channel password travels in the X-Channel-Password header; errors come
// back as {"message": "..."} bodies.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/logging"
	"github.com/dmitrijs2005/lynkc/internal/server/channels"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address  string
	logger   logging.Logger
	channels *channels.Service
}

func NewHTTPServer(address string, l logging.Logger, cs *channels.Service) *HTTPServer {
	return &HTTPServer{
		address:  address,
		logger:   l.With("module", "http_server"),
		channels: cs,
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
