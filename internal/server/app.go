// Package server initializes and runs the lynkc backend: configuration,
// logging, the Redis channel store and the HTTP API, with graceful shutdown
// on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/logging"
	"github.com/dmitrijs2005/lynkc/internal/server/channels"
	"github.com/dmitrijs2005/lynkc/internal/server/config"
	"github.com/dmitrijs2005/lynkc/internal/server/httpapi"

	channelrepo "github.com/dmitrijs2005/lynkc/internal/server/repositories/channels"
)

type App struct {
	config   *config.Config
	logger   *logging.ZapLogger
	repo     channels.Repository
	channels *channels.Service
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewZapLogger(c.Env)

	repo, err := channelrepo.NewRedisRepository(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	cs := channels.NewService(repo, c.ChannelTTL, logger)

	return &App{config: c, logger: logger, repo: repo, channels: cs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.BindAddress, app.logger, app.channels)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"address", app.config.BindAddress,
		"public_base_url", app.config.PublicBaseURL,
		"channel_ttl", app.config.ChannelTTL.String(),
	)

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := app.repo.Ping(pingCtx); err != nil {
		// Startup continues; /health keeps reporting until the store is up.
		app.logger.Warn(ctx, "channel store unreachable", "error", err)
	}
	pingCancel()

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repo.Close(); err != nil {
		app.logger.Error(ctx, "closing channel store", "error", err)
	}
	_ = app.logger.Sync()
}
