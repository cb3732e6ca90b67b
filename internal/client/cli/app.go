package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lynkc/internal/client/client"
	"github.com/dmitrijs2005/lynkc/internal/client/config"
	"github.com/dmitrijs2005/lynkc/internal/client/credentials"
	"github.com/dmitrijs2005/lynkc/internal/client/engine"
	"github.com/dmitrijs2005/lynkc/internal/client/history"
	"github.com/dmitrijs2005/lynkc/internal/client/session"
	"github.com/dmitrijs2005/lynkc/internal/logging"
	"github.com/dmitrijs2005/lynkc/internal/timex"
)

// channelEnvVar optionally carries a channel link to join on startup, e.g.
// LYNKC_CHANNEL="http://host/?channel=abc123".
const channelEnvVar = "LYNKC_CHANNEL"

type App struct {
	config  *config.Config
	api     client.Client
	engine  *engine.Engine
	session *session.Controller
	logger  logging.Logger
	reader  *bufio.Reader
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {

	api := client.NewHTTPClient(cfg.ServerURL)
	creds := credentials.NewFileStore(credentials.SessionFilePath())
	eng := engine.NewEngine(api, creds, logger, nil, cfg.PollInterval)
	hist := history.NewStore(timex.SystemClock{}, 0)

	saver, err := newOSSaver(cfg.DownloadDir)
	if err != nil {
		return nil, err
	}

	ctrl := session.NewController(api, creds, eng, hist, session.Options{
		Logger:    logger,
		Clipboard: systemClipboard{},
		Saver:     saver,
		BaseURL:   cfg.ServerURL,
	})

	return &App{
		config:  cfg,
		api:     api,
		engine:  eng,
		session: ctrl,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the poll loop and the history sweeper, then blocks in the REPL
// until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.api.Close()

	go a.engine.Run(ctx)
	go a.session.RunSweeper(ctx)

	if link := os.Getenv(channelEnvVar); link != "" {
		a.session.ApplyStartupLink(link)
	}

	fmt.Println("lynkc CLI (type 'help' for commands)")
	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
}

func (a *App) hasChannel() bool {
	return a.session.ChannelID() != ""
}

// statusLine renders the REPL prompt segment: channel id when attached, the
// session status and the TTL countdown.
func (a *App) statusLine() string {
	channelID := a.session.ChannelID()
	if channelID == "" {
		return a.session.Status()
	}
	return fmt.Sprintf("%s | %s | ttl %s", channelID, a.session.Status(), a.session.TTLLabel())
}
