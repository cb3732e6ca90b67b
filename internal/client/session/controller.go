// Package session owns the active channel: identity, credentials, the local
// edit buffer, link generation, and the create/join/sync/copy flows. It sits
// between the UI layer and the sync engine, projecting status text and the
// most recent snapshot view.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/client/client"
	"github.com/dmitrijs2005/lynkc/internal/client/credentials"
	"github.com/dmitrijs2005/lynkc/internal/client/engine"
	"github.com/dmitrijs2005/lynkc/internal/client/history"
	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/dmitrijs2005/lynkc/internal/common"
	"github.com/dmitrijs2005/lynkc/internal/logging"
	"github.com/dmitrijs2005/lynkc/internal/timex"
)

var (
	// ErrNoChannel means the operation needs an active authenticated channel.
	ErrNoChannel = errors.New("no active channel")

	// ErrChannelIDRequired means join was attempted with an empty id.
	ErrChannelIDRequired = errors.New("channel id required")

	// ErrPasswordRequired means no credential was supplied and the cache
	// had none for the channel. No network call is made in this case.
	ErrPasswordRequired = fmt.Errorf("%w: password required", common.ErrorUnauthorized)
)

// Options carries the injected capabilities the controller depends on, so
// the core stays testable without a real terminal, clock or clipboard.
type Options struct {
	Clock     timex.Clock
	Logger    logging.Logger
	Clipboard Clipboard
	Saver     FileSaver
	BaseURL   string

	// ByteLimit overrides the payload budget. Zero means the shared
	// server limit, common.MaxChannelBytes.
	ByteLimit int64
}

type Controller struct {
	api     client.Client
	creds   credentials.Store
	engine  *engine.Engine
	history *history.Store
	clock   timex.Clock
	logger  logging.Logger
	clip    Clipboard
	saver   FileSaver
	baseURL string
	limit   int64

	mu        sync.Mutex
	channelID string
	password  string
	buffer    models.EditBuffer
	// optimistic is the pending local assumption after a create or update;
	// it is cleared as soon as the next confirmed fetch arrives.
	optimistic *models.Snapshot
	status     string
}

func NewController(api client.Client, creds credentials.Store, eng *engine.Engine, hist *history.Store, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = timex.SystemClock{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8080"
	}
	if opts.ByteLimit <= 0 {
		opts.ByteLimit = common.MaxChannelBytes
	}

	c := &Controller{
		api:     api,
		creds:   creds,
		engine:  eng,
		history: hist,
		clock:   opts.Clock,
		logger:  opts.Logger,
		clip:    opts.Clipboard,
		saver:   opts.Saver,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		limit:   opts.ByteLimit,
		status:  StatusNoChannel,
	}
	eng.SetHandler(c)
	return c
}

// CreateChannel submits the edit buffer as a new channel. An empty password
// asks the server to generate one. On success the credential is cached, the
// engine starts polling, and the just-submitted payload seeds the snapshot
// view optimistically until the first poll confirms it.
func (c *Controller) CreateChannel(ctx context.Context, password string) error {
	c.mu.Lock()
	text := c.buffer.Text
	files := models.CloneFiles(c.buffer.Files)
	c.mu.Unlock()

	if err := common.CheckLimit(text, models.FileSizes(files), c.limit); err != nil {
		c.setStatus(err.Error())
		return err
	}

	res, err := c.api.Create(ctx, text, files, password)
	if err != nil {
		c.setStatus(err.Error())
		return err
	}

	c.mu.Lock()
	c.channelID = res.ID
	c.password = res.Password
	c.optimistic = &models.Snapshot{Text: text, Files: files, TTLSeconds: res.TTLSeconds}
	c.status = StatusChannelLinked
	c.mu.Unlock()

	c.creds.Put(res.ID, res.Password)
	c.history.Reset()
	c.engine.SetChannel(res.ID, res.Password)
	return nil
}

// JoinChannel attaches to an existing channel. When no password is supplied
// the credential cache is consulted first; a miss fails locally with
// "password required" and no network call.
func (c *Controller) JoinChannel(ctx context.Context, channelID, password string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return ErrChannelIDRequired
	}

	if password == "" {
		cached, ok := c.creds.Get(channelID)
		if !ok {
			c.mu.Lock()
			c.channelID = channelID
			c.password = ""
			c.status = StatusPasswordRequired
			c.mu.Unlock()
			c.engine.SetChannel(channelID, "")
			return ErrPasswordRequired
		}
		password = cached
	}

	snap, err := c.api.Fetch(ctx, channelID, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			c.creds.Remove(channelID)
			c.mu.Lock()
			c.channelID = channelID
			c.password = ""
			c.status = StatusPasswordRequired
			c.mu.Unlock()
			c.engine.SetChannel(channelID, "")
		case errors.Is(err, common.ErrorNotFound):
			c.detachAll(StatusChannelExpired)
		default:
			c.setStatus(StatusRetrying)
		}
		return err
	}

	c.mu.Lock()
	c.channelID = channelID
	c.password = password
	// Show the fetched content immediately; the first poll confirms it.
	c.optimistic = snap
	c.status = StatusChannelLinked
	c.mu.Unlock()

	c.creds.Put(channelID, password)
	c.history.Reset()
	c.history.Observe(*snap)
	c.engine.SetChannel(channelID, password)
	return nil
}

// SyncNow pushes the edit buffer to the channel. On success the buffer is
// merged into the snapshot view optimistically, without waiting for the
// next poll.
func (c *Controller) SyncNow(ctx context.Context) error {
	c.mu.Lock()
	channelID, password := c.channelID, c.password
	text := c.buffer.Text
	files := models.CloneFiles(c.buffer.Files)
	c.mu.Unlock()

	if channelID == "" || password == "" {
		return ErrNoChannel
	}

	if err := common.CheckLimit(text, models.FileSizes(files), c.limit); err != nil {
		c.setStatus(err.Error())
		return err
	}

	if err := c.api.Update(ctx, channelID, password, text, files); err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			c.creds.Remove(channelID)
			c.mu.Lock()
			c.password = ""
			c.status = StatusPasswordRequired
			c.mu.Unlock()
			c.engine.SetCredential("")
		case errors.Is(err, common.ErrorNotFound):
			c.detachAll(StatusChannelExpired)
		default:
			c.setStatus(StatusRetrying)
		}
		return err
	}

	ttl := int64(0)
	if view, ok := c.View(); ok {
		ttl = view.TTLSeconds
	}

	c.mu.Lock()
	c.optimistic = &models.Snapshot{Text: text, Files: files, TTLSeconds: ttl}
	c.status = StatusSynced
	c.mu.Unlock()
	return nil
}

// DeleteRemoteFile removes one attachment from the channel, then forces an
// immediate re-fetch instead of waiting for the next poll interval.
//
// A NotFound here is taken to mean the file id was already gone; the forced
// re-fetch will detach the session if the whole channel has expired.
func (c *Controller) DeleteRemoteFile(ctx context.Context, fileID string) error {
	c.mu.Lock()
	channelID, password := c.channelID, c.password
	c.mu.Unlock()

	if channelID == "" || password == "" {
		return ErrNoChannel
	}

	err := c.api.DeleteFile(ctx, channelID, password, fileID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			c.creds.Remove(channelID)
			c.mu.Lock()
			c.password = ""
			c.status = StatusPasswordRequired
			c.mu.Unlock()
			c.engine.SetCredential("")
			return err
		case errors.Is(err, common.ErrorNotFound):
			c.setStatus(StatusFileNotFound)
		default:
			c.setStatus(StatusRetrying)
			return err
		}
	}

	c.mu.Lock()
	c.optimistic = nil
	c.mu.Unlock()
	c.engine.Tick(ctx)
	return err
}

// Detach abandons the active channel on the user's initiative. All derived
// state (credential, history, link reference) is cleared.
func (c *Controller) Detach() {
	c.detachAll(StatusDetached)
}

func (c *Controller) detachAll(status string) {
	c.mu.Lock()
	channelID := c.channelID
	c.channelID = ""
	c.password = ""
	c.optimistic = nil
	c.buffer.Clear()
	c.status = status
	c.mu.Unlock()

	if channelID != "" {
		c.creds.Remove(channelID)
	}
	c.history.Reset()
	c.engine.Detach()
}

// View returns the snapshot the UI should render: the optimistic one when a
// local write is pending confirmation, else the last confirmed fetch.
func (c *Controller) View() (models.Snapshot, bool) {
	c.mu.Lock()
	optimistic := c.optimistic
	c.mu.Unlock()

	if optimistic != nil {
		return optimistic.Clone(), true
	}
	return c.engine.Snapshot()
}

// ChannelID returns the active channel id, or "".
func (c *Controller) ChannelID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channelID
}

// Password returns the active channel credential, or "".
func (c *Controller) Password() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.password
}

// History exposes the snapshot history store for listing and replay.
func (c *Controller) History() *history.Store {
	return c.history
}

// Restore copies a past history entry back into the edit buffer. Purely
// local; no network involved.
func (c *Controller) Restore(entryID string) bool {
	text, files, ok := c.history.Select(entryID)
	if !ok {
		return false
	}
	c.mu.Lock()
	c.buffer.Text = text
	c.buffer.Files = files
	c.status = StatusVersionRestored
	c.mu.Unlock()
	return true
}

// SetText replaces the edit buffer text.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer.Text = text
}

// AttachFile adds a file to the edit buffer.
func (c *Controller) AttachFile(f models.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer.Files = append(c.buffer.Files, f.Clone())
}

// RemoveBufferFile drops a file from the edit buffer by id.
func (c *Controller) RemoveBufferFile(fileID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.buffer.Files {
		if f.ID == fileID {
			c.buffer.Files = append(c.buffer.Files[:i], c.buffer.Files[i+1:]...)
			return true
		}
	}
	return false
}

// Buffer returns a copy of the edit buffer.
func (c *Controller) Buffer() models.EditBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.EditBuffer{Text: c.buffer.Text, Files: models.CloneFiles(c.buffer.Files)}
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// Status returns the human-readable session status line.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SnapshotUpdated implements engine.Handler. A confirmed fetch supersedes
// any optimistic assumption and feeds the history store.
func (c *Controller) SnapshotUpdated(snap models.Snapshot) {
	c.mu.Lock()
	c.optimistic = nil
	c.status = StatusChannelLinked
	c.mu.Unlock()

	c.history.Observe(snap)
}

// StateChanged implements engine.Handler.
func (c *Controller) StateChanged(state engine.State) {
	switch state {
	case engine.StateLocked:
		c.mu.Lock()
		c.password = ""
		c.optimistic = nil
		c.status = StatusPasswordRequired
		c.mu.Unlock()
		c.history.Reset()

	case engine.StateDetached:
		c.mu.Lock()
		alreadyDetached := c.channelID == ""
		c.channelID = ""
		c.password = ""
		c.optimistic = nil
		c.buffer.Clear()
		if !alreadyDetached {
			// Engine-initiated: the channel disappeared under us.
			c.status = StatusChannelExpired
		}
		c.mu.Unlock()
		c.history.Reset()
	}
}

// RunSweeper expires history entries on the fixed sweep cadence until ctx
// is cancelled. The sweep runs even while polling is paused; it just finds
// nothing new to expire once the horizon passes.
func (c *Controller) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(history.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.history.Sweep(c.clock.Now())
		}
	}
}

// PollFailed implements engine.Handler. Transient failures are display-only;
// the engine keeps retrying.
func (c *Controller) PollFailed(err error) {
	c.setStatus(StatusRetrying)
	if c.logger != nil {
		c.logger.Warn(context.Background(), "poll failed", "error", err)
	}
}
