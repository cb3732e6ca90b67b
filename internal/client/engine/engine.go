// Package engine maintains the live subscription to one channel's remote
// state. It is an explicit state machine driven by discrete events: channel
// or credential changes, poll ticks and poll results. Exactly one fetch is
// outstanding at a time, and results arriving for a superseded
// (channel, credential) pair are discarded rather than applied.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/client/client"
	"github.com/dmitrijs2005/lynkc/internal/client/credentials"
	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/dmitrijs2005/lynkc/internal/common"
	"github.com/dmitrijs2005/lynkc/internal/logging"
)

// State of the engine for the active channel+credential pair.
type State string

const (
	// StateIdle: no channel id. No network activity.
	StateIdle State = "idle"

	// StatePolling: channel id and credential present, re-fetching on the
	// poll interval.
	StatePolling State = "polling"

	// StateLocked: channel id present, credential absent or invalid. No
	// polling until a credential becomes available.
	StateLocked State = "locked"

	// StateDetached: channel abandoned or gone; all per-channel state
	// cleared.
	StateDetached State = "detached"
)

// DefaultPollInterval is the fixed re-fetch cadence.
const DefaultPollInterval = 2 * time.Second

// Handler receives engine events. Callbacks run on the goroutine driving the
// tick and must not block for long; they are invoked outside the engine lock
// and may call back into the engine.
type Handler interface {
	// SnapshotUpdated fires after every successful fetch, including ones
	// whose content did not change. Deduplication is the observer's job.
	SnapshotUpdated(snap models.Snapshot)

	// StateChanged fires when the engine moves between states.
	StateChanged(state State)

	// PollFailed fires for transient poll errors. The engine keeps
	// retrying on its own; this is for display only.
	PollFailed(err error)
}

type Engine struct {
	client   client.Client
	creds    credentials.Store
	logger   logging.Logger
	handler  Handler
	interval time.Duration

	mu        sync.Mutex
	state     State
	channelID string
	password  string
	gen       uint64
	inFlight  bool
	snapshot  *models.Snapshot
}

func NewEngine(c client.Client, creds credentials.Store, logger logging.Logger, handler Handler, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Engine{
		client:   c,
		creds:    creds,
		logger:   logger,
		handler:  handler,
		interval: interval,
		state:    StateIdle,
	}
}

// SetHandler wires the event consumer. Must be called before Run; the
// session controller and the engine reference each other, so one of them has
// to be attached after construction.
func (e *Engine) SetHandler(h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = h
}

func stateFor(channelID, password string) State {
	switch {
	case channelID == "":
		return StateIdle
	case password == "":
		return StateLocked
	default:
		return StatePolling
	}
}

// SetChannel switches the engine to a new channel+credential pair. Any
// in-flight fetch for the previous pair is superseded and its result will be
// dropped.
func (e *Engine) SetChannel(channelID, password string) {
	e.mu.Lock()
	e.gen++
	e.channelID = channelID
	e.password = password
	e.snapshot = nil
	changed := e.setStateLocked(stateFor(channelID, password))
	e.mu.Unlock()

	e.notifyState(changed)
}

// SetCredential supplies a credential for the current channel, typically
// moving Locked to Polling.
func (e *Engine) SetCredential(password string) {
	e.mu.Lock()
	e.gen++
	e.password = password
	e.snapshot = nil
	changed := e.setStateLocked(stateFor(e.channelID, password))
	e.mu.Unlock()

	e.notifyState(changed)
}

// Detach abandons the channel: identity, credential interest and the cached
// snapshot are all dropped.
func (e *Engine) Detach() {
	e.mu.Lock()
	e.gen++
	e.channelID = ""
	e.password = ""
	e.snapshot = nil
	changed := e.setStateLocked(StateDetached)
	e.mu.Unlock()

	e.notifyState(changed)
}

// setStateLocked records a state transition and reports whether the state
// actually changed. Caller holds e.mu.
func (e *Engine) setStateLocked(next State) (changed bool) {
	if e.state == next {
		return false
	}
	e.state = next
	return true
}

func (e *Engine) notifyState(changed bool) {
	if !changed || e.handler == nil {
		return
	}
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	e.handler.StateChanged(state)
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Channel() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channelID
}

// Snapshot returns a copy of the most recent confirmed snapshot, if any.
func (e *Engine) Snapshot() (models.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.snapshot == nil {
		return models.Snapshot{}, false
	}
	return e.snapshot.Clone(), true
}

// Tick performs one poll if the engine is polling and no fetch is already
// outstanding. Production ticks come from Run; tests drive Tick directly.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	if e.state != StatePolling || e.inFlight {
		e.mu.Unlock()
		return
	}
	gen, id, password := e.gen, e.channelID, e.password
	e.inFlight = true
	e.mu.Unlock()

	snap, err := e.client.Fetch(ctx, id, password)

	e.mu.Lock()
	e.inFlight = false
	if gen != e.gen {
		// The pair this fetch was issued for is gone; a late response
		// must not corrupt the new channel's state.
		e.mu.Unlock()
		return
	}

	switch {
	case err == nil:
		e.snapshot = snap
		published := snap.Clone()
		handler := e.handler
		e.mu.Unlock()
		if handler != nil {
			handler.SnapshotUpdated(published)
		}

	case errors.Is(err, common.ErrorUnauthorized):
		e.creds.Remove(id)
		e.gen++
		e.password = ""
		e.snapshot = nil
		changed := e.setStateLocked(StateLocked)
		e.mu.Unlock()
		e.notifyState(changed)

	case errors.Is(err, common.ErrorNotFound):
		e.creds.Remove(id)
		e.gen++
		e.channelID = ""
		e.password = ""
		e.snapshot = nil
		changed := e.setStateLocked(StateDetached)
		e.mu.Unlock()
		e.notifyState(changed)

	default:
		// Transient: stay in Polling and retry on the next tick.
		handler := e.handler
		e.mu.Unlock()
		e.logger.Warn(ctx, "poll failed", "channel", id, "error", err)
		if handler != nil {
			handler.PollFailed(err)
		}
	}
}

// Run drives the poll loop until ctx is cancelled. It ticks once
// immediately, then on the fixed interval.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		e.Tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
