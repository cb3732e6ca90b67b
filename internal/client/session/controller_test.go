package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/dmitrijs2005/lynkc/internal/client/client"
	"github.com/dmitrijs2005/lynkc/internal/client/credentials"
	"github.com/dmitrijs2005/lynkc/internal/client/engine"
	"github.com/dmitrijs2005/lynkc/internal/client/history"
	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/dmitrijs2005/lynkc/internal/common"
	"github.com/dmitrijs2005/lynkc/internal/logging"
	"github.com/dmitrijs2005/lynkc/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu          sync.Mutex
	createCalls int
	fetchCalls  int
	updateCalls int
	deleteCalls int

	createFn func(text string, files []models.File, password string) (*client.CreateResult, error)
	fetchFn  func(id, password string) (*models.Snapshot, error)
	updateFn func(id, password, text string, files []models.File) error
	deleteFn func(id, password, fileID string) error
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Create(_ context.Context, text string, files []models.File, password string) (*client.CreateResult, error) {
	f.mu.Lock()
	f.createCalls++
	fn := f.createFn
	f.mu.Unlock()
	if fn == nil {
		if password == "" {
			password = "generated1234"
		}
		return &client.CreateResult{ID: "abc12345", Password: password, TTLSeconds: 900}, nil
	}
	return fn(text, files, password)
}

func (f *fakeAPI) Fetch(_ context.Context, id, password string) (*models.Snapshot, error) {
	f.mu.Lock()
	f.fetchCalls++
	fn := f.fetchFn
	f.mu.Unlock()
	if fn == nil {
		return &models.Snapshot{Text: "remote", TTLSeconds: 900}, nil
	}
	return fn(id, password)
}

func (f *fakeAPI) Update(_ context.Context, id, password, text string, files []models.File) error {
	f.mu.Lock()
	f.updateCalls++
	fn := f.updateFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(id, password, text, files)
}

func (f *fakeAPI) DeleteFile(_ context.Context, id, password, fileID string) error {
	f.mu.Lock()
	f.deleteCalls++
	fn := f.deleteFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(id, password, fileID)
}

type fakeClipboard struct {
	err    error
	writes []string
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

type fakeSaver struct {
	err   error
	names []string
	datas [][]byte
}

func (f *fakeSaver) Save(name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	f.datas = append(f.datas, data)
	return "/downloads/" + name, nil
}

type fixture struct {
	api   *fakeAPI
	creds *credentials.MemoryStore
	eng   *engine.Engine
	hist  *history.Store
	clip  *fakeClipboard
	saver *fakeSaver
	ctrl  *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := &fakeAPI{}
	creds := credentials.NewMemoryStore()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	eng := engine.NewEngine(api, creds, logger, nil, 0)
	hist := history.NewStore(timex.SystemClock{}, 0)
	clip := &fakeClipboard{}
	saver := &fakeSaver{}
	ctrl := NewController(api, creds, eng, hist, Options{
		Logger:    logger,
		Clipboard: clip,
		Saver:     saver,
		BaseURL:   "https://lynkc.example",
		ByteLimit: 1000,
	})
	return &fixture{api: api, creds: creds, eng: eng, hist: hist, clip: clip, saver: saver, ctrl: ctrl}
}

func TestCreateChannel_Success(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText("hello")

	require.NoError(t, f.ctrl.CreateChannel(context.Background(), "p1"))

	assert.Equal(t, "abc12345", f.ctrl.ChannelID())
	assert.Equal(t, "p1", f.ctrl.Password())
	assert.Equal(t, engine.StatePolling, f.eng.State())
	assert.Equal(t, StatusChannelLinked, f.ctrl.Status())

	// Credential cached for the new channel.
	cached, ok := f.creds.Get("abc12345")
	require.True(t, ok)
	assert.Equal(t, "p1", cached)

	// The just-submitted payload seeds the view before any poll.
	view, ok := f.ctrl.View()
	require.True(t, ok)
	assert.Equal(t, "hello", view.Text)
	assert.Equal(t, int64(900), view.TTLSeconds)

	assert.Equal(t, "https://lynkc.example/?channel=abc12345", f.ctrl.ChannelLink())
}

func TestCreateChannel_GeneratedPassword(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText("hello")

	require.NoError(t, f.ctrl.CreateChannel(context.Background(), ""))
	assert.Equal(t, "generated1234", f.ctrl.Password())

	cached, ok := f.creds.Get("abc12345")
	require.True(t, ok)
	assert.Equal(t, "generated1234", cached)
}

func TestCreateChannel_RejectsOversizedPayload(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText(string(make([]byte, 1001)))

	err := f.ctrl.CreateChannel(context.Background(), "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorPayloadTooLarge)

	// The rejection is pre-flight: nothing reached the network.
	assert.Zero(t, f.api.createCalls)

	var lee *common.LimitExceededError
	require.True(t, errors.As(err, &lee))
	assert.Equal(t, int64(1001), lee.Actual)
	assert.Equal(t, int64(1000), lee.Limit)
}

func TestCreateChannel_ExactlyAtLimitAccepted(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText(string(make([]byte, 1000)))

	require.NoError(t, f.ctrl.CreateChannel(context.Background(), "p1"))
	assert.Equal(t, 1, f.api.createCalls)
}

func TestJoinChannel_EmptyID(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.ctrl.JoinChannel(context.Background(), "  ", "p1"), ErrChannelIDRequired)
}

func TestJoinChannel_NoPasswordNoCache(t *testing.T) {
	f := newFixture(t)

	err := f.ctrl.JoinChannel(context.Background(), "abc123", "")
	require.ErrorIs(t, err, ErrPasswordRequired)

	assert.Equal(t, StatusPasswordRequired, f.ctrl.Status())
	assert.Equal(t, engine.StateLocked, f.eng.State())
	// No network call was made.
	assert.Zero(t, f.api.fetchCalls)
}

func TestJoinChannel_UsesCachedCredential(t *testing.T) {
	f := newFixture(t)
	f.creds.Put("abc123", "cachedpw")

	var gotPassword string
	f.api.fetchFn = func(id, password string) (*models.Snapshot, error) {
		gotPassword = password
		return &models.Snapshot{Text: "remote", TTLSeconds: 900}, nil
	}

	require.NoError(t, f.ctrl.JoinChannel(context.Background(), "abc123", ""))
	assert.Equal(t, "cachedpw", gotPassword)
	assert.Equal(t, engine.StatePolling, f.eng.State())

	view, ok := f.ctrl.View()
	require.True(t, ok)
	assert.Equal(t, "remote", view.Text)

	// The fetched snapshot is the first history entry.
	assert.Equal(t, 1, f.hist.Len())
}

func TestJoinChannel_UnauthorizedClearsCachedCredential(t *testing.T) {
	f := newFixture(t)
	f.creds.Put("abc123", "stale")
	f.api.fetchFn = func(id, password string) (*models.Snapshot, error) {
		return nil, common.ErrorUnauthorized
	}

	err := f.ctrl.JoinChannel(context.Background(), "abc123", "")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, ok := f.creds.Get("abc123")
	assert.False(t, ok)
	assert.Equal(t, StatusPasswordRequired, f.ctrl.Status())
	assert.Equal(t, engine.StateLocked, f.eng.State())
	assert.Equal(t, "abc123", f.ctrl.ChannelID(), "channel id is retained while locked")
}

func TestJoinChannel_NotFoundDetaches(t *testing.T) {
	f := newFixture(t)
	f.creds.Put("abc123", "p1")
	f.api.fetchFn = func(id, password string) (*models.Snapshot, error) {
		return nil, common.ErrorNotFound
	}

	err := f.ctrl.JoinChannel(context.Background(), "abc123", "")
	require.ErrorIs(t, err, common.ErrorNotFound)

	assert.Empty(t, f.ctrl.ChannelID())
	assert.Zero(t, f.hist.Len())
	_, ok := f.creds.Get("abc123")
	assert.False(t, ok)
	assert.Empty(t, f.ctrl.ChannelLink())
	assert.Equal(t, StatusChannelExpired, f.ctrl.Status())
}

func TestSyncNow_RequiresActiveChannel(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.ctrl.SyncNow(context.Background()), ErrNoChannel)
	assert.Zero(t, f.api.updateCalls)
}

func TestSyncNow_OptimisticMerge(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText("v1")
	require.NoError(t, f.ctrl.CreateChannel(context.Background(), "p1"))

	f.ctrl.SetText("v2")
	require.NoError(t, f.ctrl.SyncNow(context.Background()))

	// The view shows the local buffer before any poll confirms it.
	view, ok := f.ctrl.View()
	require.True(t, ok)
	assert.Equal(t, "v2", view.Text)
	assert.Equal(t, StatusSynced, f.ctrl.Status())
	assert.Equal(t, 1, f.api.updateCalls)
}

func TestSyncNow_NotFoundDetachesCompletely(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText("v1")
	require.NoError(t, f.ctrl.CreateChannel(context.Background(), "p1"))
	f.api.updateFn = func(id, password, text string, files []models.File) error {
		return common.ErrorNotFound
	}

	err := f.ctrl.SyncNow(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)

	assert.Empty(t, f.ctrl.ChannelID())
	assert.Zero(t, f.hist.Len())
	_, ok := f.creds.Get("abc12345")
	assert.False(t, ok)
	assert.Equal(t, engine.StateDetached, f.eng.State())

	buf := f.ctrl.Buffer()
	assert.Empty(t, buf.Text, "edit buffer is cleared on detach")
}

func TestSyncNow_UnauthorizedLocks(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText("v1")
	require.NoError(t, f.ctrl.CreateChannel(context.Background(), "p1"))
	f.api.updateFn = func(id, password, text string, files []models.File) error {
		return common.ErrorUnauthorized
	}

	err := f.ctrl.SyncNow(context.Background())
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	assert.Equal(t, engine.StateLocked, f.eng.State())
	assert.Equal(t, "abc12345", f.ctrl.ChannelID())
	_, ok := f.creds.Get("abc12345")
	assert.False(t, ok)
}

func TestConfirmedFetchClearsOptimistic(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText("local")
	require.NoError(t, f.ctrl.CreateChannel(context.Background(), "p1"))

	// Optimistic view first.
	view, _ := f.ctrl.View()
	assert.Equal(t, "local", view.Text)

	// The next poll confirms server truth and supersedes the assumption.
	f.api.fetchFn = func(id, password string) (*models.Snapshot, error) {
		return &models.Snapshot{Text: "confirmed", TTLSeconds: 900}, nil
	}
	f.eng.Tick(context.Background())

	view, ok := f.ctrl.View()
	require.True(t, ok)
	assert.Equal(t, "confirmed", view.Text)
}

func TestIdenticalPollsYieldOneHistoryEntry(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.JoinChannel(context.Background(), "abc123", "p1"))

	f.api.fetchFn = func(id, password string) (*models.Snapshot, error) {
		return &models.Snapshot{Text: "x", TTLSeconds: 900}, nil
	}
	f.eng.Tick(context.Background())
	f.eng.Tick(context.Background())

	// Join observed "remote", the two identical polls observed "x" once.
	assert.Equal(t, 2, f.hist.Len())
}

func TestDeleteRemoteFile_ForcesImmediateRefetch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.JoinChannel(context.Background(), "abc123", "p1"))
	before := f.api.fetchCalls

	require.NoError(t, f.ctrl.DeleteRemoteFile(context.Background(), "f1"))
	assert.Equal(t, 1, f.api.deleteCalls)
	assert.Equal(t, before+1, f.api.fetchCalls, "re-fetch happens immediately, not on the next interval")
}

func TestDeleteRemoteFile_MissingFileDoesNotDetach(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.JoinChannel(context.Background(), "abc123", "p1"))
	f.api.deleteFn = func(id, password, fileID string) error {
		return common.ErrorNotFound
	}

	err := f.ctrl.DeleteRemoteFile(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "abc123", f.ctrl.ChannelID())
	assert.Equal(t, StatusFileNotFound, f.ctrl.Status())
}

func TestDetach_ClearsEverything(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetText("v1")
	require.NoError(t, f.ctrl.CreateChannel(context.Background(), "p1"))

	f.ctrl.Detach()

	assert.Empty(t, f.ctrl.ChannelID())
	assert.Empty(t, f.ctrl.Password())
	assert.Empty(t, f.ctrl.ChannelLink())
	assert.Zero(t, f.hist.Len())
	assert.Equal(t, engine.StateDetached, f.eng.State())
	assert.Equal(t, StatusDetached, f.ctrl.Status())
	_, ok := f.creds.Get("abc12345")
	assert.False(t, ok)
}

func TestRestore_CopiesHistoryIntoBuffer(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.JoinChannel(context.Background(), "abc123", "p1"))

	entries := f.hist.List()
	require.NotEmpty(t, entries)

	require.True(t, f.ctrl.Restore(entries[0].ID))
	assert.Equal(t, "remote", f.ctrl.Buffer().Text)
	assert.False(t, f.ctrl.Restore("nope"))
}

func TestBufferFileOperations(t *testing.T) {
	f := newFixture(t)
	f.ctrl.AttachFile(models.File{ID: "f1", Name: "a.txt", MimeType: "text/plain", SizeBytes: 3, Content: []byte("aaa")})

	buf := f.ctrl.Buffer()
	require.Len(t, buf.Files, 1)

	require.True(t, f.ctrl.RemoveBufferFile("f1"))
	assert.False(t, f.ctrl.RemoveBufferFile("f1"))
	assert.Empty(t, f.ctrl.Buffer().Files)
}
