package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/lynkc/internal/client/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelIDFromLink(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "full link", raw: "https://lynkc.example/?channel=abc123", want: "abc123"},
		{name: "bare query", raw: "channel=abc123", want: "abc123"},
		{name: "extra params", raw: "https://lynkc.example/?utm=x&channel=abc123", want: "abc123"},
		{name: "bare id is not a link", raw: "abc123", want: ""},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChannelIDFromLink(tt.raw))
		})
	}
}

func TestApplyStartupLink_WithCachedCredential(t *testing.T) {
	f := newFixture(t)
	f.creds.Put("abc123", "cachedpw")

	f.ctrl.ApplyStartupLink("https://lynkc.example/?channel=abc123")

	assert.Equal(t, "abc123", f.ctrl.ChannelID())
	assert.Equal(t, engine.StatePolling, f.eng.State())

	f.eng.Tick(context.Background())
	view, ok := f.ctrl.View()
	require.True(t, ok)
	assert.Equal(t, "remote", view.Text)
}

func TestApplyStartupLink_WithoutCredentialParksLocked(t *testing.T) {
	f := newFixture(t)

	f.ctrl.ApplyStartupLink("https://lynkc.example/?channel=abc123")

	assert.Equal(t, "abc123", f.ctrl.ChannelID())
	assert.Equal(t, engine.StateLocked, f.eng.State())
	assert.Equal(t, StatusPasswordRequired, f.ctrl.Status())
	assert.Zero(t, f.api.fetchCalls)
}

func TestApplyStartupLink_IgnoresNonLinks(t *testing.T) {
	f := newFixture(t)

	f.ctrl.ApplyStartupLink("not a link at all")

	assert.Empty(t, f.ctrl.ChannelID())
	assert.Equal(t, engine.StateIdle, f.eng.State())
}
