package session

import (
	"net/url"
)

// channelQueryParam is the query-string key carrying the shareable
// channel reference.
const channelQueryParam = "channel"

// ChannelLink returns the shareable link for the active channel, or "" when
// there is none.
func (c *Controller) ChannelLink() string {
	channelID := c.ChannelID()
	if channelID == "" {
		return ""
	}
	return c.baseURL + "/?" + channelQueryParam + "=" + url.QueryEscape(channelID)
}

// ChannelIDFromLink extracts a channel id from a pasted link or raw query
// string. Returns "" when none is present.
func ChannelIDFromLink(raw string) string {
	if raw == "" {
		return ""
	}

	if u, err := url.Parse(raw); err == nil {
		if id := u.Query().Get(channelQueryParam); id != "" {
			return id
		}
	}

	// Allow a bare "channel=<id>" fragment.
	if values, err := url.ParseQuery(raw); err == nil {
		return values.Get(channelQueryParam)
	}
	return ""
}

// ApplyStartupLink pre-populates the channel id from a link seen at startup.
// A cached credential joins immediately; otherwise the session parks in the
// password-required state.
func (c *Controller) ApplyStartupLink(raw string) {
	channelID := ChannelIDFromLink(raw)
	if channelID == "" {
		return
	}

	password, _ := c.creds.Get(channelID)

	c.mu.Lock()
	c.channelID = channelID
	c.password = password
	if password == "" {
		c.status = StatusPasswordRequired
	} else {
		c.status = StatusChannelLinked
	}
	c.mu.Unlock()

	c.engine.SetChannel(channelID, password)
}
