// Package credentials caches channel passwords for the lifetime of a client
// session. The cache is best-effort: backing-store failures degrade to a
// cache miss ("password required"), never to an error. Entries are removed
// only by the session controller reacting to authentication failures or
// channel deletion, never expired proactively.
package credentials

// keyPrefix namespaces cache keys by channel id to avoid cross-channel
// leakage in a shared backing store.
const keyPrefix = "lynkc:cred:"

// Key returns the namespaced storage key for a channel id.
func Key(channelID string) string {
	return keyPrefix + channelID
}

type Store interface {
	// Get returns the cached password for a channel, if any.
	Get(channelID string) (string, bool)

	// Put stores the password for a channel.
	Put(channelID string, password string)

	// Remove drops the cached password for a channel.
	Remove(channelID string)
}
