package session

import "fmt"

// Status lines shown to the user. These are the only surface the error
// taxonomy reaches the UI through; raw transport detail never appears here.
const (
	StatusNoChannel         = "no channel"
	StatusChannelLinked     = "channel linked"
	StatusPasswordRequired  = "password required"
	StatusChannelExpired    = "channel expired"
	StatusDetached          = "detached"
	StatusSynced            = "synced"
	StatusRetrying          = "connection problem, retrying"
	StatusFileNotFound      = "file not found"
	StatusVersionRestored   = "version restored"
	StatusTextCopied        = "copied to clipboard"
	StatusLinkCopied        = "link copied"
	StatusPasswordCopied    = "password copied"
	StatusCopyFailed        = "copy failed"
	StatusSavedTo           = "saved to "
	StatusClipboardFallback = "clipboard unavailable, saved to "

	// TTLPlaceholder is shown before the first successful read.
	TTLPlaceholder = "—"
)

// FormatTTL renders remaining seconds as "Ns" under one minute and "Mm SSs"
// otherwise. Zero or negative means the channel is about to be discarded.
func FormatTTL(ttlSeconds int64) string {
	switch {
	case ttlSeconds <= 0:
		return "expiring"
	case ttlSeconds < 60:
		return fmt.Sprintf("%ds", ttlSeconds)
	default:
		return fmt.Sprintf("%dm %02ds", ttlSeconds/60, ttlSeconds%60)
	}
}

// TTLLabel projects the current snapshot's TTL for display. The placeholder
// appears while no read has succeeded for the active credential yet.
func (c *Controller) TTLLabel() string {
	view, ok := c.View()
	if !ok {
		return TTLPlaceholder
	}
	return FormatTTL(view.TTLSeconds)
}
