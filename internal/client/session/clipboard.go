package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/dmitrijs2005/lynkc/internal/common"
)

// Clipboard abstracts the platform clipboard so the controller is testable
// without one. An error means the clipboard is unavailable or blocked.
type Clipboard interface {
	WriteText(text string) error
}

// FileSaver persists bytes to local storage and returns the resulting path.
// Used for downloads and as the silent fallback when the clipboard fails.
type FileSaver interface {
	Save(name string, data []byte) (string, error)
}

// CopyRemoteText puts the channel text on the clipboard. When the clipboard
// is unavailable the text is saved to a file instead; the fallback is
// reported as an informational status, not as a second error.
func (c *Controller) CopyRemoteText(ctx context.Context) error {
	view, ok := c.View()
	if !ok {
		return ErrNoChannel
	}

	if err := c.clip.WriteText(view.Text); err != nil {
		return c.fallbackSave(ctx, "lynkc-text.txt", []byte(view.Text), err)
	}

	c.setStatus(StatusTextCopied)
	return nil
}

// CopyFile copies a text attachment to the clipboard, falling back to a
// download. Binary attachments go straight to a download.
func (c *Controller) CopyFile(ctx context.Context, fileID string) error {
	file, err := c.findViewFile(fileID)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(file.MimeType, "text/") {
		return c.DownloadFile(ctx, fileID)
	}

	if err := c.clip.WriteText(string(file.Content)); err != nil {
		return c.fallbackSave(ctx, file.Name, file.Content, err)
	}

	c.setStatus(StatusTextCopied)
	return nil
}

// DownloadFile saves an attachment from the current snapshot view to disk.
func (c *Controller) DownloadFile(ctx context.Context, fileID string) error {
	file, err := c.findViewFile(fileID)
	if err != nil {
		return err
	}

	path, err := c.saver.Save(file.Name, file.Content)
	if err != nil {
		return fmt.Errorf("save file: %w", err)
	}

	c.setStatus(StatusSavedTo + path)
	return nil
}

// CopyChannelLink puts the shareable link on the clipboard. Failure is a
// transient status message, never fatal.
func (c *Controller) CopyChannelLink() error {
	link := c.ChannelLink()
	if link == "" {
		return ErrNoChannel
	}
	if err := c.clip.WriteText(link); err != nil {
		c.setStatus(StatusCopyFailed)
		return nil
	}
	c.setStatus(StatusLinkCopied)
	return nil
}

// CopyChannelPassword puts the channel password on the clipboard. Failure is
// a transient status message, never fatal.
func (c *Controller) CopyChannelPassword() error {
	password := c.Password()
	if password == "" {
		return ErrNoChannel
	}
	if err := c.clip.WriteText(password); err != nil {
		c.setStatus(StatusCopyFailed)
		return nil
	}
	c.setStatus(StatusPasswordCopied)
	return nil
}

// fallbackSave handles a failed clipboard write by silently saving the
// content instead. Only a failure of the fallback itself surfaces an error.
func (c *Controller) fallbackSave(ctx context.Context, name string, data []byte, clipErr error) error {
	if c.logger != nil {
		c.logger.Warn(ctx, "clipboard write failed, falling back to download", "error", clipErr)
	}

	path, err := c.saver.Save(name, data)
	if err != nil {
		c.setStatus(StatusCopyFailed)
		return fmt.Errorf("%w: %v", common.ErrorClipboardUnavailable, err)
	}

	c.setStatus(StatusClipboardFallback + path)
	return nil
}

func (c *Controller) findViewFile(fileID string) (models.File, error) {
	view, ok := c.View()
	if !ok {
		return models.File{}, ErrNoChannel
	}
	for _, file := range view.Files {
		if file.ID == fileID {
			return file, nil
		}
	}
	return models.File{}, fmt.Errorf("file %s: %w", fileID, common.ErrorNotFound)
}
