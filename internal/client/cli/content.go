package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/dmitrijs2005/lynkc/internal/client/session"
	"github.com/google/uuid"
)

// Text replaces the edit buffer text. Nothing reaches the server until the
// next create or sync.
func (a *App) Text(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Enter channel text", os.Stdout)
	if err != nil {
		return err
	}

	a.session.SetText(text)
	printlnFn("Buffer updated; run 'sync' to publish")
	return nil
}

// Attach reads a local file into the edit buffer. The MIME type is inferred
// from the extension; unknown extensions become application/octet-stream.
func (a *App) Attach(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to file", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	a.session.AttachFile(models.File{
		ID:        uuid.NewString(),
		Name:      filepath.Base(path),
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
		Content:   data,
	})

	printlnFn("Attached", filepath.Base(path))
	return nil
}

// Show prints the current channel snapshot: TTL, text and the file listing.
func (a *App) Show(ctx context.Context) error {
	view, ok := a.session.View()
	if !ok {
		printlnFn("No channel content yet")
		return nil
	}

	printlnFn("TTL:", session.FormatTTL(view.TTLSeconds))
	printlnFn("Text:")
	printlnFn(view.Text)

	if len(view.Files) > 0 {
		printlnFn("Files:")
		for _, f := range view.Files {
			printlnFn(fmt.Sprintf("  %s  %s  %s (%d bytes)", f.ID, f.Name, f.MimeType, f.SizeBytes))
		}
	}
	return nil
}
