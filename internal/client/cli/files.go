package cli

import (
	"context"
	"log"
	"os"
)

// Copy puts the channel text on the clipboard, falling back to a saved file
// when no clipboard is available.
func (a *App) Copy(ctx context.Context) error {
	if err := a.session.CopyRemoteText(ctx); err != nil {
		log.Printf("copy failed: %s", err.Error())
		return err
	}
	printlnFn(a.session.Status())
	return nil
}

// CopyFile copies a text attachment to the clipboard; binary attachments are
// downloaded instead.
func (a *App) CopyFile(ctx context.Context) error {
	fileID, err := getSimpleText(a.reader, "File id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.CopyFile(ctx, fileID); err != nil {
		log.Printf("copy failed: %s", err.Error())
		return err
	}
	printlnFn(a.session.Status())
	return nil
}

// SaveFile downloads an attachment into the download directory.
func (a *App) SaveFile(ctx context.Context) error {
	fileID, err := getSimpleText(a.reader, "File id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.DownloadFile(ctx, fileID); err != nil {
		log.Printf("save failed: %s", err.Error())
		return err
	}
	printlnFn(a.session.Status())
	return nil
}

// DelFile removes an attachment from the channel and re-fetches right away.
func (a *App) DelFile(ctx context.Context) error {
	fileID, err := getSimpleText(a.reader, "File id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.DeleteRemoteFile(ctx, fileID); err != nil {
		log.Printf("delete failed: %s", err.Error())
		return err
	}
	printlnFn("Deleted", fileID)
	return nil
}
