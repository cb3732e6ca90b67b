package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

// History lists retained snapshot versions, newest first.
func (a *App) History(ctx context.Context) error {
	entries := a.session.History().List()
	if len(entries) == 0 {
		printlnFn("History is empty")
		return nil
	}

	for _, e := range entries {
		preview := e.Text
		if len(preview) > 40 {
			preview = preview[:40] + "..."
		}
		printlnFn(fmt.Sprintf("%s  %s  %d file(s)  %q",
			e.ID, e.CreatedAt.Format(time.RFC3339), len(e.Files), preview))
	}
	return nil
}

// Restore copies a past version back into the edit buffer. Purely local;
// run 'sync' to publish it.
func (a *App) Restore(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "History entry id", os.Stdout)
	if err != nil {
		return err
	}

	if !a.session.Restore(entryID) {
		printlnFn("No such history entry:", entryID)
		return nil
	}

	printlnFn("Restored into the edit buffer; run 'sync' to publish")
	return nil
}
