package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/lynkc/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Create publishes the edit buffer as a new channel. An empty password asks
// the server to generate one. On success the id, password and shareable link
// are printed; the credential is cached so a restart can rejoin silently.
func (a *App) Create(ctx context.Context) error {
	password, err := getSimpleText(a.reader, "Channel password (leave empty to generate one)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.CreateChannel(ctx, password); err != nil {
		log.Printf("create failed: %s", err.Error())
		return err
	}

	printlnFn("Channel:", a.session.ChannelID())
	printlnFn("Password:", a.session.Password())
	printlnFn("Link:", a.session.ChannelLink())
	return nil
}

// Join attaches to an existing channel by id or pasted link. The credential
// cache is tried first; only when it has nothing is the user prompted.
func (a *App) Join(ctx context.Context) error {
	input, err := getSimpleText(a.reader, "Channel id or link", os.Stdout)
	if err != nil {
		return err
	}

	channelID := input
	if id := session.ChannelIDFromLink(input); id != "" {
		channelID = id
	}

	err = a.session.JoinChannel(ctx, channelID, "")
	if errors.Is(err, session.ErrPasswordRequired) {
		var password string
		password, err = getPassword(os.Stdout)
		if err != nil {
			return err
		}
		err = a.session.JoinChannel(ctx, channelID, password)
	}
	if err != nil {
		log.Printf("join failed: %s", err.Error())
		return err
	}

	printlnFn("Joined channel", channelID)
	return nil
}

// Sync pushes the edit buffer to the channel.
func (a *App) Sync(ctx context.Context) error {
	if err := a.session.SyncNow(ctx); err != nil {
		log.Printf("sync failed: %s", err.Error())
		return err
	}
	printlnFn("Synced")
	return nil
}

// Detach abandons the channel and clears all local state derived from it.
func (a *App) Detach(ctx context.Context) error {
	a.session.Detach()
	printlnFn("Detached")
	return nil
}

// Link copies the shareable channel link to the clipboard.
func (a *App) Link(ctx context.Context) error {
	if err := a.session.CopyChannelLink(); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	printlnFn(a.session.ChannelLink())
	printlnFn(a.session.Status())
	return nil
}

// Password copies the channel password to the clipboard.
func (a *App) Password(ctx context.Context) error {
	if err := a.session.CopyChannelPassword(); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	printlnFn(a.session.Status())
	return nil
}
