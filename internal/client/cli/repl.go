package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasChannel() bool
	Create(ctx context.Context) error
	Join(ctx context.Context) error
	Text(ctx context.Context) error
	Attach(ctx context.Context) error
	Show(ctx context.Context) error
	History(ctx context.Context) error
	Restore(ctx context.Context) error
	Copy(ctx context.Context) error
	CopyFile(ctx context.Context) error
	SaveFile(ctx context.Context) error
	DelFile(ctx context.Context) error
	Link(ctx context.Context) error
	Password(ctx context.Context) error
	Sync(ctx context.Context) error
	Detach(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the lynkc CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current session status (from statusFn) and accepts:
//
//	No channel:
//	  - help           — show available commands
//	  - create         — create a channel from the edit buffer
//	  - join           — attach to an existing channel by id or link
//	  - text | attach  — edit the local buffer before creating
//	  - exit | quit    — leave the program
//
//	Channel attached:
//	  - help           — show available commands
//	  - show           — print the current channel snapshot
//	  - text           — replace the edit buffer text
//	  - attach         — add a local file to the edit buffer
//	  - sync           — push the edit buffer to the channel
//	  - history        — list retained snapshot versions
//	  - restore        — copy a past version back into the buffer
//	  - copy           — copy channel text to the clipboard
//	  - copyfile       — copy a text attachment (binary ones download)
//	  - savefile       — download an attachment
//	  - delfile        — delete an attachment from the channel
//	  - link           — copy the shareable link
//	  - password       — copy the channel password
//	  - detach         — abandon the channel
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lynkc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.hasChannel() {
				printlnFn("Available commands: show, text, attach, sync, history, restore, copy, copyfile, savefile, delfile, link, password, detach, exit")
			} else {
				printlnFn("Available commands: create, join, text, attach, exit")
			}

		case "create":
			_ = a.Create(ctx)

		case "join":
			_ = a.Join(ctx)

		case "text":
			_ = a.Text(ctx)

		case "attach":
			_ = a.Attach(ctx)

		case "show":
			_ = a.Show(ctx)

		case "history":
			_ = a.History(ctx)

		case "restore":
			_ = a.Restore(ctx)

		case "copy":
			_ = a.Copy(ctx)

		case "copyfile":
			_ = a.CopyFile(ctx)

		case "savefile":
			_ = a.SaveFile(ctx)

		case "delfile":
			_ = a.DelFile(ctx)

		case "link":
			_ = a.Link(ctx)

		case "password":
			_ = a.Password(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "detach":
			_ = a.Detach(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
