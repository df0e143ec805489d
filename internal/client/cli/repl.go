package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	SetTab(ctx context.Context, name string) error
	Search(ctx context.Context, query string) error
	Show(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the forum client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is
// cancelled, or when the user types "exit" or "quit".
//
// Commands
//
//	help             show available commands
//	login            open the sign-in dialog
//	register         open the registration dialog
//	logout           forget the local session
//	tab <name>       switch navigation tab
//	search [text]    filter topics by title, empty text clears
//	show             render the page again
//	exit | quit      leave the program
//
// Errors returned by handlers are not fatal to the loop; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tp %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, rest := parts[0], strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: tab <name>, search [text], show, logout, exit")
			} else {
				printlnFn("Available commands: login, register, tab <name>, search [text], show, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "tab":
			if rest == "" {
				printlnFn("Usage: tab <name>")
				continue
			}
			_ = a.SetTab(ctx, rest)

		case "search":
			_ = a.Search(ctx, rest)

		case "show":
			_ = a.Show(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
