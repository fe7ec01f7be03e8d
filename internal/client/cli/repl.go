package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Back(ctx context.Context) error
	flushNotifications()
}

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is
// done, and dispatches them to a. Queued notifications are printed before
// every prompt.
//
//	Not logged in: help, register, login, forgot, reset, open, back, verify, exit
//	Logged in:     help, whoami, open, back, verify, logout, exit
//
// Handlers report their own errors, so returned errors are ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		a.flushNotifications()
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "lm %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: whoami, open <view>, back, verify [token], logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, forgot, reset, open <view>, back, verify <token>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "verify":
			_ = a.Verify(ctx, args)

		case "open":
			_ = a.Open(ctx, args)

		case "back":
			_ = a.Back(ctx)

		case "exit", "quit":
			a.flushNotifications()
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
