package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for the prompt output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Courses(ctx context.Context) error
	AddToCart(ctx context.Context, id string) error
	RemoveFromCart(ctx context.Context, id string) error
	Cart(ctx context.Context) error
	Checkout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	ShowOrder(ctx context.Context, id string) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx is cancelled, and dispatches them to a.
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("edu %s> ", statusFn()))
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
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: courses, add <id>, remove <id>, cart, checkout, dashboard, order <id>, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, courses, add <id>, remove <id>, cart, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "courses", "ls":
			_ = a.Courses(ctx)

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <course id>")
				continue
			}
			_ = a.AddToCart(ctx, args[0])

		case "remove", "rm":
			if len(args) == 0 {
				printlnFn("Usage: remove <course id>")
				continue
			}
			_ = a.RemoveFromCart(ctx, args[0])

		case "cart":
			_ = a.Cart(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "order":
			if len(args) == 0 {
				printlnFn("Usage: order <order id>")
				continue
			}
			_ = a.ShowOrder(ctx, args[0])

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
