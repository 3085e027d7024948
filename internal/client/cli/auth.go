package cli

import (
	"context"
	"fmt"
)

// getSimpleText, getPassword and getConfirmation point to the interactive
// input helpers and can be swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Register prompts for name, email and password and creates an account.
// Server messages are shown to the user unchanged.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Register(ctx, name, email, password)
	if err != nil {
		a.printf("Registration failed: %s\n", failureMessage(err))
		return err
	}

	a.setUserName(u.Email)
	a.printf("Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for credentials and whether to remember them, then signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, email, password, remember)
	if err != nil {
		a.printf("Login failed: %s\n", failureMessage(err))
		return err
	}

	a.setUserName(u.Email)
	a.printf("Logged in as %s\n", u.Email)
	return nil
}

// Logout ends the session. The cart is kept.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.printf("Logout incomplete: %s\n", err)
		return err
	}
	a.setUserName("")
	a.printf("Logged out\n")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	user := a.currentUserName()
	if user == "" {
		user = "-"
	}
	mode := a.Mode()
	if mode == "" {
		mode = "unknown"
	}
	a.printf("session: %s, user: %s, connection: %s\n", a.session.State(), user, mode)
	return nil
}
