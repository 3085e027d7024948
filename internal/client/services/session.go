// Package services contains the client-side application services used by
// the CLI: session handling, catalog, cart and order history.
package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/models"
	"github.com/dmitrijs2005/edustream/internal/logging"
)

type State int32

const (
	StateAnonymous State = iota
	StateAuthenticated
	StateValidating
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateValidating:
		return "validating"
	default:
		return "anonymous"
	}
}

// AuthAPI is the subset of the API used for session changes.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*client.AuthResponse, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
	Refresh(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

// Prober checks a token against the server and returns its user.
type Prober interface {
	Me(ctx context.Context, token string) (*models.User, error)
}

type SessionStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) (*models.User, error)
	SetUser(ctx context.Context, u *models.User) error
	SaveSession(ctx context.Context, token string, u *models.User, creds *models.Credentials) error
	ClearAuth(ctx context.Context) error
	ClearSession(ctx context.Context) error
}

// Runner executes fn, normally on a new goroutine.
type Runner func(fn func())

// SessionManager owns the client's authentication state.
type SessionManager struct {
	api    AuthAPI
	prober Prober
	store  SessionStore
	logger logging.Logger

	state atomic.Int32
	run   Runner
	wg    sync.WaitGroup

	mu       sync.Mutex
	onLogout func()
}

func NewSessionManager(api AuthAPI, prober Prober, store SessionStore, l logging.Logger) *SessionManager {
	return &SessionManager{
		api:    api,
		prober: prober,
		store:  store,
		logger: l.With("module", "session"),
		run:    func(fn func()) { go fn() },
	}
}

// WithRunner replaces the background runner.
func (m *SessionManager) WithRunner(r Runner) *SessionManager {
	m.run = r
	return m
}

// OnLogout registers fn to run after every logout, forced or explicit.
func (m *SessionManager) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = fn
}

func (m *SessionManager) State() State {
	return State(m.state.Load())
}

func (m *SessionManager) setState(s State) {
	m.state.Store(int32(s))
}

func (m *SessionManager) launch(fn func()) {
	m.wg.Add(1)
	m.run(func() {
		defer m.wg.Done()
		fn()
	})
}

// Wait blocks until background work has finished.
func (m *SessionManager) Wait() {
	m.wg.Wait()
}

// Login authenticates and persists the session. With remember the
// credentials are stored too, so an expired session can be re-established
// without prompting.
func (m *SessionManager) Login(ctx context.Context, email, password string, remember bool) (*models.User, error) {
	creds := models.Credentials{Email: email, Password: password}

	res, err := m.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	var saved *models.Credentials
	if remember {
		saved = &creds
	}
	if err := m.store.SaveSession(ctx, res.Token, res.User, saved); err != nil {
		return nil, err
	}

	m.setState(StateAuthenticated)
	m.logger.Info(ctx, "logged in", "user_id", userID(res.User), "remember", remember)
	return res.User, nil
}

func (m *SessionManager) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	res, err := m.api.Register(ctx, client.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := m.store.SaveSession(ctx, res.Token, res.User, nil); err != nil {
		return nil, err
	}

	m.setState(StateAuthenticated)
	m.logger.Info(ctx, "registered", "user_id", userID(res.User))
	return res.User, nil
}

// IsAuthenticated reports whether a token is stored. It does not contact
// the server.
func (m *SessionManager) IsAuthenticated(ctx context.Context) bool {
	token, err := m.store.Token(ctx)
	return err == nil && token != ""
}

// CheckAuthStatus decides whether the stored session can be used.
//
// With a token and a cached user it answers true at once and validates the
// token in the background. With a token but no user it probes the server:
// success caches the user, a rejection clears token and user, and an
// unreachable server leaves the token in place but answers false.
func (m *SessionManager) CheckAuthStatus(ctx context.Context) bool {
	token, err := m.store.Token(ctx)
	if err != nil || token == "" {
		m.setState(StateAnonymous)
		return false
	}

	user, err := m.store.User(ctx)
	if err != nil {
		m.logger.Warn(ctx, "cached user unreadable", "error", err)
		m.setState(StateAnonymous)
		return false
	}

	if user != nil {
		m.setState(StateAuthenticated)
		bg := context.WithoutCancel(ctx)
		m.launch(func() { m.validateSilently(bg, token) })
		return true
	}

	m.setState(StateValidating)
	u, err := m.prober.Me(ctx, token)
	switch {
	case err == nil:
		if err := m.store.SetUser(ctx, u); err != nil {
			m.logger.Warn(ctx, "caching user failed", "error", err)
		}
		m.setState(StateAuthenticated)
		return true
	case errors.Is(err, client.ErrUnavailable):
		m.logger.Info(ctx, "server unreachable, keeping token", "error", err)
		m.setState(StateAnonymous)
		return false
	default:
		m.logger.Info(ctx, "stored token rejected", "error", err)
		if err := m.store.ClearAuth(ctx); err != nil {
			m.logger.Warn(ctx, "clearing session failed", "error", err)
		}
		m.setState(StateAnonymous)
		return false
	}
}

func (m *SessionManager) validateSilently(ctx context.Context, token string) {
	_, err := m.prober.Me(ctx, token)
	if err == nil {
		return
	}
	if !errors.Is(err, client.ErrUnauthorized) {
		m.logger.Debug(ctx, "silent validation skipped", "error", err)
		return
	}

	fresh, err := m.api.Refresh(ctx, token)
	if err != nil {
		m.logger.Info(ctx, "silent refresh failed, logging out", "error", err)
		_ = m.Logout(ctx)
		return
	}

	// a login that happened meanwhile wins
	current, err := m.store.Token(ctx)
	if err != nil || current != token {
		return
	}
	if err := m.store.SetToken(ctx, fresh); err != nil {
		m.logger.Warn(ctx, "storing refreshed token failed", "error", err)
	}
}

// Logout notifies the server without waiting for it, forgets token, user
// and remembered credentials, and runs the logout hook.
func (m *SessionManager) Logout(ctx context.Context) error {
	token, _ := m.store.Token(ctx)
	if token != "" {
		bg := context.WithoutCancel(ctx)
		m.launch(func() {
			if err := m.api.Logout(bg, token); err != nil {
				m.logger.Debug(bg, "server logout failed", "error", err)
			}
		})
	}

	err := m.store.ClearSession(ctx)
	m.setState(StateAnonymous)

	m.mu.Lock()
	fn := m.onLogout
	m.mu.Unlock()
	if fn != nil {
		fn()
	}

	m.logger.Info(ctx, "logged out")
	return err
}

func userID(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
