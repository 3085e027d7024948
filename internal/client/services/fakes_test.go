package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/models"
	"github.com/dmitrijs2005/edustream/internal/client/session"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewStore(db)
}

type fakeAuthAPI struct {
	mu sync.Mutex

	loginRes    *client.AuthResponse
	loginErr    error
	registerRes *client.AuthResponse
	registerErr error
	refreshTok  string
	refreshErr  error

	logoutTokens  []string
	refreshTokens []string
}

func (f *fakeAuthAPI) Login(context.Context, models.Credentials) (*client.AuthResponse, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAuthAPI) Register(context.Context, client.RegisterRequest) (*client.AuthResponse, error) {
	return f.registerRes, f.registerErr
}

func (f *fakeAuthAPI) Refresh(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshTokens = append(f.refreshTokens, token)
	return f.refreshTok, f.refreshErr
}

func (f *fakeAuthAPI) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutTokens = append(f.logoutTokens, token)
	return nil
}

type fakeProber struct {
	user  *models.User
	err   error
	calls int
}

func (f *fakeProber) Me(context.Context, string) (*models.User, error) {
	f.calls++
	return f.user, f.err
}

// syncRunner runs background work inline so tests are deterministic.
func syncRunner(fn func()) { fn() }

// deferredRunner queues background work until flush is called.
type deferredRunner struct {
	queue []func()
}

func (d *deferredRunner) run(fn func()) { d.queue = append(d.queue, fn) }

func (d *deferredRunner) flush() {
	q := d.queue
	d.queue = nil
	for _, fn := range q {
		fn()
	}
}
