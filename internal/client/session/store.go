// Package session persists the client's authentication state and cart in
// the local metadata table.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/edustream/internal/client/models"
	"github.com/dmitrijs2005/edustream/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/edustream/internal/dbx"
)

const (
	KeyToken       = "token"
	KeyUser        = "user"
	KeyCart        = "cart"
	KeyCredentials = "credentials"
)

// Sealer encrypts values kept at rest.
type Sealer interface {
	SealJSON(v any) ([]byte, error)
	OpenJSON(data []byte, v any) error
}

// Store is safe for concurrent use; SQLite serialises the writes.
type Store struct {
	db      *sql.DB
	newRepo func(dbx.DBTX) metadata.Repository
	sealer  Sealer
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		newRepo: func(tx dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(tx) },
	}
}

// WithSealer makes the store encrypt remembered credentials.
func (s *Store) WithSealer(sl Sealer) *Store {
	s.sealer = sl
	return s
}

func (s *Store) repo() metadata.Repository {
	return s.newRepo(s.db)
}

// Token returns the stored bearer token or "".
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo().Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo().Set(ctx, KeyToken, []byte(token))
}

// User returns the cached user, or nil when none is cached.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	var u models.User
	ok, err := getJSON(ctx, s.repo(), KeyUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetUser(ctx context.Context, u *models.User) error {
	return setJSON(ctx, s.repo(), KeyUser, u)
}

// Credentials returns the remembered login, or nil.
func (s *Store) Credentials(ctx context.Context) (*models.Credentials, error) {
	repo := s.repo()
	if s.sealer == nil {
		var c models.Credentials
		ok, err := getJSON(ctx, repo, KeyCredentials, &c)
		if err != nil || !ok {
			return nil, err
		}
		return &c, nil
	}

	raw, err := repo.Get(ctx, KeyCredentials)
	if err != nil || raw == nil {
		return nil, err
	}
	var c models.Credentials
	if err := s.sealer.OpenJSON(raw, &c); err != nil {
		return nil, fmt.Errorf("open %s: %w", KeyCredentials, err)
	}
	return &c, nil
}

func (s *Store) setCredentials(ctx context.Context, repo metadata.Repository, creds *models.Credentials) error {
	if s.sealer == nil {
		return setJSON(ctx, repo, KeyCredentials, creds)
	}
	raw, err := s.sealer.SealJSON(creds)
	if err != nil {
		return fmt.Errorf("seal %s: %w", KeyCredentials, err)
	}
	return repo.Set(ctx, KeyCredentials, raw)
}

// SaveSession writes token and user in one transaction. creds are stored
// when non-nil and removed otherwise.
func (s *Store) SaveSession(ctx context.Context, token string, u *models.User, creds *models.Credentials) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		if err := setJSON(ctx, repo, KeyUser, u); err != nil {
			return err
		}
		if creds == nil {
			return repo.Delete(ctx, KeyCredentials)
		}
		return s.setCredentials(ctx, repo, creds)
	})
}

// ClearAuth drops token and user but keeps remembered credentials.
func (s *Store) ClearAuth(ctx context.Context) error {
	return s.repo().Delete(ctx, KeyToken, KeyUser)
}

// ClearSession drops token, user and remembered credentials. The cart
// survives a logout.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.repo().Delete(ctx, KeyToken, KeyUser, KeyCredentials)
}

// Cart returns the stored cart; an absent cart is empty, not nil.
func (s *Store) Cart(ctx context.Context) ([]models.Course, error) {
	items := make([]models.Course, 0)
	if _, err := getJSON(ctx, s.repo(), KeyCart, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SetCart(ctx context.Context, items []models.Course) error {
	if items == nil {
		items = []models.Course{}
	}
	return setJSON(ctx, s.repo(), KeyCart, items)
}

func getJSON(ctx context.Context, repo metadata.Repository, key string, dst any) (bool, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, repo metadata.Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, raw)
}
