package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/dbx"
	"github.com/dmitrijs2005/edustream/internal/server/models"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/courses"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/orders"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/users"
	"github.com/google/uuid"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// --- courses ---

type fakeCoursesRepo struct {
	items     map[string]*models.Course
	listErr   error
	createErr error
}

func (f *fakeCoursesRepo) List(context.Context) ([]*models.Course, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Course, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCoursesRepo) GetByIDs(_ context.Context, ids []string) (map[string]*models.Course, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := map[string]*models.Course{}
	for _, id := range ids {
		if c, ok := f.items[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeCoursesRepo) Create(_ context.Context, c *models.Course) (*models.Course, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = uuid.NewString()
	if f.items == nil {
		f.items = map[string]*models.Course{}
	}
	f.items[c.ID] = c
	return c, nil
}

// --- orders ---

type fakeOrdersRepo struct {
	mu        sync.Mutex
	orders    []*models.Order
	clock     time.Time
	createErr error
	listErr   error
	getErr    error
}

func (f *fakeOrdersRepo) Create(_ context.Context, o *models.Order) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.clock = f.clock.Add(time.Minute)
	o.ID = uuid.NewString()
	o.CreatedAt = f.clock
	o.UpdatedAt = f.clock
	f.orders = append(f.orders, o)
	return o, nil
}

func (f *fakeOrdersRepo) ListByUser(_ context.Context, userID string) ([]*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrdersRepo) GetForUser(_ context.Context, userID, orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, o := range f.orders {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCoursesRepo
	o *fakeOrdersRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		c: &fakeCoursesRepo{items: map[string]*models.Course{}},
		o: &fakeOrdersRepo{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Courses(dbx.DBTX) courses.Repository         { return m.c }
func (m *fakeRepoManager) Orders(dbx.DBTX) orders.Repository           { return m.o }

// --- auth ---

type fakeIssuer struct {
	issueErr   error
	refreshErr error
	verifyErr  error
	subject    string
}

func (f *fakeIssuer) Issue(userID string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "tok-" + userID, nil
}

func (f *fakeIssuer) Verify(string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.subject, nil
}

func (f *fakeIssuer) Refresh(token string) (string, error) {
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return token + "-r", nil
}

// plainHasher stores passwords prefixed, keeping tests fast.
type plainHasher struct {
	hashErr  error
	compared int
}

func (h *plainHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hash:" + p, nil
}

func (h *plainHasher) Compare(hash, p string) error {
	h.compared++
	if hash != "hash:"+p {
		return errors.New("mismatch")
	}
	return nil
}

func ptr(v float64) *float64 { return &v }
