package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/models"
	"github.com/dmitrijs2005/edustream/internal/client/services"
	"github.com/dmitrijs2005/edustream/internal/logging"
)

type fakeSession struct {
	loggedIn bool
	state    services.State

	loginEmail    string
	loginPass     string
	loginRemember bool
	loginUser     *models.User
	loginErr      error

	regName string
	regUser *models.User
	regErr  error

	logoutCalled bool
	logoutErr    error

	checkResult bool
	waited      bool
}

func (f *fakeSession) Login(_ context.Context, email, password string, remember bool) (*models.User, error) {
	f.loginEmail, f.loginPass, f.loginRemember = email, password, remember
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = true
	return f.loginUser, nil
}

func (f *fakeSession) Register(_ context.Context, name, _, _ string) (*models.User, error) {
	f.regName = name
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.loggedIn = true
	return f.regUser, nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalled = true
	f.loggedIn = false
	return f.logoutErr
}

func (f *fakeSession) IsAuthenticated(context.Context) bool { return f.loggedIn }
func (f *fakeSession) CheckAuthStatus(context.Context) bool { return f.checkResult }
func (f *fakeSession) State() services.State                { return f.state }
func (f *fakeSession) Wait()                                { f.waited = true }

type fakeProfile struct {
	user *models.User
	err  error
}

func (f fakeProfile) User(context.Context) (*models.User, error) { return f.user, f.err }

type fakeCart struct {
	items       []models.Course
	addErr      error
	checkoutErr error
	order       *models.Order
	checkouts   int
}

func (f *fakeCart) Add(_ context.Context, c models.Course) (bool, error) {
	if f.addErr != nil {
		return false, f.addErr
	}
	for _, it := range f.items {
		if it.ID == c.ID {
			return false, nil
		}
	}
	f.items = append(f.items, c)
	return true, nil
}

func (f *fakeCart) Remove(_ context.Context, id string) (bool, error) {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCart) Items(context.Context) ([]models.Course, error) { return f.items, nil }

func (f *fakeCart) Total(context.Context) (float64, error) {
	var sum float64
	for _, it := range f.items {
		sum += it.Price
	}
	return sum, nil
}

func (f *fakeCart) Checkout(context.Context) (*models.Order, error) {
	f.checkouts++
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	f.items = nil
	return f.order, nil
}

type fakeCatalog struct {
	courses []models.Course
	err     error
}

func (f fakeCatalog) List(context.Context) ([]models.Course, error) { return f.courses, f.err }

func (f fakeCatalog) Find(_ context.Context, id string) (*models.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.courses {
		if f.courses[i].ID == id {
			c := f.courses[i]
			return &c, nil
		}
	}
	return nil, client.ErrNotFound
}

type fakeDashboard struct {
	summary *models.Dashboard
	order   *models.Order
	err     error
}

func (f fakeDashboard) Summary(context.Context) (*models.Dashboard, error)   { return f.summary, f.err }
func (f fakeDashboard) Order(context.Context, string) (*models.Order, error) { return f.order, f.err }

type fakePinger struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (p *fakePinger) Ping(context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return client.ErrUnavailable
	}
	return nil
}

var sampleCourses = []models.Course{
	{ID: "c1", Title: "Go Basics", Price: 19.99, Category: "programming"},
	{ID: "c2", Title: "Advanced SQL", Price: 29.5, Category: "data"},
}

func newTestApp(s *fakeSession) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		session:   s,
		profile:   fakeProfile{},
		cart:      &fakeCart{},
		catalog:   fakeCatalog{courses: sampleCourses},
		dashboard: fakeDashboard{},
		pinger:    &fakePinger{},
		logger:    logging.Nop(),
		reader:    bufio.NewReader(strings.NewReader("")),
		out:       out,
	}, out
}

// stubInputs replaces the prompt helpers with canned answers.
func stubInputs(text []string, password string, remember bool) func() {
	origST, origGP, origGC := getSimpleText, getPassword, getConfirmation
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(text) {
			return "", io.EOF
		}
		i++
		return text[i-1], nil
	}
	getPassword = func(_ *bufio.Reader, _ io.Writer) (string, error) { return password, nil }
	getConfirmation = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return remember, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
		getConfirmation = origGC
	}
}
