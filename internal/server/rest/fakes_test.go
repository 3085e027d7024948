package rest

import (
	"context"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/server/models"
	"github.com/dmitrijs2005/edustream/internal/server/services"
)

type fakeUsers struct {
	registerRes *services.AuthResult
	registerErr error
	loginRes    *services.AuthResult
	loginErr    error
	refreshTok  string
	refreshErr  error
	meUser      *models.User
	meErr       error

	// tokens maps accepted bearer tokens to user ids
	tokens map[string]string

	gotRefreshToken string
	gotLogoutUser   string
}

func (f *fakeUsers) Register(context.Context, services.RegisterRequest) (*services.AuthResult, error) {
	return f.registerRes, f.registerErr
}

func (f *fakeUsers) Login(context.Context, services.LoginRequest) (*services.AuthResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeUsers) Refresh(_ context.Context, token string) (string, error) {
	f.gotRefreshToken = token
	return f.refreshTok, f.refreshErr
}

func (f *fakeUsers) Authenticate(token string) (string, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return "", common.ErrorUnauthorized
}

func (f *fakeUsers) Me(context.Context, string) (*models.User, error) {
	return f.meUser, f.meErr
}

func (f *fakeUsers) Logout(_ context.Context, userID string) error {
	f.gotLogoutUser = userID
	return nil
}

type fakeCourses struct {
	list      []*models.Course
	listErr   error
	created   *models.Course
	createErr error
}

func (f *fakeCourses) List(context.Context) ([]*models.Course, error) {
	return f.list, f.listErr
}

func (f *fakeCourses) Create(context.Context, services.CreateCourseRequest) (*models.Course, error) {
	return f.created, f.createErr
}

type fakeOrders struct {
	created   *models.Order
	createErr error
	got       *models.Order
	getErr    error

	gotUserID  string
	gotOrderID string
	gotReq     services.CreateOrderRequest
}

func (f *fakeOrders) CreateOrder(_ context.Context, userID string, req services.CreateOrderRequest) (*models.Order, error) {
	f.gotUserID = userID
	f.gotReq = req
	return f.created, f.createErr
}

func (f *fakeOrders) GetOrder(_ context.Context, userID, orderID string) (*models.Order, error) {
	f.gotUserID = userID
	f.gotOrderID = orderID
	return f.got, f.getErr
}

type fakeDashboard struct {
	d   *services.Dashboard
	err error
}

func (f *fakeDashboard) Summarize(context.Context, string) (*services.Dashboard, error) {
	return f.d, f.err
}
