package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/edustream/internal/client/models"
)

// AuthResponse is the body of /login and /register.
type AuthResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateOrderRequest struct {
	Courses []models.LineItem `json:"courses"`
	Amount  float64           `json:"amount"`
	Status  string            `json:"status,omitempty"`
}

func (g *Gateway) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := g.Send(ctx, http.MethodGet, "/ping", "", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// Login posts credentials. A 401 is reported as ErrInvalidCredentials and
// keeps the server message.
func (g *Gateway) Login(ctx context.Context, creds models.Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := g.Send(ctx, http.MethodPost, "/login", "", creds, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			apiErr.Err = ErrInvalidCredentials
		}
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := g.Send(ctx, http.MethodPost, "/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges token for a new one.
func (g *Gateway) Refresh(ctx context.Context, token string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := g.Send(ctx, http.MethodPost, "/refresh", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me probes the identity behind token without any recovery.
func (g *Gateway) Me(ctx context.Context, token string) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := g.Send(ctx, http.MethodGet, "/me", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (g *Gateway) Logout(ctx context.Context, token string) error {
	return g.Send(ctx, http.MethodPost, "/logout", token, nil, nil)
}

func (g *Gateway) Courses(ctx context.Context) ([]models.Course, error) {
	list := make([]models.Course, 0)
	if err := g.Do(ctx, http.MethodGet, "/courses", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *Gateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var resp struct {
		Order *models.Order `json:"order"`
	}
	if err := g.Do(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (g *Gateway) Order(ctx context.Context, id string) (*models.Order, error) {
	var resp struct {
		Order *models.Order `json:"order"`
	}
	if err := g.Do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (g *Gateway) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := g.Do(ctx, http.MethodGet, "/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
