package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/edustream/internal/client/models"
	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBytes = 4 << 20

// TokenStore is the part of the local session the gateway reads and updates.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Credentials(ctx context.Context) (*models.Credentials, error)
}

// retryState tracks the single recovery a call may perform.
type retryState int

const (
	stateNotRetried retryState = iota
	stateRetrying
	stateDone
)

// Gateway sends JSON requests to the API. Authenticated calls that fail
// with 401 are recovered once, by replaying remembered credentials or by
// refreshing the token, and then retried.
type Gateway struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	logger  logging.Logger

	mu       sync.RWMutex
	onLogout func(context.Context)
}

func NewGateway(baseURL string, timeout time.Duration, store TokenStore, l logging.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		logger:  l.With("module", "gateway"),
	}
}

// SetLogoutHook registers fn to run when a failed recovery ends the session.
func (g *Gateway) SetLogoutHook(fn func(context.Context)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onLogout = fn
}

func (g *Gateway) forceLogout(ctx context.Context) {
	g.mu.RLock()
	fn := g.onLogout
	g.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

// Do performs an authenticated call. in is encoded as the JSON body when
// non-nil and a 2xx response is decoded into out when non-nil.
func (g *Gateway) Do(ctx context.Context, method, path string, in, out any) error {
	body, err := encodeBody(in)
	if err != nil {
		return err
	}

	var callErr error
	state := stateNotRetried

	for state != stateDone {
		token, err := g.store.Token(ctx)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}

		callErr = g.send(ctx, method, path, token, body, out)
		if state == stateRetrying || !errors.Is(callErr, ErrUnauthorized) {
			state = stateDone
			continue
		}

		if err := g.recoverSession(ctx, token); err != nil {
			g.logger.Warn(ctx, "session recovery failed", "method", method, "path", path, "error", err)
			g.forceLogout(ctx)
			return callErr
		}
		state = stateRetrying
	}

	return callErr
}

// Send performs a single call with an explicit token and no recovery.
func (g *Gateway) Send(ctx context.Context, method, path, token string, in, out any) error {
	body, err := encodeBody(in)
	if err != nil {
		return err
	}
	return g.send(ctx, method, path, token, body, out)
}

func (g *Gateway) recoverSession(ctx context.Context, staleToken string) error {
	creds, err := g.store.Credentials(ctx)
	if err != nil {
		return err
	}

	var token string
	if creds != nil {
		g.logger.Debug(ctx, "replaying remembered credentials")
		res, err := g.Login(ctx, *creds)
		if err != nil {
			return err
		}
		token = res.Token
	} else {
		g.logger.Debug(ctx, "refreshing token")
		token, err = g.Refresh(ctx, staleToken)
		if err != nil {
			return err
		}
	}

	return g.store.SetToken(ctx, token)
}

func encodeBody(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return b, nil
}

func (g *Gateway) send(ctx context.Context, method, path, token string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(code int, raw []byte) error {
	var body struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch code {
	case http.StatusUnauthorized:
		return &APIError{StatusCode: code, Message: msg, Err: ErrUnauthorized}
	case http.StatusNotFound:
		return &APIError{StatusCode: code, Message: msg, Err: ErrNotFound}
	case http.StatusUnprocessableEntity:
		if len(body.Errors) > 0 {
			return &common.ValidationError{Fields: body.Errors}
		}
		return common.NewValidationError("request", msg)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return &APIError{StatusCode: code, Message: msg, Err: ErrUnavailable}
	default:
		return &APIError{StatusCode: code, Message: msg}
	}
}
