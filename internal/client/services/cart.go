package services

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/models"
	"github.com/dmitrijs2005/edustream/internal/logging"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrEmptyCart     = errors.New("cart is empty")
)

type CartStore interface {
	Cart(ctx context.Context) ([]models.Course, error)
	SetCart(ctx context.Context, items []models.Course) error
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (*models.Order, error)
}

type authChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// CartService keeps the cart in the local store and turns it into an order.
type CartService struct {
	store   CartStore
	orders  OrderCreator
	session authChecker
	logger  logging.Logger

	mu sync.Mutex
}

func NewCartService(store CartStore, orders OrderCreator, session authChecker, l logging.Logger) *CartService {
	return &CartService{store: store, orders: orders, session: session, logger: l.With("module", "cart")}
}

// Add puts c in the cart. It reports false when a course with the same id
// is already there.
func (s *CartService) Add(ctx context.Context, c models.Course) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Cart(ctx)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ID == c.ID {
			return false, nil
		}
	}
	return true, s.store.SetCart(ctx, append(items, c))
}

// Remove drops the course with id. It reports whether anything was removed.
func (s *CartService) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Cart(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, s.store.SetCart(ctx, kept)
}

func (s *CartService) Items(ctx context.Context) ([]models.Course, error) {
	return s.store.Cart(ctx)
}

func (s *CartService) Total(ctx context.Context) (float64, error) {
	items, err := s.store.Cart(ctx)
	if err != nil {
		return 0, err
	}
	return total(items), nil
}

func total(items []models.Course) float64 {
	var cents int64
	for _, it := range items {
		cents += int64(math.Round(it.Price * 100))
	}
	return float64(cents) / 100
}

// Checkout places a pending order for the cart contents. The cart is
// emptied only when the order was accepted.
func (s *CartService) Checkout(ctx context.Context) (*models.Order, error) {
	if !s.session.IsAuthenticated(ctx) {
		return nil, ErrLoginRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Cart(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	req := client.CreateOrderRequest{
		Courses: make([]models.LineItem, len(items)),
		Amount:  total(items),
		Status:  models.OrderStatusPending,
	}
	for i, it := range items {
		req.Courses[i] = models.LineItem{CourseID: it.ID, Title: it.Title, Price: it.Price}
	}

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "checkout failed", "items", len(items), "error", err)
		return nil, err
	}

	if err := s.store.SetCart(ctx, nil); err != nil {
		s.logger.Warn(ctx, "clearing cart failed", "order_id", order.ID, "error", err)
	}
	s.logger.Info(ctx, "checkout completed", "order_id", order.ID, "amount", order.Amount)
	return order, nil
}
