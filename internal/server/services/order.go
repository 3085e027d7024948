package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/logging"
	"github.com/dmitrijs2005/edustream/internal/server/models"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type LineItemRequest struct {
	CourseID string   `json:"course_id" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
}

// CreateOrderRequest is the checkout payload. The owner is never taken from
// the body; it comes from the authenticated identity. Amount bounds follow
// the NUMERIC(10, 2) column.
type CreateOrderRequest struct {
	Courses []LineItemRequest `json:"courses" validate:"required,min=1,dive"`
	Amount  *float64          `json:"amount" validate:"required,gte=0,lte=99999999.99,cents"`
	Status  string            `json:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
}

// OrderService is the checkout engine.
type OrderService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	strictPricing bool
	logger        logging.Logger
}

// NewOrderService constructs an OrderService. With strictPricing, line items
// are repriced from the catalog and the declared amount must match their sum.
func NewOrderService(db *sql.DB, m repomanager.RepositoryManager, strictPricing bool, l logging.Logger) *OrderService {
	return &OrderService{
		db:            db,
		repomanager:   m,
		strictPricing: strictPricing,
		logger:        l.With("module", "order_service"),
	}
}

// CreateOrder validates req and persists one order for userID.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*models.Order, error) {
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	items := make([]models.LineItem, len(req.Courses))
	for i, c := range req.Courses {
		items[i] = models.LineItem{CourseID: c.CourseID, Title: c.Title, Price: *c.Price}
	}

	if s.strictPricing {
		if err := s.reprice(ctx, items, *req.Amount); err != nil {
			return nil, err
		}
	}

	status := models.OrderStatus(req.Status)
	if status == "" {
		status = models.OrderStatusPending
	}

	order, err := s.repomanager.Orders(s.db).Create(ctx, &models.Order{
		UserID:  userID,
		Courses: items,
		Status:  status,
		Amount:  *req.Amount,
	})
	if err != nil {
		s.logger.Error(ctx, "order creation failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "order created", "user_id", userID, "order_id", order.ID, "amount", order.Amount)
	return order, nil
}

// reprice replaces title and price of every item with catalog values and
// checks the declared amount against their sum.
func (s *OrderService) reprice(ctx context.Context, items []models.LineItem, amount float64) error {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.CourseID
	}

	catalog, err := s.repomanager.Courses(s.db).GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error(ctx, "catalog lookup failed", "error", err)
		return common.ErrorInternal
	}

	verr := &common.ValidationError{}
	var total int64
	for i := range items {
		c, ok := catalog[items[i].CourseID]
		if !ok {
			verr.Add(fmt.Sprintf("courses.%d.course_id", i), "The selected course does not exist.")
			continue
		}
		items[i].Title = c.Title
		items[i].Price = c.Price
		total += cents(c.Price)
	}
	if !verr.Empty() {
		return verr
	}
	if cents(amount) != total {
		return common.NewValidationError("amount", fmt.Sprintf("The amount must equal the sum of course prices (%.2f).", float64(total)/100))
	}
	return nil
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ListOrdersForUser returns the user's orders, newest first.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]*models.Order, error) {
	list, err := s.repomanager.Orders(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "order list failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

// GetOrder returns one order owned by userID. Orders of other users and
// ids that are not UUIDs are both reported as common.ErrorNotFound.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, common.ErrorNotFound
	}

	order, err := s.repomanager.Orders(s.db).GetForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "order lookup failed", "user_id", userID, "order_id", orderID, "error", err)
		return nil, common.ErrorInternal
	}
	return order, nil
}
