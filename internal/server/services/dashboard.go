package services

import (
	"context"

	"github.com/dmitrijs2005/edustream/internal/logging"
	"github.com/dmitrijs2005/edustream/internal/server/models"
)

// Dashboard is the per-user order summary.
type Dashboard struct {
	Orders           []*models.Order `json:"orders"`
	TotalSpent       float64         `json:"totalSpent"`
	CompletedCourses int             `json:"completedCourses"`
	PendingOrders    int             `json:"pendingOrders"`
	TotalOrders      int             `json:"totalOrders"`
}

type orderLister interface {
	ListOrdersForUser(ctx context.Context, userID string) ([]*models.Order, error)
}

type DashboardService struct {
	orders orderLister
	logger logging.Logger
}

func NewDashboardService(orders orderLister, l logging.Logger) *DashboardService {
	return &DashboardService{orders: orders, logger: l.With("module", "dashboard_service")}
}

// Summarize aggregates the user's orders. TotalSpent covers every order
// regardless of status.
func (s *DashboardService) Summarize(ctx context.Context, userID string) (*Dashboard, error) {
	orders, err := s.orders.ListOrdersForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Orders: orders, TotalOrders: len(orders)}
	var spent int64
	for _, o := range orders {
		spent += cents(o.Amount)
		switch o.Status {
		case models.OrderStatusCompleted:
			d.CompletedCourses++
		case models.OrderStatusPending:
			d.PendingOrders++
		}
	}
	d.TotalSpent = float64(spent) / 100

	s.logger.Info(ctx, "dashboard loaded", "user_id", userID, "order_count", d.TotalOrders, "total_spent", d.TotalSpent)
	return d, nil
}
