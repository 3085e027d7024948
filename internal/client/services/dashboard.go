package services

import (
	"context"

	"github.com/dmitrijs2005/edustream/internal/client/models"
)

type AccountAPI interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Order(ctx context.Context, id string) (*models.Order, error)
}

// DashboardService reads the user's order history.
type DashboardService struct {
	api AccountAPI
}

func NewDashboardService(api AccountAPI) *DashboardService {
	return &DashboardService{api: api}
}

func (s *DashboardService) Summary(ctx context.Context) (*models.Dashboard, error) {
	return s.api.Dashboard(ctx)
}

func (s *DashboardService) Order(ctx context.Context, id string) (*models.Order, error) {
	return s.api.Order(ctx, id)
}
