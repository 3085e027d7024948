package orders

import (
	"context"

	"github.com/dmitrijs2005/edustream/internal/server/models"
)

// Repository is the order collection. Orders are append-only.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
	GetForUser(ctx context.Context, userID, orderID string) (*models.Order, error)
}
