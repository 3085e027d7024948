package courses

import (
	"context"

	"github.com/dmitrijs2005/edustream/internal/server/models"
)

// Repository is the course catalog.
type Repository interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Course, error)
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
}
