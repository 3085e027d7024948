package services

import (
	"context"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/models"
)

type CatalogAPI interface {
	Courses(ctx context.Context) ([]models.Course, error)
}

type CatalogService struct {
	api CatalogAPI
}

func NewCatalogService(api CatalogAPI) *CatalogService {
	return &CatalogService{api: api}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Course, error) {
	return s.api.Courses(ctx)
}

// Find returns the catalog course with id or client.ErrNotFound.
func (s *CatalogService) Find(ctx context.Context, id string) (*models.Course, error) {
	list, err := s.api.Courses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, client.ErrNotFound
}
