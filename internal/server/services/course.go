package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/logging"
	"github.com/dmitrijs2005/edustream/internal/server/models"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/repomanager"
)

type CreateCourseRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description"`
	MediaURL    string   `json:"media_url" validate:"omitempty,url"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"max=255"`
}

// CourseService exposes the public catalog.
type CourseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCourseService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *CourseService {
	return &CourseService{db: db, repomanager: m, logger: l.With("module", "course_service")}
}

func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	list, err := s.repomanager.Courses(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "course list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	req.Title = strings.TrimSpace(req.Title)

	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	c, err := s.repomanager.Courses(s.db).Create(ctx, &models.Course{
		Title:       req.Title,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		Price:       *req.Price,
		Category:    req.Category,
	})
	if err != nil {
		s.logger.Error(ctx, "course create failed", "error", err)
		return nil, common.ErrorInternal
	}
	return c, nil
}
