package courses

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/edustream/internal/dbx"
	"github.com/dmitrijs2005/edustream/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectCourse = `SELECT id, title, description, media_url, price, category, created_at FROM courses`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Course, error) {
	return r.query(ctx, selectCourse+` ORDER BY created_at, title`)
}

// GetByIDs returns the courses found among ids keyed by id. Unknown ids are
// simply absent from the result.
func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Course, error) {
	result := make(map[string]*models.Course, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	list, err := r.query(ctx, selectCourse+` WHERE id::text IN (`+strings.Join(placeholders, ", ")+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		result[c.ID] = c
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	query :=
		`INSERT INTO courses (title, description, media_url, price, category)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		course.Title, course.Description, course.MediaURL, course.Price, course.Category).
		Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return course, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Course, 0)
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.MediaURL, &c.Price, &c.Category, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}
