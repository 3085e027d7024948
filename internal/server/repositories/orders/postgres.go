package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/dbx"
	"github.com/dmitrijs2005/edustream/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectOrder = `SELECT id, user_id, courses, status, amount, created_at, updated_at FROM orders`

// Create stores order in a single INSERT and fills in ID, timestamps and the
// amount as the column stored it.
func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	items, err := json.Marshal(order.Courses)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}

	query :=
		`INSERT INTO orders (user_id, courses, status, amount)
         VALUES ($1, $2::jsonb, $3, $4)
		 RETURNING id, amount, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		order.UserID, string(items), string(order.Status), order.Amount).
		Scan(&order.ID, &order.Amount, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrder+`
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// GetForUser returns common.ErrorNotFound both for a missing order and for
// an order owned by someone else.
func (r *PostgresRepository) GetForUser(ctx context.Context, userID, orderID string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, selectOrder+`
		 WHERE id = $1 AND user_id = $2`, orderID, userID)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return o, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	var (
		o      models.Order
		items  []byte
		status string
	)
	if err := s.Scan(&o.ID, &o.UserID, &items, &status, &o.Amount, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(items, &o.Courses); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}
	o.Status = models.OrderStatus(status)
	return &o, nil
}
