package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// LineItem snapshots a course at purchase time.
type LineItem struct {
	CourseID string  `json:"course_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
}

// Order is one checkout. Line items travel under the "courses" key.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Courses   []LineItem  `json:"courses"`
	Status    OrderStatus `json:"status"`
	Amount    float64     `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
