package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type LineItem struct {
	CourseID string  `json:"course_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Courses   []LineItem `json:"courses"`
	Status    string     `json:"status"`
	Amount    float64    `json:"amount"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Dashboard mirrors the server summary returned by GET /dashboard.
type Dashboard struct {
	Orders           []Order `json:"orders"`
	TotalSpent       float64 `json:"totalSpent"`
	CompletedCourses int     `json:"completedCourses"`
	PendingOrders    int     `json:"pendingOrders"`
	TotalOrders      int     `json:"totalOrders"`
}
