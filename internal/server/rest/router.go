package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/edustream/internal/logging"
	"github.com/dmitrijs2005/edustream/internal/server/models"
	"github.com/dmitrijs2005/edustream/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type UserService interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error)
	Refresh(ctx context.Context, token string) (string, error)
	Authenticate(token string) (string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	Logout(ctx context.Context, userID string) error
}

type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	Create(ctx context.Context, req services.CreateCourseRequest) (*models.Course, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req services.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
}

type DashboardService interface {
	Summarize(ctx context.Context, userID string) (*services.Dashboard, error)
}

// Handler binds the HTTP routes to the application services.
type Handler struct {
	users     UserService
	courses   CourseService
	orders    OrderService
	dashboard DashboardService
	logger    logging.Logger
}

func NewHandler(l logging.Logger, us UserService, cs CourseService, ords OrderService, ds DashboardService) *Handler {
	return &Handler{
		users:     us,
		courses:   cs,
		orders:    ords,
		dashboard: ds,
		logger:    l.With("module", "http"),
	}
}

// NewRouter registers the routes and the middleware stack.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(h.loggingMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", h.ping)
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/courses", h.listCourses)

	// refresh validates the presented token itself so an expired token
	// inside the grace window is still accepted
	r.Post("/refresh", h.refresh)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
		r.Post("/courses", h.createCourse)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.showOrder)
		r.Get("/dashboard", h.showDashboard)
	})

	return r
}
