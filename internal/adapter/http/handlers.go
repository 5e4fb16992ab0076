package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loanserve-backend/internal/dispatch"
)

// Handler fronts the dispatcher: every route builds a request value and
// sends it; no usecase is referenced directly.
type Handler struct{ d *dispatch.Dispatcher }

func NewHandler(d *dispatch.Dispatcher) *Handler { return &Handler{d: d} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Register wires every route. idemp guards the mutating endpoints; pass nil
// to skip it (tests).
func (h *Handler) Register(e *echo.Echo, idemp echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	mutating := e.Group("")
	if idemp != nil {
		mutating.Use(idemp)
	}

	mutating.POST("/users", h.RegisterUser)
	mutating.PATCH("/users/:user_id", h.UpdateUser)
	mutating.DELETE("/users/:user_id", h.DeactivateUser)
	e.GET("/users/:user_id", h.GetUser)
	e.GET("/users/:user_id/report", h.UserReport)
	e.GET("/users/:user_id/notifications", h.ListNotifications)
	mutating.POST("/notifications/:notification_id/read", h.MarkNotificationRead)

	mutating.POST("/applications", h.Apply)
	mutating.POST("/applications/:application_id/approve", h.ApproveApplication)
	mutating.POST("/applications/:application_id/reject", h.RejectApplication)

	e.GET("/loans", h.ListLoans)
	e.GET("/loans/:loan_id", h.GetLoan)
	mutating.POST("/loans/:loan_id/disburse", h.DisburseLoan)
	mutating.POST("/loans/:loan_id/reject", h.RejectLoan)
	mutating.POST("/loans/:loan_id/close", h.CloseLoan)
	mutating.POST("/loans/:loan_id/payments", h.RecordPayment)

	e.GET("/reports/portfolio", h.PortfolioReport)
}
