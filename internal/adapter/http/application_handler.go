package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanserve-backend/internal/dispatch"
	appDomain "loanserve-backend/internal/domain/application"
	appUC "loanserve-backend/internal/usecase/application"
)

type applyReq struct {
	UserID        string  `json:"user_id" validate:"required,hex32"`
	Principal     float64 `json:"principal" validate:"required,gt=0,dec2"`
	Purpose       string  `json:"purpose"`
	TermMonths    int     `json:"term_months" validate:"required,termmonths"`
	MonthlyIncome float64 `json:"monthly_income" validate:"gte=0,dec2"`
	Employment    string  `json:"employment" validate:"required"`
}

func (h *Handler) Apply(c echo.Context) error {
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := dispatch.Send[*appUC.ApplicationDTO](c.Request().Context(), h.d, appUC.ApplyInput{
		UserID:        req.UserID,
		Principal:     req.Principal,
		Purpose:       req.Purpose,
		TermMonths:    req.TermMonths,
		MonthlyIncome: req.MonthlyIncome,
		Employment:    appDomain.EmploymentStatus(req.Employment),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type reviewReq struct {
	ReviewerID string `json:"reviewer_id" validate:"required,hex32"`
	Reason     string `json:"reason"`
}

func (h *Handler) ApproveApplication(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := dispatch.Send[*appUC.ApprovalDTO](c.Request().Context(), h.d, appUC.ApproveInput{
		ApplicationID: c.Param("application_id"),
		ReviewerID:    req.ReviewerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) RejectApplication(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := dispatch.Send[*appUC.ApplicationDTO](c.Request().Context(), h.d, appUC.RejectInput{
		ApplicationID: c.Param("application_id"),
		ReviewerID:    req.ReviewerID,
		Reason:        req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
