package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanserve-backend/internal/dispatch"
	userDomain "loanserve-backend/internal/domain/user"
	queryUC "loanserve-backend/internal/usecase/query"
	userUC "loanserve-backend/internal/usecase/user"
)

type registerUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (h *Handler) RegisterUser(c echo.Context) error {
	var req registerUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := dispatch.Send[*userUC.UserDTO](c.Request().Context(), h.d, userUC.RegisterInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Role: userDomain.Role(req.Role),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateUserReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := dispatch.Send[*userUC.UserDTO](c.Request().Context(), h.d, userUC.UpdateInput{
		UserID: c.Param("user_id"), Name: req.Name, Phone: req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) DeactivateUser(c echo.Context) error {
	dto, err := dispatch.Send[*userUC.UserDTO](c.Request().Context(), h.d, userUC.DeactivateInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) GetUser(c echo.Context) error {
	dto, err := dispatch.Send[*userUC.UserDTO](c.Request().Context(), h.d, userUC.GetInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) UserReport(c echo.Context) error {
	report, err := dispatch.Send[*queryUC.UserReport](c.Request().Context(), h.d, queryUC.UserReportInput{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
