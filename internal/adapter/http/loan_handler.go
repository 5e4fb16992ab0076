package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"loanserve-backend/internal/dispatch"
	paymentDomain "loanserve-backend/internal/domain/payment"
	loanUC "loanserve-backend/internal/usecase/loan"
	paymentUC "loanserve-backend/internal/usecase/payment"
	queryUC "loanserve-backend/internal/usecase/query"
)

type disburseReq struct {
	Method    string `json:"method" validate:"required"`
	Reference string `json:"reference"`
}

func (h *Handler) DisburseLoan(c echo.Context) error {
	var req disburseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	receipt, err := dispatch.Send[*loanUC.DisbursementReceipt](c.Request().Context(), h.d, loanUC.DisburseInput{
		LoanID:    c.Param("loan_id"),
		Method:    paymentDomain.Method(req.Method),
		Reference: req.Reference,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}

func (h *Handler) RejectLoan(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := dispatch.Send[*loanUC.LoanDTO](c.Request().Context(), h.d, loanUC.RejectInput{
		LoanID:     c.Param("loan_id"),
		ReviewerID: req.ReviewerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) CloseLoan(c echo.Context) error {
	dto, err := dispatch.Send[*loanUC.LoanDTO](c.Request().Context(), h.d, loanUC.CloseInput{
		LoanID: c.Param("loan_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type recordPaymentReq struct {
	PayerID   string  `json:"payer_id" validate:"required,hex32"`
	Amount    float64 `json:"amount" validate:"required,gt=0,dec2"`
	Method    string  `json:"method" validate:"required"`
	Reference string  `json:"reference"`
}

func (h *Handler) RecordPayment(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	receipt, err := dispatch.Send[*paymentUC.ReceiptDTO](c.Request().Context(), h.d, paymentUC.RecordInput{
		LoanID:    c.Param("loan_id"),
		PayerID:   req.PayerID,
		Amount:    req.Amount,
		Method:    paymentDomain.Method(req.Method),
		Reference: req.Reference,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) GetLoan(c echo.Context) error {
	dto, err := dispatch.Send[*loanUC.LoanDTO](c.Request().Context(), h.d, queryUC.GetLoanInput{
		LoanID: c.Param("loan_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ListLoans(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	overdue, _ := strconv.ParseBool(c.QueryParam("overdue"))

	pageOut, err := dispatch.Send[*queryUC.LoanPage](c.Request().Context(), h.d, queryUC.ListLoansInput{
		Status:  c.QueryParam("status"),
		UserID:  c.QueryParam("user_id"),
		Overdue: overdue,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageOut)
}

func (h *Handler) PortfolioReport(c echo.Context) error {
	report, err := dispatch.Send[*queryUC.PortfolioReport](c.Request().Context(), h.d, queryUC.PortfolioReportInput{})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
