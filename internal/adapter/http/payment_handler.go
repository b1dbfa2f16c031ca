package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/usecase/fundops"
)

type PaymentHandler struct{ svc *fundops.Service }

func NewPaymentHandler(svc *fundops.Service) *PaymentHandler { return &PaymentHandler{svc: svc} }

type createPaymentReq struct {
	MemberID string  `json:"member_id" validate:"required,hex32"`
	LoanID   string  `json:"loan_id" validate:"omitempty,hex32"`
	Amount   float64 `json:"amount" validate:"required,gt=0,dec2"`
	PaidAt   string  `json:"paid_at"`
	Method   string  `json:"method"`
	Notes    string  `json:"notes"`
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	paidAt, err := parseWhen(req.PaidAt, nowUTC())
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "paid_at", Message: err.Error()}},
		})
	}

	dto, err := h.svc.CreatePayment(c.Request().Context(), fundops.CreatePaymentInput{
		MemberID: req.MemberID,
		LoanID:   req.LoanID,
		Amount:   decimal.NewFromFloat(req.Amount),
		PaidAt:   paidAt,
		Method:   req.Method,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusCreated, dto)
}

type editPaymentReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	PaidAt string  `json:"paid_at"`
	Method string  `json:"method"`
	Notes  string  `json:"notes"`
}

func (h *PaymentHandler) EditPayment(c echo.Context) error {
	var req editPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	// Zero time keeps the payment's recorded date.
	paidAt, err := parseWhen(req.PaidAt, time.Time{})
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "paid_at", Message: err.Error()}},
		})
	}

	dto, err := h.svc.EditPayment(c.Request().Context(), fundops.EditPaymentInput{
		PaymentID: c.Param("payment_id"),
		Amount:    decimal.NewFromFloat(req.Amount),
		PaidAt:    paidAt,
		Method:    req.Method,
		Notes:     req.Notes,
	})
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	if err := h.svc.DeletePayment(c.Request().Context(), c.Param("payment_id")); err != nil {
		return writeErr(c, err, nil)
	}
	return c.NoContent(http.StatusNoContent)
}
