package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/usecase/fundops"
)

type LoanHandler struct{ svc *fundops.Service }

func NewLoanHandler(svc *fundops.Service) *LoanHandler { return &LoanHandler{svc: svc} }

type createLoanReq struct {
	MemberID       string  `json:"member_id" validate:"required,hex32"`
	Amount         float64 `json:"amount" validate:"required,gt=0,dec2"`
	TermMonths     int     `json:"term_months" validate:"required,gt=0"`
	IssueDate      string  `json:"issue_date"`
	AcceptWarnings bool    `json:"accept_warnings"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	issueDate, err := parseWhen(req.IssueDate, nowUTC())
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "issue_date", Message: err.Error()}},
		})
	}

	dto, warns, err := h.svc.CreateLoan(c.Request().Context(), fundops.CreateLoanInput{
		MemberID:       req.MemberID,
		Amount:         decimal.NewFromFloat(req.Amount),
		TermMonths:     req.TermMonths,
		IssueDate:      issueDate,
		AcceptWarnings: req.AcceptWarnings,
	})
	if err != nil {
		return writeErr(c, err, warns)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) CompleteLoan(c echo.Context) error {
	dto, err := h.svc.CompleteLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.svc.GetLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetSchedule previews an amortization table from query params without
// touching any stored loan.
func (h *LoanHandler) GetSchedule(c echo.Context) error {
	amount, err := decimal.NewFromString(c.QueryParam("amount"))
	if err != nil || !amount.IsPositive() {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount", Message: "must be a positive decimal"}},
		})
	}
	months, err := strconv.Atoi(c.QueryParam("months"))
	if err != nil || months <= 0 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "months", Message: "must be a positive integer"}},
		})
	}
	start, err := parseWhen(c.QueryParam("start"), nowUTC())
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "start", Message: err.Error()}},
		})
	}

	rows, err := h.svc.QueryLoanSchedule(amount, months, start)
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": rows})
}
