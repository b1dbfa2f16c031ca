package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/usecase/fundops"
)

type FundHandler struct{ svc *fundops.Service }

func NewFundHandler(svc *fundops.Service) *FundHandler { return &FundHandler{svc: svc} }

func (h *FundHandler) ApplyInterest(c echo.Context) error {
	dto, err := h.svc.ApplyAnnualInterest(c.Request().Context())
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *FundHandler) GetSummary(c echo.Context) error {
	summary, err := h.svc.QuerySummary(c.Request().Context())
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, summary)
}

// Reconcile re-derives every stored balance, total and snapshot from the
// transaction log.
func (h *FundHandler) Reconcile(c echo.Context) error {
	if err := h.svc.ReconcileAll(c.Request().Context()); err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "reconciled"})
}

type sponsorReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *FundHandler) SponsorInvestment(c echo.Context) error {
	return h.sponsorEvent(c, h.svc.RecordSponsorInvestment)
}

func (h *FundHandler) SponsorWithdrawal(c echo.Context) error {
	return h.sponsorEvent(c, h.svc.RecordSponsorWithdrawal)
}

func (h *FundHandler) sponsorEvent(c echo.Context, record func(ctx context.Context, amount decimal.Decimal) (*fundops.SponsorDTO, error)) error {
	var req sponsorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := record(c.Request().Context(), decimal.NewFromFloat(req.Amount))
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusCreated, dto)
}
