package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"staff-welfare-fund/internal/domain/fund"
	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/payment"
	"staff-welfare-fund/internal/usecase/fundops"
	"staff-welfare-fund/internal/usecase/rules"
)

// writeErr maps usecase and domain errors onto HTTP codes. Warning lists ride
// alongside fundops.ErrWarningsPending so the caller can confirm and resubmit.
func writeErr(c echo.Context, err error, warns []rules.Warning) error {
	if errors.Is(err, fundops.ErrWarningsPending) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:    "warnings pending; resubmit with accept_warnings=true",
			Warnings: warns,
		})
	}
	var verr *rules.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: verr.Field, Message: verr.Message}},
		})
	}
	switch {
	case errors.Is(err, member.ErrNotFound),
		errors.Is(err, loanacct.ErrNotFound),
		errors.Is(err, payment.ErrNotFound),
		errors.Is(err, ledger.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, member.ErrCashedOut),
		errors.Is(err, loanacct.ErrNotActive),
		errors.Is(err, loanacct.ErrOutstandingDebt),
		errors.Is(err, loanacct.ErrAlreadyCompleted):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, fund.ErrSponsorInsufficient):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func nowUTC() time.Time { return time.Now().UTC() }

// parseWhen accepts RFC3339 or a bare date; empty falls back to def.
func parseWhen(raw string, def time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("must be RFC3339 or YYYY-MM-DD")
}
