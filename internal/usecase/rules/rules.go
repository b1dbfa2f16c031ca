// Package rules holds the stateless business checks run before any mutation.
// Each check returns a hard ValidationError that blocks the operation, soft
// Warnings that need an explicit override, or neither.
package rules

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/member"
)

// ValidationError is a hard failure: surfaced verbatim, never retried.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Message }

func failf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Warning is a soft finding; the mutation proceeds only when re-submitted
// with the override flag, and an accepted override must not re-raise it.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	WarnUtilization = "utilization_threshold"
	WarnLowBalance  = "low_fund_balance"
	WarnEmailFormat = "email_format"
	WarnPhoneFormat = "phone_format"
)

var (
	minLoanRepayment = decimal.NewFromInt(2_000)

	limitDriverAssistant = decimal.NewFromInt(40_000)
	limitHousekeeping    = decimal.NewFromInt(19_000)
	limitGuardPartTime   = decimal.NewFromInt(12_000)
)

// securityGuardTenureMonths is the minimum membership before a security
// guard can borrow at all. Part-timers share the cap but not the floor.
const securityGuardTenureMonths = 3

var allowedTerms = map[int]bool{3: true, 4: true, 6: true}

// RoleLimit is the standard ceiling for a role. Security guards and
// part-timers are capped at the lesser of their contributions to date and
// the bracket maximum.
func RoleLimit(role member.Role, contributions decimal.Decimal) decimal.Decimal {
	switch role {
	case member.RoleDriver, member.RoleAssistant:
		return limitDriverAssistant
	case member.RoleHousekeeper, member.RoleGroundsKeeper:
		return limitHousekeeping
	case member.RoleSecurityGuard, member.RolePartTime:
		if contributions.LessThan(limitGuardPartTime) {
			return contributions
		}
		return limitGuardPartTime
	}
	return decimal.Zero
}

// LoanLimit applies a recorded per-member override over the standard ceiling.
func LoanLimit(m *member.Member) decimal.Decimal {
	if m.HasLimitOverride() {
		return *m.LimitOverride
	}
	return RoleLimit(m.Role, m.TotalContributions)
}

// ValidateLoanRequest runs the hard eligibility checks for a new loan.
func ValidateLoanRequest(m *member.Member, amount decimal.Decimal, months int, now time.Time) *ValidationError {
	if m.CashedOut() {
		return failf("member", "has cashed out and cannot borrow")
	}
	if m.Status != member.StatusActive {
		return failf("member", "must be active to request a loan")
	}
	if amount.Sign() <= 0 {
		return failf("amount", "must be greater than zero")
	}
	if months <= 0 {
		return failf("term_months", "must be greater than zero")
	}

	if m.Role == member.RoleSecurityGuard {
		if m.JoinDate.After(now.AddDate(0, -securityGuardTenureMonths, 0)) {
			return failf("member", "security guards need %d months of membership before borrowing", securityGuardTenureMonths)
		}
	}

	limit := LoanLimit(m)
	if amount.GreaterThan(limit) {
		return failf("amount", "exceeds the loan limit of %s", limit.StringFixed(2))
	}

	if !allowedTerms[months] {
		if m.TermOverrideMonths == nil || *m.TermOverrideMonths != months {
			return failf("term_months", "must be 3, 4 or 6 months")
		}
	}
	return nil
}

// LoanWarnings evaluates the post-loan soft thresholds: resulting utilization
// at or above the configured percentage, or resulting balance below the
// configured minimum.
func LoanWarnings(postUtilizationPct, warnPct, postBalance, minBalance decimal.Decimal) []Warning {
	var warns []Warning
	if postUtilizationPct.GreaterThanOrEqual(warnPct) {
		warns = append(warns, Warning{
			Code:    WarnUtilization,
			Message: fmt.Sprintf("fund utilization would reach %s%% (threshold %s%%)", postUtilizationPct, warnPct),
		})
	}
	if postBalance.LessThan(minBalance) {
		warns = append(warns, Warning{
			Code:    WarnLowBalance,
			Message: fmt.Sprintf("fund balance would drop to %s (minimum %s)", postBalance.StringFixed(2), minBalance.StringFixed(2)),
		})
	}
	return warns
}

// ValidateContribution checks a plain contribution payment.
func ValidateContribution(m *member.Member, amount decimal.Decimal) *ValidationError {
	if m.CashedOut() {
		return failf("member", "has cashed out and cannot contribute")
	}
	if m.Status != member.StatusActive {
		return failf("member", "must be active to contribute")
	}
	if amount.Sign() <= 0 {
		return failf("amount", "must be greater than zero")
	}
	return nil
}

// ValidateRepayment checks a loan repayment against the loan's outstanding
// balance. Overpayment is blocked outright, never silently capped.
func ValidateRepayment(amount, loanBalance decimal.Decimal) *ValidationError {
	if amount.Sign() <= 0 {
		return failf("amount", "must be greater than zero")
	}
	// An exact payoff may go under the minimum, otherwise a balance below
	// it could never be settled.
	if amount.LessThan(minLoanRepayment) && !amount.Equal(loanBalance) {
		return failf("amount", "loan repayments must be at least %s", minLoanRepayment.StringFixed(2))
	}
	if amount.GreaterThan(loanBalance) {
		return failf("amount", "exceeds the loan's outstanding balance of %s", loanBalance.StringFixed(2))
	}
	return nil
}

// ValidateMemberDeletion blocks deletion while any owned loan is active.
func ValidateMemberDeletion(activeLoans int) *ValidationError {
	if activeLoans > 0 {
		return failf("member", "cannot be deleted with %d active loan(s)", activeLoans)
	}
	return nil
}

// ValidateCashOut gates the terminal exit payout: only non-active members
// with no outstanding loans, once.
func ValidateCashOut(m *member.Member, activeLoans int) *ValidationError {
	if m.CashedOut() {
		return failf("member", "has already cashed out")
	}
	if m.Status == member.StatusActive {
		return failf("member", "must be suspended or inactive before cashing out")
	}
	if activeLoans > 0 {
		return failf("member", "cannot cash out with %d active loan(s)", activeLoans)
	}
	return nil
}

var (
	reName  = regexp.MustCompile(`^[A-Za-z][A-Za-z' -]{1,49}$`)
	reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	rePhone = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,19}$`)
)

// ValidateNewMember checks enrollment fields. The name is required and
// strictly shaped; malformed non-empty email/phone only warn.
func ValidateNewMember(name, email, phone string) (*ValidationError, []Warning) {
	if !reName.MatchString(name) {
		return failf("name", "must be 2-50 characters of letters, spaces, apostrophes or hyphens"), nil
	}
	var warns []Warning
	if email != "" && !reEmail.MatchString(email) {
		warns = append(warns, Warning{Code: WarnEmailFormat, Message: "email does not look valid"})
	}
	if phone != "" && !rePhone.MatchString(phone) {
		warns = append(warns, Warning{Code: WarnPhoneFormat, Message: "phone does not look valid"})
	}
	return nil, warns
}
