package calc

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleRow is one period of an equal-principal repayment plan.
type ScheduleRow struct {
	Seq     int             `json:"seq"`
	DueDate time.Time       `json:"due_date"`
	Payment decimal.Decimal `json:"payment"`
	Balance decimal.Decimal `json:"balance"`
}

// LoanSchedule builds the equal-principal amortization plan:
// installment = round2(amount / months); each period pays
// min(installment, remaining) so the final row absorbs the rounding
// remainder and lands on a balance of exactly zero.
func LoanSchedule(amount decimal.Decimal, months int, start time.Time) []ScheduleRow {
	if months <= 0 || amount.Sign() <= 0 {
		return nil
	}
	installment := amount.DivRound(decimal.NewFromInt(int64(months)), 2)

	rows := make([]ScheduleRow, 0, months)
	remaining := amount
	for i := 1; i <= months; i++ {
		pay := installment
		if i == months || remaining.LessThan(installment) {
			pay = remaining
		}
		remaining = remaining.Sub(pay)
		rows = append(rows, ScheduleRow{
			Seq:     i,
			DueDate: start.AddDate(0, i, 0),
			Payment: pay,
			Balance: remaining,
		})
	}
	return rows
}
