package member

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("member not found")
	ErrCashedOut = errors.New("member already cashed out")
)

type Role string

const (
	RoleDriver        Role = "driver"
	RoleAssistant     Role = "assistant"
	RoleHousekeeper   Role = "housekeeper"
	RoleGroundsKeeper Role = "groundskeeper"
	RoleSecurityGuard Role = "security_guard"
	RolePartTime      Role = "part_time"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDriver, RoleAssistant, RoleHousekeeper, RoleGroundsKeeper, RoleSecurityGuard, RolePartTime:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

type Member struct {
	ID       uint64    `gorm:"primaryKey;column:id" json:"-"`
	MemberID string    `gorm:"size:32;uniqueIndex:ux_members_member_id_active" json:"member_id"`
	Name     string    `gorm:"size:50" json:"name"`
	Role     Role      `gorm:"type:enum('driver','assistant','housekeeper','groundskeeper','security_guard','part_time')" json:"role"`
	Email    string    `gorm:"size:120" json:"email"`
	Phone    string    `gorm:"size:32" json:"phone"`
	JoinDate time.Time `gorm:"type:date" json:"join_date"`
	Status   Status    `gorm:"type:enum('active','suspended','inactive');default:'active'" json:"status"`

	// Derived cache: authoritative value is the sum of contribution portions
	// of this member's payments. Only the reconcile engine writes it.
	TotalContributions decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_contributions"`

	// Set exactly once, on exit. Non-nil means the member is terminal.
	CashOutAmount *decimal.Decimal `gorm:"type:decimal(18,2)" json:"cash_out_amount,omitempty"`

	// Per-member exceptions to the role-based loan limit / repayment terms.
	LimitOverride      *decimal.Decimal `gorm:"type:decimal(18,2)" json:"limit_override,omitempty"`
	TermOverrideMonths *int             `gorm:"column:term_override_months" json:"term_override_months,omitempty"`
	OverrideReason     string           `gorm:"type:text" json:"override_reason,omitempty"`
	OverrideApprovedAt *time.Time       `gorm:"type:date" json:"override_approved_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string { return "members" }

func (m *Member) CashedOut() bool { return m.CashOutAmount != nil }

// HasLimitOverride reports whether a recorded override replaces the standard
// role ceiling. An override without a reason and approval date does not count.
func (m *Member) HasLimitOverride() bool {
	return m.LimitOverride != nil && m.OverrideReason != "" && m.OverrideApprovedAt != nil
}
