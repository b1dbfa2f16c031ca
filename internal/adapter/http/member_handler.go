package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/usecase/fundops"
)

type MemberHandler struct{ svc *fundops.Service }

func NewMemberHandler(svc *fundops.Service) *MemberHandler { return &MemberHandler{svc: svc} }

type createMemberReq struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	JoinDate string `json:"join_date"`

	LimitOverride      *float64 `json:"limit_override,omitempty" validate:"omitempty,gt=0,dec2"`
	TermOverrideMonths *int     `json:"term_override_months,omitempty" validate:"omitempty,gt=0"`
	OverrideReason     string   `json:"override_reason,omitempty"`

	AcceptWarnings bool `json:"accept_warnings"`
}

func (h *MemberHandler) CreateMember(c echo.Context) error {
	var req createMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	joinDate, err := parseWhen(req.JoinDate, nowUTC())
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "join_date", Message: err.Error()}},
		})
	}

	in := fundops.CreateMemberInput{
		Name:           req.Name,
		Role:           member.Role(req.Role),
		Email:          req.Email,
		Phone:          req.Phone,
		JoinDate:       joinDate,
		OverrideReason: req.OverrideReason,
		AcceptWarnings: req.AcceptWarnings,
	}
	if req.LimitOverride != nil {
		d := decimal.NewFromFloat(*req.LimitOverride)
		in.LimitOverride = &d
	}
	in.TermOverrideMonths = req.TermOverrideMonths

	dto, warns, err := h.svc.CreateMember(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, err, warns)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MemberHandler) DeleteMember(c echo.Context) error {
	if err := h.svc.DeleteMember(c.Request().Context(), c.Param("member_id")); err != nil {
		return writeErr(c, err, nil)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MemberHandler) SuspendMember(c echo.Context) error {
	dto, err := h.svc.SuspendMember(c.Request().Context(), c.Param("member_id"))
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) ReactivateMember(c echo.Context) error {
	dto, err := h.svc.ReactivateMember(c.Request().Context(), c.Param("member_id"))
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) CashOutMember(c echo.Context) error {
	dto, err := h.svc.CashOutMember(c.Request().Context(), c.Param("member_id"))
	if err != nil {
		return writeErr(c, err, nil)
	}
	return c.JSON(http.StatusOK, dto)
}
