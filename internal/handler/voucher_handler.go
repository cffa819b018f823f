package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"
)

type VoucherHandler struct {
	uc *usecase.VoucherUsecase
}

func NewVoucherHandler(uc *usecase.VoucherUsecase) *VoucherHandler {
	return &VoucherHandler{uc: uc}
}

// voucher管理は全部admin専用
func (h *VoucherHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/vouchers")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.GET("", h.list)
	g.PATCH("/:id/toggle", h.toggle)
}

type voucherCreateRequest struct {
	Code          string           `json:"code"`
	DiscountType  string           `json:"discount_type"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	MinOrderValue *decimal.Decimal `json:"min_order_value"`
	Active        *bool            `json:"active"`
	StartAt       *time.Time       `json:"start_at"`
	EndAt         *time.Time       `json:"end_at"`
	UsageLimit    *int64           `json:"usage_limit"`
}

func (h *VoucherHandler) create(c echo.Context) error {
	var req voucherCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateVoucherInput{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		Active:        req.Active,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		UsageLimit:    req.UsageLimit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *VoucherHandler) list(c echo.Context) error {
	var active *bool
	if v := c.QueryParam("active"); v != "" {
		b := v == "true"
		active = &b
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListVouchersInput{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Q:      c.QueryParam("q"),
		Active: active,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VoucherHandler) toggle(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Toggle(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
