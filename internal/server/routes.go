package server

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/config"
	"marketplace/internal/handler"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Buyer     *handler.BuyerHandler
	Order     *handler.OrderHandler
	Voucher   *handler.VoucherHandler
	Rating    *handler.RatingHandler
	AdminUser *handler.AdminUserHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Buyer.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Voucher.RegisterRoutes(e, cfg)
	h.Rating.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
}
