package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"
)

type RatingHandler struct {
	uc *usecase.RatingUsecase
}

func NewRatingHandler(uc *usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

func (h *RatingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/ratings")
	g.Use(middleware.AuthJWT(cfg))

	//POST/PUT/PATCHどれでもupsert
	g.POST("/:productId", h.upsert)
	g.PUT("/:productId", h.upsert)
	g.PATCH("/:productId", h.upsert)

	g.GET("/product/:productId", h.listByProduct)
	g.GET("/me/:productId", h.mine)
}

type ratingUpsertRequest struct {
	Value   int     `json:"value"`
	Comment *string `json:"comment"`
}

func (h *RatingHandler) upsert(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := paramID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	var req ratingUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Upsert(c.Request().Context(), userID, productID, usecase.UpsertRatingInput{
		Value:   req.Value,
		Comment: req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatingHandler) listByProduct(c echo.Context) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	out, err := h.uc.ListByProduct(c.Request().Context(), productID,
		queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatingHandler) mine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := paramID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	out, err := h.uc.GetMine(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
