package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// WishlistHandler bundles dependencies for wishlist endpoints.
type WishlistHandler struct {
	Wishlist     *repository.WishlistRepo
	Destinations *repository.DestinationRepo
}

func NewWishlistHandler(w *repository.WishlistRepo, d *repository.DestinationRepo) *WishlistHandler {
	return &WishlistHandler{Wishlist: w, Destinations: d}
}

type wishlistReq struct {
	DestinationID uint64 `json:"destination_id"`
}

// Add saves a destination to the current user's wishlist.
func (h *WishlistHandler) Add(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	var req wishlistReq
	if err := c.Bind(&req); err != nil || req.DestinationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Destinations.GetByID(ctx, req.DestinationID); err != nil {
		if errors.Is(err, repository.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	w := model.WishlistItem{UserID: uid, DestinationID: req.DestinationID}
	if err := h.Wishlist.Add(ctx, &w); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "already in wishlist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add to wishlist failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": w})
}

// List returns the current user's wishlist.
func (h *WishlistHandler) List(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Wishlist.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []model.WishlistItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Remove drops a destination from the current user's wishlist.
func (h *WishlistHandler) Remove(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	destID, err := strconv.ParseUint(c.Param("destination_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Wishlist.Remove(ctx, uid, destID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
