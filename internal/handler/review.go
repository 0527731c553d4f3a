package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// ReviewHandler bundles dependencies for review endpoints.
type ReviewHandler struct {
	Reviews      *repository.ReviewRepo
	Destinations *repository.DestinationRepo
}

func NewReviewHandler(rv *repository.ReviewRepo, d *repository.DestinationRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: rv, Destinations: d}
}

type reviewReq struct {
	DestinationID uint64 `json:"destination_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

func (r reviewReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DestinationID, validation.Required),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Comment, validation.Required),
	)
}

// Create adds a review by the current user on a destination.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Destinations.GetByID(ctx, req.DestinationID); err != nil {
		if errors.Is(err, repository.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rv := model.Review{
		UserID:        uid,
		DestinationID: req.DestinationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := h.Reviews.Create(ctx, &rv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"review": rv})
}
