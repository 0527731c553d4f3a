// Package handler exposes the HTTP handlers for both authenticated and
// public endpoints. Handlers bind and validate the request, call into the
// repositories with a bounded context, and map sentinel errors to the
// JSON error envelope.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// DestinationHandler aggregates the repositories needed for the catalogue.
type DestinationHandler struct {
	Destinations *repository.DestinationRepo
	Reviews      *repository.ReviewRepo
}

func NewDestinationHandler(d *repository.DestinationRepo, rv *repository.ReviewRepo) *DestinationHandler {
	return &DestinationHandler{Destinations: d, Reviews: rv}
}

type destinationReq struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	Images         []string   `json:"images"`
	PricePerNight  float64    `json:"price_per_night"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
	Features       []string   `json:"features"`
}

func (r destinationReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Location, validation.Required),
		validation.Field(&r.PricePerNight, validation.Required, validation.Min(0.0)),
	)
}

// Create adds a destination to the catalogue (authenticated).
func (h *DestinationHandler) Create(c echo.Context) error {
	var req destinationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d := model.Destination{
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		Images:         req.Images,
		PricePerNight:  req.PricePerNight,
		AvailableFrom:  req.AvailableFrom,
		AvailableUntil: req.AvailableUntil,
		Features:       req.Features,
	}
	if err := h.Destinations.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create destination failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"destination": d})
}

// List returns the whole catalogue (public, cached).
func (h *DestinationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Destinations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []model.Destination{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get returns one destination by id (public, cached).
func (h *DestinationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Destinations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"destination": d})
}

// ListReviews returns the reviews left on a destination (public).
func (h *DestinationHandler) ListReviews(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// ensure destination exists
	if _, err := h.Destinations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	reviews, err := h.Reviews.ListByDestination(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}
