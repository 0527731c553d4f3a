package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// BookingHandler bundles dependencies for booking endpoints. All of them
// require an authenticated user.
type BookingHandler struct {
	Bookings     *repository.BookingRepo
	Destinations *repository.DestinationRepo
	Events       EventPublisher
}

func NewBookingHandler(b *repository.BookingRepo, d *repository.DestinationRepo, events EventPublisher) *BookingHandler {
	return &BookingHandler{Bookings: b, Destinations: d, Events: events}
}

type bookingReq struct {
	DestinationID  uint64    `json:"destination_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	NumberOfPeople int       `json:"number_of_people"`
	TotalCost      float64   `json:"total_cost"`
}

func (r bookingReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DestinationID, validation.Required),
		validation.Field(&r.StartDate, validation.Required),
		validation.Field(&r.EndDate, validation.Required),
		validation.Field(&r.NumberOfPeople, validation.Required, validation.Min(1)),
		validation.Field(&r.TotalCost, validation.Required, validation.Min(0.0)),
	)
}

// Create books a destination for the current user.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}
	if !req.EndDate.After(req.StartDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be after start_date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dest, err := h.Destinations.GetByID(ctx, req.DestinationID)
	if err != nil {
		if errors.Is(err, repository.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	b := model.Booking{
		UserID:         uid,
		DestinationID:  req.DestinationID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		NumberOfPeople: req.NumberOfPeople,
		TotalCost:      req.TotalCost,
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	if h.Events != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:       b.ID,
			UserID:          uid,
			DestinationID:   dest.ID,
			DestinationName: dest.Name,
			StartDate:       b.StartDate.UTC().Format(time.RFC3339),
			EndDate:         b.EndDate.UTC().Format(time.RFC3339),
			NumberOfPeople:  b.NumberOfPeople,
			TotalCost:       b.TotalCost,
			CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			if err := h.Events.PublishBookingCreated(context.Background(), ev); err != nil {
				log.Printf("publish booking.created failed: %v", err)
			}
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// List returns the current user's bookings.
func (h *BookingHandler) List(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []model.Booking{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get returns one of the current user's bookings.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if b.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// Cancel marks one of the current user's bookings as cancelled.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Cancel(ctx, id, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
