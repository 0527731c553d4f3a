package handler

import (
	"context"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// SupportHandler bundles dependencies for support ticket endpoints.
type SupportHandler struct {
	Tickets *repository.SupportTicketRepo
}

func NewSupportHandler(t *repository.SupportTicketRepo) *SupportHandler {
	return &SupportHandler{Tickets: t}
}

type ticketReq struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

func (r ticketReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subject, validation.Required),
		validation.Field(&r.Description, validation.Required),
	)
}

// Create opens a support ticket for the current user.
func (h *SupportHandler) Create(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.SupportTicket{
		UserID:      uid,
		Subject:     req.Subject,
		Description: req.Description,
	}
	if err := h.Tickets.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"ticket": t})
}

// List returns the current user's tickets.
func (h *SupportHandler) List(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Tickets.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []model.SupportTicket{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
