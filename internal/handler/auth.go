package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error comparison
	"log"      // best-effort failures are logged, never returned
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	validation "github.com/go-ozzo/ozzo-validation" // field-level request validation
	"github.com/go-ozzo/ozzo-validation/is"         // email format rule
	"github.com/labstack/echo/v4"                   // Echo framework for HTTP routing

	"github.com/iliyamo/travel-booking/internal/config" // app configuration
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	"github.com/iliyamo/travel-booking/internal/utils" // helper functions (hashing, token issuing)
)

// UserStore is the slice of the user repository the auth endpoints need.
// Declaring it here keeps the handlers testable against in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	SaveSessionToken(ctx context.Context, id uint64, token string) error
	ListAll(ctx context.Context) ([]model.User, error)
}

// EventPublisher emits domain events to the message broker. A nil
// publisher disables events without touching the request flow.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, ev queue.UserRegisteredEvent) error
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Events EventPublisher
}

func NewAuthHandler(cfg config.Config, users UserStore, events EventPublisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Events: events}
}

// ----- DTOs -----

type registerReq struct {
	Name                string                    `json:"name" form:"name"`
	Email               string                    `json:"email" form:"email"`
	Password            string                    `json:"password" form:"password"`
	Phone               string                    `json:"phone" form:"phone"`
	VacationType        string                    `json:"vacation_type" form:"vacation_type"`
	NotificationMethods model.NotificationMethods `json:"notification_methods"`
}

func (r registerReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// userView is the public view of a user record: every stored field except
// the password hash and the vestigial session token.
type userView struct {
	ID             uint64            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone,omitempty"`
	ProfilePicture string            `json:"profile_picture,omitempty"`
	Preferences    model.Preferences `json:"preferences"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func newUserView(u model.User) userView {
	return userView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		Preferences:    u.Preferences,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// validationFailed renders a 400 with per-field detail when the error is a
// validation.Errors map, or a bare message otherwise.
func validationFailed(c echo.Context, err error) error {
	if fields, ok := err.(validation.Errors); ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

// Register: validate, check uniqueness, hash, persist, respond with the
// created user's public view. Accepts either a JSON body or a multipart
// form with an optional profile_picture file part.
func (h *AuthHandler) Register(c echo.Context) error {
	req, fileRef, err := h.bindRegister(c)
	if err != nil {
		return validationFailed(c, err)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Check-then-insert; the unique index on users.email settles the race
	// between concurrent registrations with the same address.
	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	u := model.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Phone:          req.Phone,
		ProfilePicture: fileRef,
		Preferences: model.Preferences{
			VacationType:        req.VacationType,
			NotificationMethods: req.NotificationMethods,
		},
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	log.Printf("user registered: %s (id=%d)", u.Email, u.ID)

	if h.Events != nil {
		ev := queue.UserRegisteredEvent{
			UserID:       u.ID,
			Name:         u.Name,
			Email:        u.Email,
			NotifyEmail:  u.Preferences.NotificationMethods.Email,
			NotifySMS:    u.Preferences.NotificationMethods.SMS,
			RegisteredAt: u.CreatedAt.UTC().Format(time.RFC3339),
		}
		// Fire and forget; a broker outage must not fail the registration.
		go func() {
			if err := h.Events.PublishUserRegistered(context.Background(), ev); err != nil {
				log.Printf("publish user.registered failed: %v", err)
			}
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": newUserView(u)})
}

// bindRegister decodes the registration request from either a multipart
// form (optional profile picture part, notification methods as an encoded
// string) or a plain JSON body. It returns the stored picture reference
// when an upload was supplied.
func (h *AuthHandler) bindRegister(c echo.Context) (registerReq, string, error) {
	var req registerReq
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		if err := c.Bind(&req); err != nil {
			return req, "", errors.New("invalid body")
		}
		return req, "", nil
	}

	req.Name = c.FormValue("name")
	req.Email = c.FormValue("email")
	req.Password = c.FormValue("password")
	req.Phone = c.FormValue("phone")
	req.VacationType = c.FormValue("vacation_type")
	if raw := c.FormValue("notification_methods"); raw != "" {
		if err := req.NotificationMethods.Decode(raw); err != nil {
			return req, "", validation.Errors{"notification_methods": errors.New("invalid format")}
		}
	}

	fh, err := c.FormFile("profile_picture")
	if err != nil {
		return req, "", nil // no file part; the picture is optional
	}
	ref, err := utils.SaveProfilePicture(h.Cfg.UploadDir, fh)
	if err != nil {
		log.Printf("save profile picture failed: %v", err)
		return req, "", nil
	}
	return req, ref, nil
}

// Login: verify credentials and return a session token with the user's
// public view. Unknown email and wrong password produce the identical
// response so account existence is not revealed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	// Best effort: the token is already valid and returned to the client,
	// so a failed write of the vestigial column must not fail the login.
	if err := h.Users.SaveSessionToken(ctx, u.ID, tok.Token); err != nil {
		log.Printf("save session token failed for user %d: %v", u.ID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":   tok.Token,
		"expires": tok.Exp,
		"user":    newUserView(u),
	})
}

// Logout: stateless acknowledgement. No token blacklist is maintained;
// clients discard the token themselves.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Profile returns the authenticated user's public view. The JWT
// middleware has already verified the token and stored the subject id.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The record can vanish between token issuance and this read.
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": newUserView(u)})
}
