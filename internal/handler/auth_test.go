package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	"github.com/iliyamo/travel-booking/internal/router"
	"github.com/iliyamo/travel-booking/internal/utils"
)

// ---- fakes ----

// fakeUsers is an in-memory handler.UserStore.
type fakeUsers struct {
	mu           sync.Mutex
	seq          uint64
	byEmail      map[string]*model.User
	saveTokenErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrEmailExists
	}
	f.seq++
	u.ID = f.seq
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return *u, nil
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return *u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) SaveSessionToken(_ context.Context, id uint64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveTokenErr != nil {
		return f.saveTokenErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			u.SessionToken = token
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUsers) ListAll(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) delete(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byEmail, email)
}

// fakeEvents records published events on buffered channels.
type fakeEvents struct {
	registered chan queue.UserRegisteredEvent
	booked     chan queue.BookingCreatedEvent
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{
		registered: make(chan queue.UserRegisteredEvent, 8),
		booked:     make(chan queue.BookingCreatedEvent, 8),
	}
}

func (f *fakeEvents) PublishUserRegistered(_ context.Context, ev queue.UserRegisteredEvent) error {
	f.registered <- ev
	return nil
}

func (f *fakeEvents) PublishBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	f.booked <- ev
	return nil
}

// ---- helpers ----

const testSecret = "test-secret"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:         "test",
		JWTSecret:   testSecret,
		TokenTTLMin: 60,
		BcryptCost:  4, // min cost keeps the suite fast
		UploadDir:   t.TempDir(),
	}
}

// newServer wires the real router against the fake store so requests take
// the same path they do in production, middleware included.
func newServer(t *testing.T) (*echo.Echo, *fakeUsers, *fakeEvents) {
	t.Helper()
	users := newFakeUsers()
	events := newFakeEvents()
	h := router.Handlers{
		Auth:         handler.NewAuthHandler(testConfig(t), users, events),
		Users:        handler.NewUserHandler(users),
		Destinations: &handler.DestinationHandler{},
		Bookings:     &handler.BookingHandler{},
		Payments:     &handler.PaymentHandler{},
		Reviews:      &handler.ReviewHandler{},
		Wishlist:     &handler.WishlistHandler{},
		Support:      &handler.SupportHandler{},
	}
	e := echo.New()
	router.RegisterRoutes(e, h, testSecret, nil)
	return e, users, events
}

func doJSON(e *echo.Echo, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerBody(name, email, password string) string {
	return fmt.Sprintf(`{"name":%q,"email":%q,"password":%q,"notification_methods":{"email":true,"sms":false}}`,
		name, email, password)
}

// ---- registration ----

func TestRegister_Success(t *testing.T) {
	e, users, events := newServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register", registerBody("Ana", "a@x.com", "secret1"), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The response must never carry the password in any form.
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")

	var resp struct {
		User struct {
			ID    uint64 `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.NotZero(t, resp.User.ID)

	// The stored hash verifies against the plaintext and never equals it.
	stored, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "secret1"))
	assert.True(t, stored.Preferences.NotificationMethods.Email)

	select {
	case ev := <-events.registered:
		assert.Equal(t, stored.ID, ev.UserID)
		assert.Equal(t, "a@x.com", ev.Email)
		assert.True(t, ev.NotifyEmail)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a user.registered event")
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	e, users, _ := newServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register", registerBody("Ana", "  ANA@X.COM ", "secret1"), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	_, err := users.GetByEmail(context.Background(), "ana@x.com")
	assert.NoError(t, err)
}

func TestRegister_ValidationErrors(t *testing.T) {
	e, _, _ := newServer(t)

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", registerBody("", "a@x.com", "secret1"), "name"},
		{"bad email", registerBody("Ana", "not-an-email", "secret1"), "email"},
		{"short password", registerBody("Ana", "a@x.com", "five5"), "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/v1/auth/register", tc.body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "validation failed", resp.Error)
			assert.Contains(t, resp.Fields, tc.field)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, _, _ := newServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register", registerBody("Ana", "a@x.com", "secret1"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/auth/register", registerBody("Other", "a@x.com", "secret2"), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestRegister_MultipartWithProfilePicture(t *testing.T) {
	e, users, _ := newServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Ana"))
	require.NoError(t, w.WriteField("email", "a@x.com"))
	require.NoError(t, w.WriteField("password", "secret1"))
	require.NoError(t, w.WriteField("notification_methods", `{"email":true,"sms":true}`))
	fw, err := w.CreateFormFile("profile_picture", "me.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	stored, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored.ProfilePicture, ".png"), stored.ProfilePicture)
	assert.True(t, stored.Preferences.NotificationMethods.SMS)
}

func TestRegister_MalformedNotificationMethods(t *testing.T) {
	e, _, _ := newServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Ana"))
	require.NoError(t, w.WriteField("email", "a@x.com"))
	require.NoError(t, w.WriteField("password", "secret1"))
	require.NoError(t, w.WriteField("notification_methods", "{email: yes}"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "notification_methods")
}

// ---- login ----

func seedUser(t *testing.T, users *fakeUsers, email, password string) model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	u := model.User{Name: "Ana", Email: email, PasswordHash: hash}
	require.NoError(t, users.Create(context.Background(), &u))
	return u
}

func TestLogin_Success(t *testing.T) {
	e, users, _ := newServer(t)
	seeded := seedUser(t, users, "a@x.com", "secret1")

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)

	// The issued token verifies and maps back to the right subject.
	uid, err := utils.ParseSessionToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, uid)

	// The vestigial session token column was overwritten.
	stored, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, resp.Token, stored.SessionToken)
}

func TestLogin_WrongPasswordAndUnknownEmail_SameShape(t *testing.T) {
	e, users, _ := newServer(t)
	seedUser(t, users, "a@x.com", "secret1")

	wrongPass := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"wrong1"}`, nil)
	unknown := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"b@x.com","password":"secret1"}`, nil)

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	// Identical bodies so account existence cannot be probed.
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestLogin_SaveTokenFailureStillSucceeds(t *testing.T) {
	e, users, _ := newServer(t)
	seedUser(t, users, "a@x.com", "secret1")
	users.saveTokenErr = errors.New("store down")

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "token")
}

// ---- profile ----

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestProfile_Success(t *testing.T) {
	e, users, _ := newServer(t)
	seeded := seedUser(t, users, "a@x.com", "secret1")

	tok, err := utils.NewSessionToken(testSecret, seeded.ID, 60)
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/v1/profile", "", bearer(tok.Token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")
}

func TestProfile_RejectsBadTokens(t *testing.T) {
	e, users, _ := newServer(t)
	seeded := seedUser(t, users, "a@x.com", "secret1")

	expired, err := utils.NewSessionToken(testSecret, seeded.ID, -1)
	require.NoError(t, err)
	forged, err := utils.NewSessionToken("other-secret", seeded.ID, 60)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header map[string]string
	}{
		{"missing header", nil},
		{"not bearer", map[string]string{"Authorization": "Basic abc"}},
		{"garbage token", bearer("garbage")},
		{"expired token", bearer(expired.Token)},
		{"wrong secret", bearer(forged.Token)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodGet, "/v1/profile", "", tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid token")
		})
	}
}

func TestProfile_DeletedUser(t *testing.T) {
	e, users, _ := newServer(t)
	seeded := seedUser(t, users, "a@x.com", "secret1")

	tok, err := utils.NewSessionToken(testSecret, seeded.ID, 60)
	require.NoError(t, err)

	// The record vanishes between token issuance and the read.
	users.delete("a@x.com")

	rec := doJSON(e, http.MethodGet, "/v1/profile", "", bearer(tok.Token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- end to end ----

// TestAuthScenario walks the full flow: register, login, read the profile
// with the issued token, fail a login with a wrong password, and collide
// on a duplicate registration.
func TestAuthScenario(t *testing.T) {
	e, _, _ := newServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register", registerBody("Ana", "a@x.com", "secret1"), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")

	rec = doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	rec = doJSON(e, http.MethodGet, "/v1/profile", "", bearer(login.Token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)

	rec = doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"wrong1"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")

	rec = doJSON(e, http.MethodPost, "/v1/auth/register", registerBody("Ana", "a@x.com", "secret1"), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")

	rec = doJSON(e, http.MethodPost, "/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
