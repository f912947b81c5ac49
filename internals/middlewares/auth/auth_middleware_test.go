package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	helper "africrea_backend/internals/helpers"
	"africrea_backend/internals/policy"
)

const testSecret = "test-secret"

type fakeSessions struct {
	blacklisted map[string]bool
	users       map[uuid.UUID]bool
	failLookup  bool
}

func (f *fakeSessions) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	return f.blacklisted[token], nil
}

func (f *fakeSessions) UserIsActive(_ context.Context, id uuid.UUID) (bool, error) {
	if f.failLookup {
		return false, errors.New("db down")
	}
	active, ok := f.users[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	return active, nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newApp(sessions SessionChecker, capability policy.Capability) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	app.Get("/guarded", Authenticate(testSecret, sessions), RequireCapability(capability), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals(helper.LocUserID),
			"role":    c.Locals(helper.LocUserRole),
		})
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthenticateAndCapability(t *testing.T) {
	student := uuid.New()
	trainer := uuid.New()
	inactive := uuid.New()
	sessions := &fakeSessions{
		blacklisted: map[string]bool{},
		users:       map[uuid.UUID]bool{student: true, trainer: true, inactive: false},
	}
	exp := time.Now().Add(time.Hour).Unix()

	studentTok := signToken(t, testSecret, jwt.MapClaims{"id": student.String(), "role": "STUDENT", "exp": exp})
	trainerTok := signToken(t, testSecret, jwt.MapClaims{"id": trainer.String(), "role": "trainer", "exp": exp})

	t.Run("no token", func(t *testing.T) {
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("student allowed self-service", func(t *testing.T) {
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), studentTok)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("student denied decide", func(t *testing.T) {
		resp := doGet(t, newApp(sessions, policy.ReservationDecide), studentTok)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("trainer role normalized and allowed", func(t *testing.T) {
		resp := doGet(t, newApp(sessions, policy.ReservationDecide), trainerTok)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		bad := signToken(t, "other", jwt.MapClaims{"id": student.String(), "role": "STUDENT", "exp": exp})
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), bad)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired beyond skew", func(t *testing.T) {
		old := signToken(t, testSecret, jwt.MapClaims{"id": student.String(), "role": "STUDENT", "exp": time.Now().Add(-time.Minute).Unix()})
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), old)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired within skew", func(t *testing.T) {
		recent := signToken(t, testSecret, jwt.MapClaims{"id": student.String(), "role": "STUDENT", "exp": time.Now().Add(-10 * time.Second).Unix()})
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), recent)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("blacklisted", func(t *testing.T) {
		sessions.blacklisted[studentTok] = true
		defer delete(sessions.blacklisted, studentTok)
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), studentTok)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("inactive user", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"id": inactive.String(), "role": "STUDENT", "exp": exp})
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), tok)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"id": uuid.NewString(), "role": "STUDENT", "exp": exp})
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), tok)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing role claim", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"id": student.String(), "exp": exp})
		resp := doGet(t, newApp(sessions, policy.ReservationRequest), tok)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := &fakeSessions{failLookup: true}
		resp := doGet(t, newApp(failing, policy.ReservationRequest), studentTok)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestCookieFallback(t *testing.T) {
	id := uuid.New()
	sessions := &fakeSessions{users: map[uuid.UUID]bool{id: true}}
	tok := signToken(t, testSecret, jwt.MapClaims{"id": id.String(), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	resp, err := newApp(sessions, policy.UserManage).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
