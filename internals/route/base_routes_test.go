package routes

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	orig := pinger
	t.Cleanup(func() { pinger = orig })
	startTime = time.Now().Add(-90 * time.Second)

	app := fiber.New()
	BaseRoutes(app)

	check := func(wantCode int, wantStatus string) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, wantCode, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, wantStatus, body["status"])
		assert.GreaterOrEqual(t, body["uptime_seconds"], float64(90))
	}

	pinger = func() error { return nil }
	check(fiber.StatusOK, "OK")

	pinger = func() error { return errors.New("connection refused") }
	check(fiber.StatusServiceUnavailable, "DOWN")
}
