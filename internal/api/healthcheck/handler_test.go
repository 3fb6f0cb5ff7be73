package healthcheck

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthChecks(t *testing.T) {
	var sawDeadline bool
	up := pingFunc(func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	})
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	app := fiber.New()
	RegisterRoutes(app, NewHandler(up))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/api", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/database", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, sawDeadline)

	broken := fiber.New()
	RegisterRoutes(broken, NewHandler(down))
	resp, err = broken.Test(httptest.NewRequest(http.MethodGet, "/health/database", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
