package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

func newGuardedApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()

	mw := NewMiddleware(tm)
	app := fiber.New()

	app.Get("/protected", mw.Require, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"uid": principal.UserID, "username": principal.Username})
	})

	app.Get("/open", mw.Optional, func(c *fiber.Ctx) error {
		if principal, ok := PrincipalFromContext(c); ok {
			return c.JSON(fiber.Map{"uid": principal.UserID})
		}
		return c.JSON(fiber.Map{"uid": nil})
	})

	return app
}

func TestRequireRejectsMissingHeader(t *testing.T) {
	app := newGuardedApp(t, NewTokenManager(testAuthConfig()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRejectsMalformedHeader(t *testing.T) {
	app := newGuardedApp(t, NewTokenManager(testAuthConfig()))

	for _, header := range []string{"Bearer", "Basic abc", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestRequireRejectsForeignToken(t *testing.T) {
	app := newGuardedApp(t, NewTokenManager(testAuthConfig()))

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "other-secret"
	token, _, err := NewTokenManager(otherCfg).GenerateToken(&domain.User{ID: 7, Username: "mallory"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAcceptsValidToken(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())
	app := newGuardedApp(t, tm)

	token, _, err := tm.GenerateToken(&domain.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalProceedsAnonymously(t *testing.T) {
	app := newGuardedApp(t, NewTokenManager(testAuthConfig()))

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalIgnoresInvalidToken(t *testing.T) {
	app := newGuardedApp(t, NewTokenManager(testAuthConfig()))

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
