package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	email string
	err   error
}

func (s *stubVerifier) ExtractTokenFromHeader(authHeader string) (string, error) {
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}
	return authHeader[7:], nil
}

func (s *stubVerifier) VerifyJWTToken(token string) (string, error) {
	return s.email, s.err
}

func newTestApp(verifier JWTVerifier, adminEmails string) *fiber.App {
	mw := &AuthMiddleware{
		Verifier:    verifier,
		adminEmails: ParseAdminEmails(adminEmails),
	}

	app := fiber.New()
	app.Get("/admin/bookings", mw.RequiredAuth(), mw.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequiredAuth_MissingToken(t *testing.T) {
	app := newTestApp(&stubVerifier{}, "admin@example.com")

	req := httptest.NewRequest("GET", "/admin/bookings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredAuth_InvalidToken(t *testing.T) {
	app := newTestApp(&stubVerifier{err: errors.New("token has expired")}, "admin@example.com")

	req := httptest.NewRequest("GET", "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer expired-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin_NotAllowListed(t *testing.T) {
	app := newTestApp(&stubVerifier{email: "user@example.com"}, "admin@example.com")

	req := httptest.NewRequest("GET", "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdmin_AllowListed(t *testing.T) {
	app := newTestApp(&stubVerifier{email: "Admin@Example.com"}, "admin@example.com")

	req := httptest.NewRequest("GET", "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestParseAdminEmails(t *testing.T) {
	emails := ParseAdminEmails(" Admin@Example.com , second@example.com ,, ")
	assert.True(t, emails["admin@example.com"])
	assert.True(t, emails["second@example.com"])
	assert.False(t, emails[""])
	assert.Len(t, emails, 2)
}
