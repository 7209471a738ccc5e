package middleware

import (
	"os"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/jara-travels/booking_api/services"
	"github.com/jara-travels/booking_api/shared"
)

// JWTVerifier is what the middleware needs from the JWT service.
type JWTVerifier interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	VerifyJWTToken(token string) (string, error)
}

// AuthMiddleware authenticates admin requests: a valid bearer JWT carrying an
// email claim, then an ADMIN_EMAILS allow-list check. 401 means the caller is
// not authenticated, 403 means authenticated but not an admin.
type AuthMiddleware struct {
	appContext.DefaultService

	Verifier JWTVerifier

	adminEmails map[string]bool
}

const AUTH_MIDDLEWARE_SVC = "auth"

func (svc AuthMiddleware) Id() string {
	return AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Configure(ctx *appContext.Context) error {
	svc.adminEmails = ParseAdminEmails(os.Getenv("ADMIN_EMAILS"))
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthMiddleware) Start() error {
	if svc.Verifier == nil {
		svc.Verifier = svc.Service(services.JWT_SVC).(*services.JWTService)
	}
	return nil
}

// ParseAdminEmails normalizes a comma-separated allow-list to lowercase.
func ParseAdminEmails(raw string) map[string]bool {
	emails := make(map[string]bool)
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails[e] = true
		}
	}
	return emails
}

func (svc *AuthMiddleware) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.Verifier.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseUnauthorized(c, "Unauthorized")
		}

		email, err := svc.Verifier.VerifyJWTToken(token)
		if err != nil || email == "" {
			return shared.ResponseUnauthorized(c, "Unauthorized")
		}

		c.Locals(shared.UserEmail, strings.ToLower(email))
		return c.Next()
	}
}

func (svc *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals(shared.UserEmail).(string)
		if email == "" || !svc.adminEmails[email] {
			return shared.ResponseForbidden(c, "Admin access required")
		}
		return c.Next()
	}
}
