package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/jara-travels/booking_api/services/handlers"
	"github.com/jara-travels/booking_api/shared"
)

// adminGuard is the auth middleware contract, matched by assertion so the
// middleware package can depend on services without a cycle.
type adminGuard interface {
	RequiredAuth() fiber.Handler
	RequireAdmin() fiber.Handler
}

type HttpService struct {
	context.DefaultService

	bookingSvc    *BookingService
	paymentSvc    *PaymentService
	captchaSvc    *CaptchaService
	monitoringSvc *MonitoringService
	authSvc       adminGuard

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"
const authSvcId = "auth"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.bookingSvc = svc.Service(BOOKING_SVC).(*BookingService)
	svc.paymentSvc = svc.Service(PAYMENT_SVC).(*PaymentService)
	svc.captchaSvc = svc.Service(CAPTCHA_SVC).(*CaptchaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.authSvc = svc.Service(authSvcId).(adminGuard)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	bookingHandler := handlers.NewBookingHandler(svc.bookingSvc)
	paymentHandler := handlers.NewPaymentHandler(svc.paymentSvc)
	captchaHandler := handlers.NewCaptchaHandler(svc.captchaSvc)
	contactHandler := handlers.NewContactHandler(svc.bookingSvc)
	adminHandler := handlers.NewAdminHandler(svc.bookingSvc)

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)
	v1.Get("/captcha/config", captchaHandler.GetCaptchaConfig)
	v1.Post("/bookings", bookingHandler.CreateBooking)
	v1.Post("/payments/details", paymentHandler.GetPaymentDetails)
	v1.Post("/contact", contactHandler.SendContactMessage)

	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireAdmin())
	admin.Get("/bookings", adminHandler.ListBookings)
	admin.Patch("/bookings", adminHandler.UpdateBookingStatus)
	admin.Delete("/bookings", adminHandler.DeleteBooking)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseError(c, fiber.StatusNotFound, "Not Found")
	})

	svc.server = app

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {string} string "pong"
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return c.Status(fiber.StatusOK).SendString("pong")
}

// handleError maps pipeline errors onto the public envelope. Unknown errors
// never leak details to the caller.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.RetryAfter > 0 {
			c.Set("Retry-After", strconv.Itoa(appErr.RetryAfter))
			return shared.ResponseJSON(c, appErr.StatusCode, shared.ErrorResponse{
				Error:      appErr.Message,
				RetryAfter: appErr.RetryAfter,
			})
		}
		return shared.ResponseError(c, appErr.StatusCode, appErr.Message)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseError(c, fiberErr.Code, fiberErr.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	return shared.ResponseInternalError(c)
}
