package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jara-travels/booking_api/middleware"
	"github.com/jara-travels/booking_api/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using environment")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},

		&services.JWTService{},
		&middleware.AuthMiddleware{},

		&services.CaptchaService{},
		&services.PaymentService{},
		&services.RateLimitService{},
		&services.EmailService{},
		&services.BookingService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
