package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/shared"
)

type CaptchaHandler struct {
	captchaSvc CaptchaServiceInterface
}

func NewCaptchaHandler(captchaSvc CaptchaServiceInterface) *CaptchaHandler {
	return &CaptchaHandler{
		captchaSvc: captchaSvc,
	}
}

// @Summary Get CAPTCHA config
// @Description Return the public Turnstile site key for the booking widget
// @Tags captcha
// @Produce json
// @Success 200 {object} dto.CaptchaConfigResponse
// @Router /api/v1/captcha/config [get]
func (h *CaptchaHandler) GetCaptchaConfig(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, fiber.StatusOK, dto.CaptchaConfigResponse{
		SiteKey: h.captchaSvc.SiteKey(),
	})
}
