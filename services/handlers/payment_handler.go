package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/shared"
)

type PaymentHandler struct {
	paymentSvc PaymentServiceInterface
}

func NewPaymentHandler(paymentSvc PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
	}
}

// @Summary Get payment details
// @Description Return payment instructions for a booking's chosen method
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentRequest body dto.PaymentDetailsRequest true "Payment details request"
// @Success 200 {object} dto.PaymentDetailsResponse
// @Failure 400 {object} shared.ErrorResponse
// @Router /api/v1/payments/details [post]
func (h *PaymentHandler) GetPaymentDetails(c *fiber.Ctx) error {
	var req dto.PaymentDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseBadRequest(c, dto.FirstValidationMessage(err))
	}

	info, err := h.paymentSvc.Details(req.PaymentMethod)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, dto.PaymentDetailsResponse{PaymentInfo: info})
}
