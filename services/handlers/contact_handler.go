package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/shared"
)

type ContactHandler struct {
	bookingSvc BookingServiceInterface
}

func NewContactHandler(bookingSvc BookingServiceInterface) *ContactHandler {
	return &ContactHandler{
		bookingSvc: bookingSvc,
	}
}

// @Summary Send contact message
// @Description Forward a contact-form message to the operator
// @Tags contact
// @Accept json
// @Produce json
// @Param contactRequest body dto.ContactRequest true "Contact message"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 429 {object} shared.ErrorResponse
// @Router /api/v1/contact [post]
func (h *ContactHandler) SendContactMessage(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := h.bookingSvc.SubmitContact(&req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, dto.ContactResponse{Success: true})
}
