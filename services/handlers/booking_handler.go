package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/shared"
)

type BookingHandler struct {
	bookingSvc BookingServiceInterface
}

func NewBookingHandler(bookingSvc BookingServiceInterface) *BookingHandler {
	return &BookingHandler{
		bookingSvc: bookingSvc,
	}
}

// @Summary Create booking
// @Description Submit a public booking request
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingRequest body dto.CreateBookingRequest true "Booking data"
// @Success 200 {object} dto.CreateBookingResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Failure 429 {object} shared.ErrorResponse
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	resp, err := h.bookingSvc.Submit(&req, clientIP(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, resp)
}
