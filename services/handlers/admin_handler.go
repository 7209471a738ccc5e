package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/shared"
)

type AdminHandler struct {
	bookingSvc BookingServiceInterface
}

func NewAdminHandler(bookingSvc BookingServiceInterface) *AdminHandler {
	return &AdminHandler{
		bookingSvc: bookingSvc,
	}
}

// @Summary List bookings (Admin)
// @Description List all bookings, optionally filtered by status (admin only)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param status query string false "Status filter"
// @Success 200 {object} dto.BookingListResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Router /api/v1/admin/bookings [get]
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	status := c.Query("status")

	resp, err := h.bookingSvc.List(status)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, resp)
}

// @Summary Update booking status (Admin)
// @Description Transition a booking to a new status (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param updateRequest body dto.UpdateBookingStatusRequest true "Booking status update"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /api/v1/admin/bookings [patch]
func (h *AdminHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	var req dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	resp, err := h.bookingSvc.UpdateStatus(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, resp)
}

// @Summary Delete booking (Admin)
// @Description Permanently delete a booking (admin only)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param id query string true "Booking ID"
// @Success 200 {object} dto.DeleteBookingResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /api/v1/admin/bookings [delete]
func (h *AdminHandler) DeleteBooking(c *fiber.Ctx) error {
	id := c.Query("id")

	if err := h.bookingSvc.Delete(id); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, dto.DeleteBookingResponse{Success: true})
}
