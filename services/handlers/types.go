package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/shared"
)

type BookingServiceInterface interface {
	Submit(req *dto.CreateBookingRequest, clientIP string) (*dto.CreateBookingResponse, error)
	SubmitContact(req *dto.ContactRequest) error
	List(status string) (*dto.BookingListResponse, error)
	UpdateStatus(req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	Delete(id string) error
}

type PaymentServiceInterface interface {
	Details(method string) (map[string]string, error)
}

type CaptchaServiceInterface interface {
	SiteKey() string
}

// clientIP resolves the caller address behind the CDN: leftmost forwarded
// hop first, then Cloudflare's header, then the socket peer. A hop is only
// trusted when it parses as a real IP, so a junk X-Forwarded-For value never
// masks a valid CF-Connecting-IP.
func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		hop := strings.Split(fwd, ",")[0]
		if ip := shared.NormalizeIP(hop); ip != "" {
			return ip
		}
	}
	if ip := shared.NormalizeIP(c.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	return c.IP()
}
