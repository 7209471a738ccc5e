package dto

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jara-travels/booking_api/model"
	"github.com/jara-travels/booking_api/shared"
)

// emailRegex is deliberately permissive: local-part@domain with a dot in the
// domain, nothing more. Stricter shapes reject real addresses.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type CreateBookingRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ServiceName     string `json:"serviceName"`
	ServicePrice    string `json:"servicePrice"`
	ServiceDuration string `json:"serviceDuration"`
	Date            string `json:"date"`
	Participants    string `json:"participants"`
	PaymentMethod   string `json:"paymentMethod"`
	Message         string `json:"message"`
	CaptchaToken    string `json:"captchaToken"`
	HoneypotField   string `json:"honeypotField"`
}

// Validate runs the submission checks in order, short-circuiting on the first
// failure: presence, email shape, length ceilings, payment method enum.
func (r CreateBookingRequest) Validate() error {
	required := []string{r.Name, r.Email, r.Phone, r.ServiceName, r.Date, r.Participants, r.PaymentMethod}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return shared.NewBadRequestError(nil, "Missing required fields")
		}
	}

	if !emailRegex.MatchString(strings.TrimSpace(r.Email)) {
		return shared.NewBadRequestError(nil, "Invalid email format")
	}

	limits := []struct {
		value string
		max   int
	}{
		{r.Name, 100},
		{r.Email, 255},
		{r.Phone, 20},
		{r.ServiceName, 200},
		{r.ServicePrice, 50},
		{r.ServiceDuration, 50},
		{r.Date, 50},
		{r.Participants, 10},
		{r.PaymentMethod, 50},
		{r.Message, 1000},
	}
	for _, l := range limits {
		if len(l.value) > l.max {
			return shared.NewBadRequestError(nil, "Input too long")
		}
	}

	if len(strings.TrimSpace(r.Phone)) < 9 {
		return shared.NewBadRequestError(nil, "Invalid phone number")
	}

	if !shared.ValidPaymentMethod(strings.TrimSpace(r.PaymentMethod)) {
		return shared.NewBadRequestError(nil, "Invalid payment method")
	}

	return nil
}

// Normalize produces the canonical Booking stored and mailed downstream:
// every string trimmed, email lowercased, participants parsed.
func (r CreateBookingRequest) Normalize() (*model.Booking, error) {
	participants, err := strconv.Atoi(strings.TrimSpace(r.Participants))
	if err != nil || participants < 1 {
		return nil, shared.NewBadRequestError(err, "Invalid participant count")
	}

	return &model.Booking{
		Name:            strings.TrimSpace(r.Name),
		Email:           strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:           strings.TrimSpace(r.Phone),
		ServiceName:     strings.TrimSpace(r.ServiceName),
		ServicePrice:    strings.TrimSpace(r.ServicePrice),
		ServiceDuration: strings.TrimSpace(r.ServiceDuration),
		BookingDate:     strings.TrimSpace(r.Date),
		Participants:    participants,
		PaymentMethod:   strings.TrimSpace(r.PaymentMethod),
		Message:         strings.TrimSpace(r.Message),
		Status:          shared.StatusPending,
	}, nil
}

type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	Message   string `json:"message,omitempty"`
}

type BookingListResponse struct {
	Bookings []model.Booking `json:"bookings"`
}

type BookingResponse struct {
	Booking *model.Booking `json:"booking"`
}

type UpdateBookingStatusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,booking_status"`
}

func (r UpdateBookingStatusRequest) Validate() error {
	return GetValidator().Struct(r)
}

type DeleteBookingResponse struct {
	Success bool `json:"success"`
}
