package services

import (
	"errors"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/model"
	"github.com/jara-travels/booking_api/shared"
)

// Collaborators the booking pipeline needs, narrowed so tests can stub them.
type bookingStore interface {
	CreateBooking(booking *model.Booking) (*model.Booking, error)
	ListBookings(status string) ([]model.Booking, error)
	UpdateBookingStatus(id, status string) (*model.Booking, error)
	DeleteBooking(id string) error
}

type rateLimiter interface {
	Check(identifier, action string) (*dto.RateLimitInfo, error)
}

type captchaVerifier interface {
	Verify(token, remoteIP string) (bool, error)
}

type bookingMailer interface {
	SendBookingConfirmation(booking *model.Booking) error
	SendBookingAlert(booking *model.Booking) error
	SendContactMessage(name, email, phone, message string) error
}

// BookingService runs the submission pipeline: honeypot, validation, CAPTCHA,
// rate limit, persist, then fire-and-forget notifications. Order matters: the
// cheapest checks run first and nothing is persisted before every gate passes.
type BookingService struct {
	appContext.DefaultService

	store   bookingStore
	limiter rateLimiter
	captcha captchaVerifier
	mailer  bookingMailer
}

const BOOKING_SVC = "booking_svc"

func (svc BookingService) Id() string {
	return BOOKING_SVC
}

func (svc *BookingService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *BookingService) Start() error {
	svc.store = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.limiter = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.captcha = svc.Service(CAPTCHA_SVC).(*CaptchaService)
	svc.mailer = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

// Submit runs a public booking request through the full pipeline.
func (svc *BookingService) Submit(req *dto.CreateBookingRequest, clientIP string) (*dto.CreateBookingResponse, error) {
	if strings.TrimSpace(req.HoneypotField) != "" {
		honeypotCatchesTotal.Inc()
		log.WithField("email", req.Email).Warn("Honeypot field filled, dropping submission")

		// Indistinguishable from a real success so bots get no signal.
		return &dto.CreateBookingResponse{
			Success:   true,
			BookingID: uuid.NewString(),
		}, nil
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.CaptchaToken) == "" {
		return nil, shared.NewBadRequestError(nil, "CAPTCHA token is required")
	}

	ok, err := svc.captcha.Verify(req.CaptchaToken, clientIP)
	if err != nil || !ok {
		captchaFailuresTotal.Inc()
		return nil, shared.NewForbiddenError("Security verification failed. Please try again.")
	}

	booking, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	info, err := svc.limiter.Check(booking.Email, shared.ActionBooking)
	if err != nil {
		// Fail open: an unavailable limiter should not block legitimate bookings.
		log.WithError(err).Error("Rate limit check failed, allowing request")
	} else if !info.Allowed {
		rateLimitRejectionsTotal.WithLabelValues(shared.ActionBooking).Inc()
		return nil, shared.NewTooManyRequestsError(RetryMessage(info.RetryAfter), info.RetryAfter)
	}

	booking, err = svc.store.CreateBooking(booking)
	if err != nil {
		log.WithError(err).Error("Failed to create booking")
		return nil, shared.NewInternalError(err, "Failed to create booking")
	}

	bookingsCreatedTotal.Inc()
	log.WithFields(log.Fields{
		"booking_id": booking.ID,
		"service":    booking.ServiceName,
		"date":       booking.BookingDate,
	}).Info("Booking created")

	go svc.notify(booking)

	return &dto.CreateBookingResponse{
		Success:   true,
		BookingID: booking.ID,
	}, nil
}

// notify sends both booking emails. Runs detached from the request, the
// booking is already committed and email failures are only logged.
func (svc *BookingService) notify(booking *model.Booking) {
	if err := svc.mailer.SendBookingConfirmation(booking); err != nil {
		log.WithError(err).WithField("booking_id", booking.ID).Error("Failed to send booking confirmation")
	}
	if err := svc.mailer.SendBookingAlert(booking); err != nil {
		log.WithError(err).WithField("booking_id", booking.ID).Error("Failed to send booking alert")
	}
}

// SubmitContact forwards a contact-form message, rate limited per sender email.
func (svc *BookingService) SubmitContact(req *dto.ContactRequest) error {
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, dto.FirstValidationMessage(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	info, err := svc.limiter.Check(email, shared.ActionContact)
	if err != nil {
		log.WithError(err).Error("Rate limit check failed, allowing request")
	} else if !info.Allowed {
		rateLimitRejectionsTotal.WithLabelValues(shared.ActionContact).Inc()
		return shared.NewTooManyRequestsError(RetryMessage(info.RetryAfter), info.RetryAfter)
	}

	err = svc.mailer.SendContactMessage(
		strings.TrimSpace(req.Name),
		email,
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Message),
	)
	if err != nil {
		log.WithError(err).Error("Failed to send contact message")
		return shared.NewInternalError(err, "Failed to send message")
	}

	return nil
}

// List returns bookings for the admin surface, optionally filtered by status.
func (svc *BookingService) List(status string) (*dto.BookingListResponse, error) {
	if status != "" && !shared.ValidStatus(status) {
		return nil, shared.NewBadRequestError(nil, "Invalid status filter")
	}

	bookings, err := svc.store.ListBookings(status)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list bookings")
	}

	return &dto.BookingListResponse{Bookings: bookings}, nil
}

// UpdateStatus transitions a booking to the requested status.
func (svc *BookingService) UpdateStatus(req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, dto.FirstValidationMessage(err))
	}

	booking, err := svc.store.UpdateBookingStatus(req.ID, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Booking not found")
		}
		return nil, shared.NewInternalError(err, "Failed to update booking")
	}

	log.WithFields(log.Fields{
		"booking_id": booking.ID,
		"status":     booking.Status,
	}).Info("Booking status updated")

	return &dto.BookingResponse{Booking: booking}, nil
}

// Delete removes a booking permanently.
func (svc *BookingService) Delete(id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.NewBadRequestError(nil, "Booking ID is required")
	}

	if err := svc.store.DeleteBooking(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError("Booking not found")
		}
		return shared.NewInternalError(err, "Failed to delete booking")
	}

	log.WithField("booking_id", id).Info("Booking deleted")
	return nil
}
