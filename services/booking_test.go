package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/model"
	"github.com/jara-travels/booking_api/shared"
)

type stubStore struct {
	bookings  []*model.Booking
	createErr error
	updateErr error
	deleteErr error
}

func (s *stubStore) CreateBooking(booking *model.Booking) (*model.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	booking.ID = uuid.NewString()
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

func (s *stubStore) find(id string) (*model.Booking, error) {
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStore) ListBookings(status string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubStore) UpdateBookingStatus(id, status string) (*model.Booking, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	b, err := s.find(id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *stubStore) DeleteBooking(id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubLimiter struct {
	info     *dto.RateLimitInfo
	err      error
	lastKey  string
	lastAct  string
	numCalls int
}

func (s *stubLimiter) Check(identifier, action string) (*dto.RateLimitInfo, error) {
	s.numCalls++
	s.lastKey = identifier
	s.lastAct = action
	if s.err != nil {
		return nil, s.err
	}
	if s.info != nil {
		return s.info, nil
	}
	return &dto.RateLimitInfo{Allowed: true, Remaining: 4}, nil
}

type stubCaptcha struct {
	ok  bool
	err error
}

func (s *stubCaptcha) Verify(token, remoteIP string) (bool, error) {
	return s.ok, s.err
}

type stubMailer struct {
	confirmations int
	alerts        int
	contacts      int
	contactErr    error
	done          chan struct{}
}

func (s *stubMailer) SendBookingConfirmation(booking *model.Booking) error {
	s.confirmations++
	return nil
}

func (s *stubMailer) SendBookingAlert(booking *model.Booking) error {
	s.alerts++
	if s.done != nil {
		close(s.done)
	}
	return nil
}

func (s *stubMailer) SendContactMessage(name, email, phone, message string) error {
	s.contacts++
	return s.contactErr
}

func newTestBookingService() (*BookingService, *stubStore, *stubLimiter, *stubCaptcha, *stubMailer) {
	store := &stubStore{}
	limiter := &stubLimiter{}
	captcha := &stubCaptcha{ok: true}
	mailer := &stubMailer{}

	svc := &BookingService{
		store:   store,
		limiter: limiter,
		captcha: captcha,
		mailer:  mailer,
	}
	return svc, store, limiter, captcha, mailer
}

func validSubmitRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		Name:            "Ana Silva",
		Email:           "Ana@Example.com",
		Phone:           "912345678",
		ServiceName:     "Boatrip Seixal",
		ServicePrice:    "45€",
		ServiceDuration: "3h",
		Date:            "2025-06-01",
		Participants:    "2",
		PaymentMethod:   "mbway",
		CaptchaToken:    "token-123",
	}
}

func TestSubmit_Success(t *testing.T) {
	svc, store, limiter, _, mailer := newTestBookingService()
	mailer.done = make(chan struct{})

	resp, err := svc.Submit(validSubmitRequest(), "203.0.113.7")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.BookingID)

	require.Len(t, store.bookings, 1)
	booking := store.bookings[0]
	assert.Equal(t, "ana@example.com", booking.Email)
	assert.Equal(t, shared.StatusPending, booking.Status)
	assert.Equal(t, resp.BookingID, booking.ID)

	assert.Equal(t, "ana@example.com", limiter.lastKey)
	assert.Equal(t, shared.ActionBooking, limiter.lastAct)

	<-mailer.done
	assert.Equal(t, 1, mailer.confirmations)
	assert.Equal(t, 1, mailer.alerts)
}

func TestSubmit_Honeypot(t *testing.T) {
	svc, store, limiter, _, mailer := newTestBookingService()

	req := validSubmitRequest()
	req.HoneypotField = "http://spam.example"

	resp, err := svc.Submit(req, "")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.BookingID)

	assert.Empty(t, store.bookings)
	assert.Equal(t, 0, limiter.numCalls)
	assert.Equal(t, 0, mailer.confirmations)
}

func TestSubmit_MissingCaptchaToken(t *testing.T) {
	svc, store, _, _, _ := newTestBookingService()

	req := validSubmitRequest()
	req.CaptchaToken = ""

	_, err := svc.Submit(req, "")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "CAPTCHA token is required", appErr.Message)
	assert.Empty(t, store.bookings)
}

func TestSubmit_CaptchaFailed(t *testing.T) {
	svc, store, _, captcha, _ := newTestBookingService()
	captcha.ok = false

	_, err := svc.Submit(validSubmitRequest(), "")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)
	assert.Equal(t, "Security verification failed. Please try again.", appErr.Message)
	assert.Empty(t, store.bookings)
}

func TestSubmit_RateLimited(t *testing.T) {
	svc, store, limiter, _, _ := newTestBookingService()
	limiter.info = &dto.RateLimitInfo{Allowed: false, RetryAfter: 1800}

	_, err := svc.Submit(validSubmitRequest(), "")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 429, appErr.StatusCode)
	assert.Equal(t, 1800, appErr.RetryAfter)
	assert.Contains(t, appErr.Message, "30 minutes")
	assert.Empty(t, store.bookings)
}

func TestSubmit_LimiterErrorFailsOpen(t *testing.T) {
	svc, store, limiter, _, _ := newTestBookingService()
	limiter.err = errors.New("redis down")

	resp, err := svc.Submit(validSubmitRequest(), "")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Len(t, store.bookings, 1)
}

func TestSubmit_ValidationRunsBeforeCaptcha(t *testing.T) {
	svc, _, _, captcha, _ := newTestBookingService()
	captcha.ok = false

	req := validSubmitRequest()
	req.Email = "not-an-email"

	_, err := svc.Submit(req, "")
	require.Error(t, err)

	appErr, _ := shared.GetAppError(err)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Invalid email format", appErr.Message)
}

func TestSubmitContact_Success(t *testing.T) {
	svc, _, limiter, _, mailer := newTestBookingService()

	err := svc.SubmitContact(&dto.ContactRequest{
		Name:    "Rui",
		Email:   "Rui@Example.com",
		Message: "Fazem passeios privados?",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, mailer.contacts)
	assert.Equal(t, "rui@example.com", limiter.lastKey)
	assert.Equal(t, shared.ActionContact, limiter.lastAct)
}

func TestSubmitContact_RateLimited(t *testing.T) {
	svc, _, limiter, _, mailer := newTestBookingService()
	limiter.info = &dto.RateLimitInfo{Allowed: false, RetryAfter: 600}

	err := svc.SubmitContact(&dto.ContactRequest{
		Name:    "Rui",
		Email:   "rui@example.com",
		Message: "Olá",
	})
	require.Error(t, err)

	appErr, _ := shared.GetAppError(err)
	assert.Equal(t, 429, appErr.StatusCode)
	assert.Equal(t, 0, mailer.contacts)
}

func TestSubmitContact_Invalid(t *testing.T) {
	svc, _, _, _, mailer := newTestBookingService()

	err := svc.SubmitContact(&dto.ContactRequest{Name: "Rui", Email: "nope", Message: "Olá"})
	require.Error(t, err)

	appErr, _ := shared.GetAppError(err)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, 0, mailer.contacts)
}

func TestList_FiltersByStatus(t *testing.T) {
	svc, store, _, _, _ := newTestBookingService()
	store.bookings = []*model.Booking{
		{ID: "b-1", Status: shared.StatusPending},
		{ID: "b-2", Status: shared.StatusConfirmed},
	}

	resp, err := svc.List(shared.StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "b-2", resp.Bookings[0].ID)

	resp, err = svc.List("")
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestList_InvalidStatus(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	_, err := svc.List("archived")
	require.Error(t, err)

	appErr, _ := shared.GetAppError(err)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestUpdateStatus(t *testing.T) {
	svc, store, _, _, _ := newTestBookingService()
	store.bookings = []*model.Booking{{ID: "b-1", Status: shared.StatusPending}}

	resp, err := svc.UpdateStatus(&dto.UpdateBookingStatusRequest{ID: "b-1", Status: shared.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, shared.StatusConfirmed, resp.Booking.Status)

	// Idempotent: repeating the same transition succeeds.
	resp, err = svc.UpdateStatus(&dto.UpdateBookingStatusRequest{ID: "b-1", Status: shared.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, shared.StatusConfirmed, resp.Booking.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	_, err := svc.UpdateStatus(&dto.UpdateBookingStatusRequest{ID: "missing", Status: shared.StatusConfirmed})
	require.Error(t, err)

	appErr, _ := shared.GetAppError(err)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDelete(t *testing.T) {
	svc, store, _, _, _ := newTestBookingService()
	store.bookings = []*model.Booking{{ID: "b-1"}}

	require.NoError(t, svc.Delete("b-1"))
	assert.Empty(t, store.bookings)

	err := svc.Delete("b-1")
	require.Error(t, err)
	appErr, _ := shared.GetAppError(err)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDelete_MissingID(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	err := svc.Delete("  ")
	require.Error(t, err)

	appErr, _ := shared.GetAppError(err)
	assert.Equal(t, 400, appErr.StatusCode)
}
