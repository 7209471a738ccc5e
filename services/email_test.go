package services

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jara-travels/booking_api/model"
)

func newTestEmailService(t *testing.T) *EmailService {
	svc := &EmailService{
		fromName:  "JaraTravels",
		templates: make(map[string]*template.Template),
		paySvc: &PaymentService{
			bankIBAN:   "PT50000201231234567890154",
			bankHolder: "Jara Travels Lda",
			bankName:   "Banco Exemplo",
			mbwayPhone: "+351912000000",
			paypalLink: "https://paypal.me/jaratravels",
		},
	}
	require.NoError(t, svc.loadTemplates())
	return svc
}

func testBooking() *model.Booking {
	return &model.Booking{
		ID:              "b-1",
		Name:            "Ana Silva",
		Email:           "ana@example.com",
		Phone:           "912345678",
		ServiceName:     "Boatrip Seixal",
		ServicePrice:    "45€",
		ServiceDuration: "3h",
		BookingDate:     "2025-06-01",
		Participants:    2,
		PaymentMethod:   "bank-transfer",
		Status:          "pending",
	}
}

func TestBookingCustomerEmail_BankTransfer(t *testing.T) {
	svc := newTestEmailService(t)

	body, err := svc.renderTemplate("booking_customer", svc.bookingEmailData(testBooking()))
	require.NoError(t, err)

	assert.Contains(t, body, "Ana Silva")
	assert.Contains(t, body, "PT50000201231234567890154")
	assert.Contains(t, body, "Jara Travels Lda")
	assert.Contains(t, body, "Ana Silva - Boatrip Seixal")
	assert.Contains(t, body, "1 de junho de 2025")
	assert.Contains(t, body, "Transferência Bancária")
	assert.NotContains(t, body, "PayPal")
	assert.NotContains(t, body, "MBWay")
}

func TestBookingCustomerEmail_MBWay(t *testing.T) {
	svc := newTestEmailService(t)

	booking := testBooking()
	booking.PaymentMethod = "mbway"

	body, err := svc.renderTemplate("booking_customer", svc.bookingEmailData(booking))
	require.NoError(t, err)

	assert.Contains(t, body, "912345678")
	assert.Contains(t, body, "MBWay")
	assert.NotContains(t, body, "IBAN")
}

func TestBookingCustomerEmail_EscapesInput(t *testing.T) {
	svc := newTestEmailService(t)

	booking := testBooking()
	booking.Name = `<script>alert("x")</script>`

	body, err := svc.renderTemplate("booking_customer", svc.bookingEmailData(booking))
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestBookingOperatorEmail(t *testing.T) {
	svc := newTestEmailService(t)

	booking := testBooking()
	booking.Message = "Temos uma criança de 5 anos"

	body, err := svc.renderTemplate("booking_operator", svc.bookingEmailData(booking))
	require.NoError(t, err)

	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, "Temos uma criança de 5 anos")
	assert.Contains(t, body, "2 pessoa(s)")
}

func TestContactEmail(t *testing.T) {
	svc := newTestEmailService(t)

	body, err := svc.renderTemplate("contact", ContactEmailData{
		AppName: "JaraTravels",
		Name:    "Rui",
		Email:   "rui@example.com",
		Message: "Fazem passeios privados?",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Rui")
	assert.Contains(t, body, "Fazem passeios privados?")
	assert.NotContains(t, body, "Telefone")
}

func TestFormatDatePT(t *testing.T) {
	assert.Equal(t, "1 de junho de 2025", FormatDatePT("2025-06-01"))
	assert.Equal(t, "25 de dezembro de 2025", FormatDatePT("2025-12-25"))
	assert.Equal(t, "not-a-date", FormatDatePT("not-a-date"))
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "MBWay", PaymentMethodLabel("mbway"))
	assert.Equal(t, "Transferência Bancária", PaymentMethodLabel("bank-transfer"))
	assert.Equal(t, "PayPal", PaymentMethodLabel("paypal"))
	assert.Equal(t, "other", PaymentMethodLabel("other"))
}
