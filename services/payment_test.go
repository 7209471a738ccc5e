package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jara-travels/booking_api/shared"
)

func newTestPaymentService() *PaymentService {
	return &PaymentService{
		bankIBAN:   "PT50000201231234567890154",
		bankHolder: "Jara Travels Lda",
		bankName:   "Banco Exemplo",
		mbwayPhone: "+351912000000",
		paypalLink: "https://paypal.me/jaratravels",
	}
}

func TestPaymentDetails_BankTransfer(t *testing.T) {
	svc := newTestPaymentService()

	info, err := svc.Details(shared.PaymentBankTransfer)
	require.NoError(t, err)

	assert.Equal(t, "PT50000201231234567890154", info["iban"])
	assert.Equal(t, "Jara Travels Lda", info["holder"])
	assert.Equal(t, "Banco Exemplo", info["bank"])
}

func TestPaymentDetails_PayPal(t *testing.T) {
	svc := newTestPaymentService()

	info, err := svc.Details(shared.PaymentPayPal)
	require.NoError(t, err)

	assert.Equal(t, "https://paypal.me/jaratravels", info["link"])
}

func TestPaymentDetails_MBWay(t *testing.T) {
	svc := newTestPaymentService()

	info, err := svc.Details(shared.PaymentMBWay)
	require.NoError(t, err)

	assert.Equal(t, "+351912000000", info["phone"])
}

func TestPaymentDetails_InvalidMethod(t *testing.T) {
	svc := newTestPaymentService()

	_, err := svc.Details("cash")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Invalid payment method", appErr.Message)
}
