package shared

const (
	UserEmail = "user_email"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	PaymentMBWay        = "mbway"
	PaymentBankTransfer = "bank-transfer"
	PaymentPayPal       = "paypal"

	ActionBooking = "booking"
	ActionContact = "contact"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMBWay, PaymentBankTransfer, PaymentPayPal:
		return true
	}
	return false
}
