package services

import (
	"os"

	appContext "github.com/alphabatem/common/context"

	"github.com/jara-travels/booking_api/shared"
)

// PaymentService holds the operator's payment identifiers. These are
// configuration, never derived from user input, and only ever returned for a
// known payment method.
type PaymentService struct {
	appContext.DefaultService

	bankIBAN   string
	bankHolder string
	bankName   string
	mbwayPhone string
	paypalLink string
}

const PAYMENT_SVC = "payment_svc"

func (svc PaymentService) Id() string {
	return PAYMENT_SVC
}

func (svc *PaymentService) Configure(ctx *appContext.Context) error {
	svc.bankIBAN = os.Getenv("BANK_IBAN")
	svc.bankHolder = os.Getenv("BANK_HOLDER")
	svc.bankName = os.Getenv("BANK_NAME")
	svc.mbwayPhone = os.Getenv("MBWAY_PHONE")
	svc.paypalLink = os.Getenv("PAYPAL_LINK")
	return svc.DefaultService.Configure(ctx)
}

func (svc *PaymentService) Start() error {
	return nil
}

// Details returns the per-method payment instructions for the confirmation view.
func (svc *PaymentService) Details(method string) (map[string]string, error) {
	switch method {
	case shared.PaymentBankTransfer:
		return map[string]string{
			"iban":   svc.bankIBAN,
			"holder": svc.bankHolder,
			"bank":   svc.bankName,
		}, nil
	case shared.PaymentPayPal:
		return map[string]string{
			"link": svc.paypalLink,
		}, nil
	case shared.PaymentMBWay:
		return map[string]string{
			"phone": svc.mbwayPhone,
		}, nil
	}

	return nil, shared.NewBadRequestError(nil, "Invalid payment method")
}

func (svc *PaymentService) BankIBAN() string   { return svc.bankIBAN }
func (svc *PaymentService) BankHolder() string { return svc.bankHolder }
func (svc *PaymentService) BankName() string   { return svc.bankName }
func (svc *PaymentService) PayPalLink() string { return svc.paypalLink }
