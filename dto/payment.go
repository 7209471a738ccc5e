package dto

type PaymentDetailsRequest struct {
	BookingID     string `json:"bookingId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,payment_method"`
}

func (r PaymentDetailsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type PaymentDetailsResponse struct {
	PaymentInfo map[string]string `json:"paymentInfo"`
}

type CaptchaConfigResponse struct {
	SiteKey string `json:"siteKey"`
}
