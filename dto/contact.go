package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (r ContactRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ContactResponse struct {
	Success bool `json:"success"`
}
