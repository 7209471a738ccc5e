package model

import "time"

// Booking is the only customer-facing persisted entity. Service fields are a
// snapshot of the catalogue at booking time, so later catalogue edits never
// rewrite history.
type Booking struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Name            string    `json:"name" gorm:"not null;size:100"`
	Email           string    `json:"email" gorm:"not null;index;size:255"`
	Phone           string    `json:"phone" gorm:"not null;size:20"`
	ServiceName     string    `json:"service_name" gorm:"not null;size:200"`
	ServicePrice    string    `json:"service_price" gorm:"size:50"`
	ServiceDuration string    `json:"service_duration" gorm:"size:50"`
	BookingDate     string    `json:"booking_date" gorm:"not null;size:50"`
	Participants    int       `json:"participants" gorm:"not null"`
	PaymentMethod   string    `json:"payment_method" gorm:"not null;size:50"`
	Message         string    `json:"message,omitempty" gorm:"type:text"`
	Status          string    `json:"status" gorm:"not null;default:pending;size:20;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"not null;index"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"not null"`
}
