package model

import "time"

type RateLimit struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Identifier   string    `json:"identifier" gorm:"not null;uniqueIndex:idx_rate_limits_identity;size:255"`
	Action       string    `json:"action" gorm:"not null;uniqueIndex:idx_rate_limits_identity;size:50"`
	RequestCount int       `json:"request_count" gorm:"default:0;not null"`
	WindowStart  time.Time `json:"window_start" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}
