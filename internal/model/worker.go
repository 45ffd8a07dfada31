package model

import "time"

// Worker status values
const (
	StatusActive = "active"
	StatusBreak  = "break"
)

// Worker represents a roster member. Workers are hard-deleted: removing one
// must also remove its Assignment row in the same transaction.
type Worker struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Radio     string    `json:"radio" gorm:"type:varchar(50)"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	TeamID    *uint     `json:"team_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is an accepted worker status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusBreak
}
