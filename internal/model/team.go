package model

import "time"

// Team is a label workers can optionally belong to. Teams carry no capacity
// constraint and are ignored by the fair-distribution pass.
type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
