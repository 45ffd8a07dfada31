package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
	// RoleWorker is never stored; it only appears in self-service tokens.
	RoleWorker = "worker"
)

// User represents an operator account used to authenticate against the API.
// Only role=admin may perform mutating operations.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"type:varchar(255)"`
	Role         string         `json:"role" gorm:"type:varchar(20);not null;default:'viewer'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
