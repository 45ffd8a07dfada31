package model

import "time"

// Assignment records the current area placement of one worker. Exactly one
// row exists per live worker; AreaID is nil while the worker is unassigned.
type Assignment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	WorkerID   uint      `json:"worker_id" gorm:"uniqueIndex;not null"`
	AreaID     *uint     `json:"area_id" gorm:"index"`
	AssignedAt time.Time `json:"assigned_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
