package model

import "time"

// DefaultAreaCapacity is used when an area is created without an explicit capacity.
const DefaultAreaCapacity = 10

// Area is a bounded-capacity destination workers can be assigned to.
// Areas with AutoAssignable=false are manually locked: the fair-distribution
// pass never places workers into them and never clears assignments out of them.
type Area struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(100);not null"`
	Capacity       int       `json:"capacity" gorm:"not null;default:10"`
	AutoAssignable bool      `json:"auto_assignable" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
