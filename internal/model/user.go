package model

import "time"

// Role identifies the capability set of a user.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents a student or an administrator.
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:128;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	StudentID    string `gorm:"size:64" json:"studentId,omitempty"`
	Role         Role   `gorm:"size:16;not null;default:student" json:"role"`

	// RoomID is the room of the user's current active allocation, nil when
	// the student is unallocated.
	RoomID *int64 `gorm:"index" json:"roomId,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
