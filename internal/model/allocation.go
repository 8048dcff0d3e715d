package model

import "time"

// AllocationStatus is the lifecycle state of an allocation.
type AllocationStatus string

const (
	AllocationActive AllocationStatus = "active"
	AllocationEnded  AllocationStatus = "ended"
)

// Allocation binds one student to one room with a rent snapshot taken at
// creation time.
type Allocation struct {
	ID            int64            `gorm:"primaryKey" json:"id"`
	StudentID     int64            `gorm:"index;not null" json:"studentId"`
	RoomID        int64            `gorm:"index;not null" json:"roomId"`
	AllocatedByID int64            `gorm:"not null" json:"allocatedById"`
	Status        AllocationStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	StartDate     time.Time        `gorm:"not null" json:"startDate"`
	MonthlyRent   float64          `gorm:"not null" json:"monthlyRent"`
	Notes         string           `gorm:"size:512" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Student     User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Room        Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	AllocatedBy User `gorm:"foreignKey:AllocatedByID" json:"allocatedBy,omitempty"`
}
