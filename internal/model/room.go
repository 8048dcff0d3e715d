package model

import "time"

// Room represents a hostel room.
type Room struct {
	ID               int64   `gorm:"primaryKey" json:"id"`
	RoomNumber       string  `gorm:"uniqueIndex;size:32;not null" json:"roomNumber"`
	Floor            int     `json:"floor"`
	RoomType         string  `gorm:"size:32" json:"roomType"`
	Capacity         int     `gorm:"not null" json:"capacity"`
	CurrentOccupancy int     `gorm:"not null;default:0" json:"currentOccupancy"`
	MonthlyRent      float64 `gorm:"not null" json:"monthlyRent"`
	Amenities        string  `gorm:"size:512" json:"amenities,omitempty"`
	IsActive         bool    `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Residents []*User `gorm:"many2many:room_residents;" json:"residents,omitempty"`
}

// HasSpace reports whether the room can take one more resident.
func (r *Room) HasSpace() bool {
	return r.CurrentOccupancy < r.Capacity
}
