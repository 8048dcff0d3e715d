package model

import "time"

// RequestStatus is the decision state of a room request. A request leaves
// pending exactly once and never returns to it.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Terminal reports whether the status closes the request.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// RoomRequest records a student's intent to occupy a room, awaiting an
// administrative decision.
type RoomRequest struct {
	ID        int64         `gorm:"primaryKey" json:"id"`
	StudentID int64         `gorm:"index;not null" json:"studentId"`
	RoomID    int64         `gorm:"index;not null" json:"roomId"`
	Status    RequestStatus `gorm:"size:16;not null;default:pending;index" json:"status"`

	// DecisionByID and DecisionDate are set iff the request has left pending.
	DecisionByID *int64     `json:"decisionById,omitempty"`
	DecisionDate *time.Time `json:"decisionDate,omitempty"`
	Notes        string     `gorm:"size:512" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Student User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Room    Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
