package model

import "time"

type AvailabilitySlot struct {
	ID            string    `json:"id"`
	StaffMemberID string    `json:"staffMemberId,omitempty"`
	Date          time.Time `json:"date"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

func (a *AvailabilitySlot) ItemID() string   { return a.ID }
func (a *AvailabilitySlot) Start() time.Time { return a.StartTime }
func (a *AvailabilitySlot) End() time.Time   { return a.EndTime }

// AvailabilityRequest is the payload submitted to create an availability
// slot. Times are local wall-clock strings without an offset.
type AvailabilityRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05"`
	EndTime   string `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05"`
}

// AvailabilityForm is what a user fills in: a day plus two HH:MM clock values.
type AvailabilityForm struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}

type StaffMember struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      StaffRole `json:"role"`
}

type StaffAvailability struct {
	StaffMember    *StaffMember        `json:"staffMember,omitempty"`
	AvailableSlots []*AvailabilitySlot `json:"availableSlots"`
}
