package model

import "time"

type Participant struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	GdprConsent bool   `json:"gdprConsent"`
}

type Reservation struct {
	ID              string         `json:"id"`
	EventScheduleID string         `json:"eventScheduleId"`
	EventSchedule   *EventSchedule `json:"eventSchedule,omitempty"`
	ParticipantsIDs []string       `json:"participantsIds,omitempty"`
	Participants    []*Participant `json:"participants,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	IsPaid          bool           `json:"isPaid"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
}

func (r *Reservation) ItemID() string { return r.ID }

func (r *Reservation) Start() time.Time {
	if r.EventSchedule == nil {
		return time.Time{}
	}
	return r.EventSchedule.StartTime
}

func (r *Reservation) End() time.Time {
	if r.EventSchedule == nil {
		return time.Time{}
	}
	return r.EventSchedule.EndTime
}

// Clone returns a copy that does not share the PaidAt pointer.
func (r *Reservation) Clone() *Reservation {
	c := *r
	if r.PaidAt != nil {
		paidAt := *r.PaidAt
		c.PaidAt = &paidAt
	}
	return &c
}
