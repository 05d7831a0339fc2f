package model

import "time"

const (
	StatusPlanned   = "Planned"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

type EventType struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration,omitempty"`
	Price           float64 `json:"price,omitempty"`
	MaxParticipants int     `json:"maxParticipants,omitempty"`
}

// EventSchedule is a single occurrence of a company event, also shown to
// trainers as a class.
type EventSchedule struct {
	ID          string     `json:"id"`
	EventTypeID string     `json:"eventTypeId,omitempty"`
	EventType   *EventType `json:"eventType,omitempty"`
	PlaceName   string     `json:"placeName,omitempty"`
	Status      string     `json:"status,omitempty"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     time.Time  `json:"endTime"`
}

func (e *EventSchedule) ItemID() string   { return e.ID }
func (e *EventSchedule) Start() time.Time { return e.StartTime }
func (e *EventSchedule) End() time.Time   { return e.EndTime }

// Title is the label shown on calendar pills.
func (e *EventSchedule) Title() string {
	if e.EventType != nil && e.EventType.Name != "" {
		return e.EventType.Name
	}
	if e.PlaceName != "" {
		return e.PlaceName
	}
	return "Event"
}
