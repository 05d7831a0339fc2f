package client

import (
	"encoding/json"
	"fmt"
	"time"

	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"
)

// The booking API sends local timestamps without an offset, so every wire
// type keeps times as strings until they are read in the configured zone.

type availabilityDTO struct {
	ID            string `json:"id"`
	StaffMemberID string `json:"staffMemberId"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

func (d availabilityDTO) toModel(loc *time.Location) (*model.AvailabilitySlot, error) {
	start, err := model.ParseTimestamp(d.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("availability %s start: %w", d.ID, err)
	}
	end, err := model.ParseTimestamp(d.EndTime, loc)
	if err != nil {
		return nil, fmt.Errorf("availability %s end: %w", d.ID, err)
	}
	date, err := model.ParseTimestamp(d.Date, loc)
	if err != nil || date.IsZero() {
		date = start
	}
	return &model.AvailabilitySlot{
		ID:            d.ID,
		StaffMemberID: d.StaffMemberID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
	}, nil
}

type staffAvailabilityDTO struct {
	StaffMember    *model.StaffMember `json:"staffMember"`
	AvailableSlots []availabilityDTO  `json:"availableSlots"`
}

type eventScheduleDTO struct {
	ID          string           `json:"id"`
	EventTypeID string           `json:"eventTypeId"`
	EventType   *model.EventType `json:"eventType"`
	PlaceName   string           `json:"placeName"`
	Status      string           `json:"status"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
}

func (d eventScheduleDTO) toModel(loc *time.Location) (*model.EventSchedule, error) {
	start, err := model.ParseTimestamp(d.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("event schedule %s start: %w", d.ID, err)
	}
	end, err := model.ParseTimestamp(d.EndTime, loc)
	if err != nil {
		return nil, fmt.Errorf("event schedule %s end: %w", d.ID, err)
	}
	eventTypeID := d.EventTypeID
	if eventTypeID == "" && d.EventType != nil {
		eventTypeID = d.EventType.ID
	}
	return &model.EventSchedule{
		ID:          d.ID,
		EventTypeID: eventTypeID,
		EventType:   d.EventType,
		PlaceName:   d.PlaceName,
		Status:      d.Status,
		StartTime:   start,
		EndTime:     end,
	}, nil
}

type reservationDTO struct {
	ID              string               `json:"id"`
	EventScheduleID string               `json:"eventScheduleId"`
	EventSchedule   *eventScheduleDTO    `json:"eventSchedule"`
	ParticipantsIDs []string             `json:"participantsIds"`
	Participants    []*model.Participant `json:"participants"`
	Notes           string               `json:"notes"`
	IsPaid          bool                 `json:"isPaid"`
	PaidAt          string               `json:"paidAt"`
}

func (d reservationDTO) toModel(loc *time.Location) (*model.Reservation, error) {
	r := &model.Reservation{
		ID:              d.ID,
		EventScheduleID: d.EventScheduleID,
		ParticipantsIDs: d.ParticipantsIDs,
		Participants:    d.Participants,
		Notes:           d.Notes,
		IsPaid:          d.IsPaid,
	}
	if d.EventSchedule != nil {
		schedule, err := d.EventSchedule.toModel(loc)
		if err != nil {
			return nil, fmt.Errorf("reservation %s: %w", d.ID, err)
		}
		r.EventSchedule = schedule
		if r.EventScheduleID == "" {
			r.EventScheduleID = schedule.ID
		}
	}
	paidAt, err := model.ParseTimestamp(d.PaidAt, loc)
	if err != nil {
		return nil, fmt.Errorf("reservation %s paidAt: %w", d.ID, err)
	}
	if !paidAt.IsZero() {
		r.PaidAt = &paidAt
	}
	return r, nil
}

type pageEnvelope[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// pageDTO accepts both a paginated envelope and a bare JSON array.
type pageDTO[T any] pageEnvelope[T]

func (p *pageDTO[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		p.Items = items
		p.TotalCount = len(items)
		return nil
	}
	var env pageEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*p = pageDTO[T](env)
	if p.TotalCount == 0 {
		p.TotalCount = len(p.Items)
	}
	return nil
}

// convertAll converts every item it can read. An item with an unreadable
// timestamp is logged and left out so the rest of the list still renders.
func convertAll[D any, M any](items []D, loc *time.Location, log *logger.Logger, convert func(D, *time.Location) (M, error)) []M {
	out := make([]M, 0, len(items))
	for _, item := range items {
		m, err := convert(item, loc)
		if err != nil {
			if log != nil {
				log.Warn("Skipping unreadable item from API", "error", err)
			}
			continue
		}
		out = append(out, m)
	}
	return out
}
