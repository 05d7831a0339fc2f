package service

import (
	"studiodesk/pkg/calendar"
	"studiodesk/pkg/model"
)

// MaxEntriesPerCell is how many pills a grid cell shows before "+N more".
const MaxEntriesPerCell = 3

type DayCell struct {
	calendar.Cell
	Entries []calendar.Entry `json:"entries"`
	Count   int              `json:"count"`
	More    int              `json:"more"`
}

// CategoryError reports a category that failed to load. The screen still
// renders with that category empty.
type CategoryError struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type AvailabilityDay struct {
	Date    string                    `json:"date"`
	Slots   []*model.AvailabilitySlot `json:"slots"`
	Classes []*model.EventSchedule    `json:"classes"`
}

type AvailabilityView struct {
	Month      string             `json:"month"`
	Query      string             `json:"query"`
	Weekdays   []string           `json:"weekdays"`
	Cells      []DayCell          `json:"cells"`
	MonthCount int                `json:"monthCount"`
	Total      int                `json:"total"`
	View       calendar.ViewState `json:"view"`
	Day        *AvailabilityDay   `json:"day,omitempty"`
	Errors     []CategoryError    `json:"errors"`
}

type EventDay struct {
	Date   string                 `json:"date"`
	Events []*model.EventSchedule `json:"events"`
}

type EventView struct {
	Month      string             `json:"month"`
	Query      string             `json:"query"`
	Weekdays   []string           `json:"weekdays"`
	Cells      []DayCell          `json:"cells"`
	MonthCount int                `json:"monthCount"`
	Total      int                `json:"total"`
	EventType  string             `json:"eventType,omitempty"`
	EventTypes []*model.EventType `json:"eventTypes"`
	View       calendar.ViewState `json:"view"`
	Day        *EventDay          `json:"day,omitempty"`
	Errors     []CategoryError    `json:"errors"`
}

// fillCells attaches each grid cell's entries, capped at MaxEntriesPerCell.
func fillCells(grid []calendar.Cell, entriesOn func(dateKey string) []calendar.Entry) []DayCell {
	cells := make([]DayCell, 0, len(grid))
	for _, cell := range grid {
		entries := entriesOn(cell.DateKey)
		dc := DayCell{Cell: cell, Count: len(entries), Entries: entries}
		if len(entries) > MaxEntriesPerCell {
			dc.Entries = entries[:MaxEntriesPerCell]
			dc.More = len(entries) - MaxEntriesPerCell
		}
		if dc.Entries == nil {
			dc.Entries = []calendar.Entry{}
		}
		cells = append(cells, dc)
	}
	return cells
}
