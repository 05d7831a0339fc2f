package calendar

import "time"

const (
	DaysPerWeek = 7
	GridWeeks   = 6
	GridCells   = DaysPerWeek * GridWeeks
)

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type Cell struct {
	Date           time.Time `json:"date"`
	DateKey        string    `json:"dateKey"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsToday        bool      `json:"isToday"`
}

// Weekdays returns the grid's column headers, Monday first.
func Weekdays() []string {
	out := make([]string, len(weekdayLabels))
	copy(out, weekdayLabels)
	return out
}

// MondayOffset is the column of t's weekday in a Monday-first week.
func MondayOffset(t time.Time) int {
	return (int(t.Weekday()) - 1 + DaysPerWeek) % DaysPerWeek
}

// BuildMonthGrid lays out the month containing ref as six Monday-first
// weeks. The result always has GridCells entries: trailing days of the
// previous month, the whole month, then leading days of the next month.
// today marks at most one current-month cell.
func BuildMonthGrid(ref, today time.Time) []Cell {
	loc := ref.Location()
	year, month, _ := ref.Date()
	first := Day(year, month, 1, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	offset := MondayOffset(first)
	today = today.In(loc)

	cells := make([]Cell, 0, GridCells)

	for i := offset; i > 0; i-- {
		cells = append(cells, newCell(Day(year, month, 1-i, loc), false, false))
	}

	for day := 1; day <= daysInMonth; day++ {
		date := Day(year, month, day, loc)
		cells = append(cells, newCell(date, true, SameDay(date, today)))
	}

	for day := daysInMonth + 1; len(cells) < GridCells; day++ {
		cells = append(cells, newCell(Day(year, month, day, loc), false, false))
	}

	return cells
}

func newCell(date time.Time, current, today bool) Cell {
	return Cell{
		Date:           date,
		DateKey:        DateKey(date),
		IsCurrentMonth: current,
		IsToday:        today,
	}
}
