package cli

import (
	"fmt"
	"strings"

	"studiodesk/internal/calendars/service"
	"studiodesk/pkg/calendar"
	"studiodesk/pkg/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth  = 16
	cellHeight = service.MaxEntriesPerCell + 2
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("245")).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(cellHeight).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, true, true, false).
			BorderForeground(lipgloss.Color("238"))

	otherMonthStyle = cellStyle.Foreground(lipgloss.Color("240")).Faint(true)

	todayStyle = cellStyle.
			Foreground(lipgloss.Color("205")).
			Bold(true)

	availabilityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	classStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	eventStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	moreStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// RenderMonth draws the six-week grid with the month key as its title.
func RenderMonth(month string, weekdays []string, cells []service.DayCell) string {
	header := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		header = append(header, headerStyle.Render(wd))
	}

	rows := []string{titleStyle.Render(month), lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for week := 0; week*calendar.DaysPerWeek < len(cells); week++ {
		end := min((week+1)*calendar.DaysPerWeek, len(cells))
		row := make([]string, 0, calendar.DaysPerWeek)
		for _, cell := range cells[week*calendar.DaysPerWeek : end] {
			row = append(row, renderCell(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(cell service.DayCell) string {
	style := cellStyle
	switch {
	case !cell.IsCurrentMonth:
		style = otherMonthStyle
	case cell.IsToday:
		style = todayStyle
	}

	lines := []string{fmt.Sprintf("%2d", cell.Date.Day())}
	for _, entry := range cell.Entries {
		lines = append(lines, entryStyle(entry.Kind).Render(entryLabel(entry)))
	}
	if cell.More > 0 {
		lines = append(lines, moreStyle.Render(fmt.Sprintf("+%d more", cell.More)))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func entryStyle(kind calendar.Kind) lipgloss.Style {
	switch kind {
	case calendar.KindClass:
		return classStyle
	case calendar.KindEvent:
		return eventStyle
	default:
		return availabilityStyle
	}
}

// entryLabel is the start time followed by a short title.
func entryLabel(entry calendar.Entry) string {
	start := entry.Start().Format(model.ClockLayout)
	if titled, ok := entry.Item.(interface{ Title() string }); ok {
		return truncate(start+" "+titled.Title(), cellWidth-2)
	}
	return start + " avail"
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// RenderErrors lists categories that failed to load.
func RenderErrors(errs []service.CategoryError) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("! %s: %s", e.Category, e.Message)))
	}
	return strings.Join(lines, "\n")
}

func renderRange(item calendar.TimedItem) string {
	return calendar.FormatRange(item.Start(), item.End())
}
