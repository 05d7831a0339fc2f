package cli

import (
	"studiodesk/internal/calendars/service"
	"studiodesk/pkg/calendar"
)

type EventsShowCmd struct {
	Month     string `help:"Month to show (YYYY-MM). Defaults to the current month."`
	Day       string `help:"Also list the events of this day (YYYY-MM-DD)."`
	EventType string `help:"Only show events of this event type ID." name:"event-type"`
	Nav       string `help:"Step from --month: prev, next or today."`
}

func (c *EventsShowCmd) Run(ctx *Context) error {
	reqCtx, scope, err := ctx.scope()
	if err != nil {
		return err
	}

	query := calendarQuery(c.Month, c.Day, map[string]string{
		calendar.ParamEventType: c.EventType,
		service.ParamNav:        c.Nav,
	})

	view, err := ctx.Calendars.EventCalendar(reqCtx, scope, query)
	if err != nil {
		return ctx.Expired(err)
	}

	ctx.println(RenderMonth(view.Month, view.Weekdays, view.Cells))
	ctx.printf("%d event(s) this month\n", view.MonthCount)
	if errs := RenderErrors(view.Errors); errs != "" {
		ctx.println(errs)
	}

	if len(view.EventTypes) > 0 && c.EventType == "" {
		ctx.println("\nEvent types:")
		for _, et := range view.EventTypes {
			ctx.printf("  %s  %s\n", et.ID, et.Name)
		}
	}

	if view.Day != nil {
		ctx.printf("\n%s\n", titleStyle.Render(view.Day.Date))
		if len(view.Day.Events) == 0 {
			ctx.println("  Nothing scheduled")
		}
		for _, event := range view.Day.Events {
			ctx.printf("  %s  %s\n", eventStyle.Render(renderRange(event)), event.Title())
		}
	}
	return nil
}
