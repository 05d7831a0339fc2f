package cli

import (
	"studiodesk/internal/calendars/service"
	"studiodesk/pkg/model"
	"studiodesk/pkg/sanitizer"
)

type AvailabilityShowCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
	Day   string `help:"Also list the slots and classes of this day (YYYY-MM-DD)."`
	Nav   string `help:"Step from --month: prev, next or today."`
}

func (c *AvailabilityShowCmd) Run(ctx *Context) error {
	reqCtx, scope, err := ctx.scope()
	if err != nil {
		return err
	}

	view, err := ctx.Calendars.AvailabilityCalendar(reqCtx, scope, calendarQuery(c.Month, c.Day, map[string]string{service.ParamNav: c.Nav}))
	if err != nil {
		return ctx.Expired(err)
	}

	ctx.println(RenderMonth(view.Month, view.Weekdays, view.Cells))
	ctx.printf("%d slot(s) this month, %d in total\n", view.MonthCount, view.Total)
	if errs := RenderErrors(view.Errors); errs != "" {
		ctx.println(errs)
	}

	if view.Day != nil {
		ctx.printf("\n%s\n", titleStyle.Render(view.Day.Date))
		if len(view.Day.Slots) == 0 && len(view.Day.Classes) == 0 {
			ctx.println("  Nothing scheduled")
		}
		for _, slot := range view.Day.Slots {
			ctx.printf("  %s  %s  %s\n", availabilityStyle.Render(renderRange(slot)), "available", slot.ID)
		}
		for _, class := range view.Day.Classes {
			ctx.printf("  %s  %s\n", classStyle.Render(renderRange(class)), class.Title())
		}
	}
	return nil
}

type AvailabilityAddCmd struct {
	Date  string `required:"" help:"Day of the slot (YYYY-MM-DD)."`
	Start string `required:"" help:"Start time (HH:MM)."`
	End   string `required:"" help:"End time (HH:MM)."`
}

func (c *AvailabilityAddCmd) Run(ctx *Context) error {
	reqCtx, scope, err := ctx.scope()
	if err != nil {
		return err
	}

	slot, err := ctx.Calendars.CreateAvailability(reqCtx, scope, &model.AvailabilityForm{
		Date:      sanitizer.SanitizeDate(c.Date),
		StartTime: sanitizer.SanitizeClock(c.Start),
		EndTime:   sanitizer.SanitizeClock(c.End),
	})
	if err != nil {
		return ctx.Expired(err)
	}

	ctx.printf("Availability added: %s %s\n", c.Date, renderRange(slot))
	return nil
}

type AvailabilityDeleteCmd struct {
	ID string `arg:"" help:"Availability slot ID."`
}

func (c *AvailabilityDeleteCmd) Run(ctx *Context) error {
	reqCtx, scope, err := ctx.scope()
	if err != nil {
		return err
	}
	if err := ctx.Calendars.DeleteAvailability(reqCtx, scope, sanitizer.SanitizeID(c.ID)); err != nil {
		return ctx.Expired(err)
	}
	ctx.printf("Availability %s deleted\n", c.ID)
	return nil
}
