package cli

import (
	"studiodesk/pkg/model"
	"studiodesk/pkg/sanitizer"
)

type ReservationListCmd struct {
	Page     int `help:"Page number." default:"1"`
	PageSize int `help:"Reservations per page." name:"page-size"`
}

func (c *ReservationListCmd) Run(ctx *Context) error {
	reqCtx, scope, err := ctx.scope()
	if err != nil {
		return err
	}

	result, err := ctx.Reservations.List(reqCtx, scope, c.Page, c.PageSize)
	if err != nil {
		return ctx.Expired(err)
	}

	if len(result.Items) == 0 {
		ctx.println("No reservations")
		return nil
	}
	for _, r := range result.Items {
		printReservation(ctx, r)
	}
	ctx.printf("Page %d, %d reservation(s) in total\n", result.Page, result.TotalCount)
	return nil
}

type ReservationPaidCmd struct {
	ID string `arg:"" help:"Reservation ID."`
}

func (c *ReservationPaidCmd) Run(ctx *Context) error {
	return setPaid(ctx, c.ID, true)
}

type ReservationUnpaidCmd struct {
	ID string `arg:"" help:"Reservation ID."`
}

func (c *ReservationUnpaidCmd) Run(ctx *Context) error {
	return setPaid(ctx, c.ID, false)
}

func setPaid(ctx *Context, id string, paid bool) error {
	reqCtx, scope, err := ctx.scope()
	if err != nil {
		return err
	}
	r, err := ctx.Reservations.SetPaid(reqCtx, scope, sanitizer.SanitizeID(id), paid)
	if err != nil {
		return ctx.Expired(err)
	}
	printReservation(ctx, r)
	return nil
}

func printReservation(ctx *Context, r *model.Reservation) {
	status := dangerStyle.Render("unpaid")
	if r.IsPaid {
		status = availabilityStyle.Render("paid")
		if r.PaidAt != nil {
			status += " " + r.PaidAt.Format("2006-01-02 15:04")
		}
	}

	when := "-"
	title := r.EventScheduleID
	if r.EventSchedule != nil {
		when = r.EventSchedule.StartTime.Format("2006-01-02 15:04")
		title = r.EventSchedule.Title()
	}
	ctx.printf("  %s  %-16s  %-20s  %s\n", r.ID, when, title, status)
}
