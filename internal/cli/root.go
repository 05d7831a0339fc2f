package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"

	calendarservice "studiodesk/internal/calendars/service"
	reservationservice "studiodesk/internal/reservations/service"
	"studiodesk/internal/session"
	"studiodesk/internal/session/validator"
	"studiodesk/pkg/calendar"
	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/sanitizer"
)

// Context is bound into every command's Run method.
type Context struct {
	Ctx          context.Context
	Session      *session.Session
	Validator    *validator.SessionValidator
	Calendars    calendarservice.CalendarService
	Reservations reservationservice.ReservationService
	Out          io.Writer
	Log          *logger.Logger
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// scope returns the selected company and a context carrying the token.
func (c *Context) scope() (context.Context, session.Scope, error) {
	scope, err := c.Session.RequireCompany()
	if err != nil {
		return nil, session.Scope{}, err
	}
	return c.Session.Context(c.context()), scope, nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Expired logs the session out after the backend rejected its token, so the
// next command asks for a fresh login.
func (c *Context) Expired(err error) error {
	if !apperrors.HasCode(err, apperrors.CodeUnauthorized) {
		return err
	}
	if logoutErr := c.Session.Logout(c.context()); logoutErr != nil {
		c.Log.Warn("Failed to clear expired session", "error", logoutErr)
	}
	return fmt.Errorf("%s, run `studiodesk login` again", apperrors.UserMessage(err))
}

// calendarQuery builds the query a screen would carry for these flags.
// Empty values are left out.
func calendarQuery(month, day string, extra map[string]string) string {
	v := url.Values{}
	month, day = sanitizer.SanitizeMonth(month), sanitizer.SanitizeDate(day)
	if month != "" {
		v.Set(calendar.ParamMonth, month)
	}
	if day != "" {
		v.Set(calendar.ParamDay, day)
	}
	for key, value := range extra {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v.Encode()
}
