package cli

import "github.com/alecthomas/kong"

// CLI is the kong grammar of the studiodesk command.
type CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Also write debug logs to stderr."`
	LogFile string `help:"Log file path." type:"path" default:"~/.config/studiodesk/studiodesk.log" name:"log-file"`

	Login   LoginCmd  `cmd:"" help:"Log in to the booking backend."`
	Logout  LogoutCmd `cmd:"" help:"Log out and forget the stored session."`
	Company struct {
		List   CompanyListCmd   `cmd:"" help:"List your companies." default:"1"`
		Select CompanySelectCmd `cmd:"" help:"Pick the company and role to work under."`
		Clear  CompanyClearCmd  `cmd:"" help:"Forget the selected company."`
	} `cmd:"" help:"Manage the selected company."`
	Availability struct {
		Show   AvailabilityShowCmd   `cmd:"" help:"Show your availability calendar." default:"1"`
		Add    AvailabilityAddCmd    `cmd:"" help:"Add an availability slot."`
		Delete AvailabilityDeleteCmd `cmd:"" help:"Delete an availability slot."`
	} `cmd:"" help:"Manage your availability."`
	Events struct {
		Show EventsShowCmd `cmd:"" help:"Show the company event calendar." default:"1"`
	} `cmd:"" help:"Browse scheduled events."`
	Reservations struct {
		List   ReservationListCmd   `cmd:"" help:"List reservations." default:"1"`
		Paid   ReservationPaidCmd   `cmd:"" help:"Mark a reservation as paid."`
		Unpaid ReservationUnpaidCmd `cmd:"" help:"Mark a reservation as unpaid."`
	} `cmd:"" help:"Manage reservation payments."`
}

// Options are the kong options shared by main and tests.
func Options(version string) []kong.Option {
	return []kong.Option{
		kong.Name("studiodesk"),
		kong.Description("Studio staff calendars and reservations from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": version},
	}
}
