package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	calendarservice "studiodesk/internal/calendars/service"
	calendarvalidator "studiodesk/internal/calendars/validator"
	"studiodesk/internal/cli"
	"studiodesk/internal/events"
	"studiodesk/internal/reservations/repository"
	reservationservice "studiodesk/internal/reservations/service"
	"studiodesk/internal/session"
	"studiodesk/internal/session/keyringstore"
	sessionvalidator "studiodesk/internal/session/validator"
	"studiodesk/pkg/client"
	"studiodesk/pkg/config"
	"studiodesk/pkg/logger"

	"github.com/alecthomas/kong"
)

const version = "v0.3.0"

func main() {
	var grammar cli.CLI
	kctx := kong.Parse(&grammar, cli.Options(version)...)

	log, closeLog, err := initLogger(grammar.Debug, grammar.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.FromEnv(log)
	if cfg.Location == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown time zone %q\n", cfg.TimeZone)
		os.Exit(1)
	}

	if err := kctx.Run(initContext(ctx, cfg, log)); err != nil {
		log.Debug("Command failed", "command", kctx.Command(), "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger writes to a rotating file, and to stderr as well in debug mode.
func initLogger(debug bool, path string) (*logger.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	file := logger.RotatingFile(path)

	level := logger.WARN
	var out io.Writer = file
	if debug {
		level = logger.DEBUG
		out = io.MultiWriter(os.Stderr, file)
	}

	return logger.New(logger.Config{
		Level:     level,
		Format:    logger.PRETTY,
		Output:    out,
		AddSource: debug,
		Service:   "studiodesk",
	}), file, nil
}

func initContext(ctx context.Context, cfg *config.Config, log *logger.Logger) *cli.Context {
	api := cfg.Client.API
	sess := session.New(keyringstore.DefaultSessionID, keyringstore.New(keyringstore.DefaultService), client.NewAuthClient(api), log)
	if err := sess.Init(ctx); err != nil {
		log.Warn("Stored session could not be restored", "error", err)
	}

	calendars := calendarservice.NewCalendarService(
		client.NewStaffMemberClient(api, cfg.Location),
		client.NewEventScheduleClient(api, cfg.Location),
		client.NewEventTypeClient(api),
		calendarvalidator.NewAvailabilityValidator(log),
		events.Nop{},
		cfg,
	)
	reservations := reservationservice.NewReservationService(
		client.NewReservationClient(api, cfg.Location),
		repository.NewLedger(),
		events.Nop{},
		cfg,
	)

	return &cli.Context{
		Ctx:          ctx,
		Session:      sess,
		Validator:    sessionvalidator.NewSessionValidator(log),
		Calendars:    calendars,
		Reservations: reservations,
		Out:          os.Stdout,
		Log:          log,
	}
}
