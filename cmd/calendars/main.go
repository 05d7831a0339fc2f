package main

import (
	calendarhandler "studiodesk/internal/calendars/handler"
	calendarservice "studiodesk/internal/calendars/service"
	calendarvalidator "studiodesk/internal/calendars/validator"
	"studiodesk/internal/events"
	reservationhandler "studiodesk/internal/reservations/handler"
	"studiodesk/internal/reservations/listener"
	"studiodesk/internal/reservations/repository"
	reservationservice "studiodesk/internal/reservations/service"
	"studiodesk/internal/session"
	sessionhandler "studiodesk/internal/session/handler"
	sessionrepository "studiodesk/internal/session/repository"
	sessionvalidator "studiodesk/internal/session/validator"
	"studiodesk/pkg/app"
	"studiodesk/pkg/client"
	"studiodesk/pkg/config"
	"studiodesk/pkg/contracts"
	"studiodesk/pkg/kafka"
	kafka_config "studiodesk/pkg/kafka/config"
)

const ServiceName = "calendars"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Calendars service")

	kafkaCfg := kafka_config.Load()

	publisher, metrics, err := events.New(kafkaCfg, ServiceName, cfg.Log)
	if err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Failed to start event publisher", "error", err)
	}

	ledger := repository.NewLedger()
	serverApp := app.NewApplication(cfg).WithEvents(publisher, metrics)

	if kafkaCfg.Enabled() {
		consumer, err := kafka.NewConsumer(
			kafkaCfg,
			kafkaCfg.GroupFor(ServiceName),
			listener.NewPaymentListener(ledger, cfg.Log).Handle,
			cfg.Log,
		)
		if err != nil {
			cfg.GracefulShutdown()
			cfg.Log.Fatal("Failed to start event consumer", "error", err)
		}
		serverApp.WithWorker(consumer)
	}

	serverApp.SetApp(initHandlers(cfg, publisher, ledger))
	serverApp.Run()
}

func initHandlers(cfg *config.Config, publisher events.Publisher, ledger *repository.Ledger) contracts.Handlers {
	api := cfg.Client.API

	sessions := session.NewManager(
		sessionrepository.NewMongoSessionRepository(cfg, sealerOrNil(cfg)),
		client.NewAuthClient(api),
		cfg.Log,
	)

	calendars := calendarservice.NewCalendarService(
		client.NewStaffMemberClient(api, cfg.Location),
		client.NewEventScheduleClient(api, cfg.Location),
		client.NewEventTypeClient(api),
		calendarvalidator.NewAvailabilityValidator(cfg.Log),
		publisher,
		cfg,
	)

	reservations := reservationservice.NewReservationService(
		client.NewReservationClient(api, cfg.Location),
		ledger,
		publisher,
		cfg,
	)

	cfg.Log.Info("Calendar services initialized", "database", cfg.MongoDatabaseName, "time_zone", cfg.TimeZone)
	return contracts.Handlers{
		sessionhandler.NewSessionHandler(sessions, sessionvalidator.NewSessionValidator(cfg.Log), cfg.Log),
		calendarhandler.NewCalendarHandler(calendars, sessions, cfg.Log),
		reservationhandler.NewReservationHandler(reservations, sessions, cfg.Log),
	}
}

// sealerOrNil keeps a nil *sealer.Sealer from turning into a non-nil
// TokenSealer.
func sealerOrNil(cfg *config.Config) sessionrepository.TokenSealer {
	if s := cfg.Sealer(); s != nil {
		return s
	}
	return nil
}
