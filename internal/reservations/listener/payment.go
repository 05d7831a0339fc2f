// Package listener keeps this instance's reservation ledger in step with
// payment changes made through other instances.
package listener

import (
	"context"
	"errors"
	"fmt"

	"studiodesk/internal/events"
	reservationerrors "studiodesk/internal/reservations/errors"
	"studiodesk/internal/reservations/repository"
	"studiodesk/pkg/kafka"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"
)

type PaymentListener struct {
	ledger *repository.Ledger
	log    *logger.Logger
}

func NewPaymentListener(ledger *repository.Ledger, log *logger.Logger) *PaymentListener {
	return &PaymentListener{ledger: ledger, log: log}
}

// Handle is a kafka.MessageHandler. Other event types are ignored, as are
// reservations this instance has never listed.
func (l *PaymentListener) Handle(_ context.Context, msg kafka.Message) error {
	if msg.GetEventType() != string(events.ReservationPaymentSet) {
		return nil
	}

	var payload events.PaymentChangedPayload
	if err := msg.DecodeValue(&payload); err != nil {
		return kafka.Permanent(fmt.Errorf("decode %s: %w", events.ReservationPaymentSet, err))
	}
	if payload.CompanyID == "" || payload.ReservationID == "" {
		return kafka.Permanent(fmt.Errorf("%s without company or reservation ID", events.ReservationPaymentSet))
	}

	err := l.ledger.Update(payload.CompanyID, payload.ReservationID, func(r *model.Reservation) {
		r.IsPaid = payload.IsPaid
		r.PaidAt = payload.PaidAt
		if !payload.IsPaid {
			r.PaidAt = nil
		}
	})
	if errors.Is(err, reservationerrors.ErrReservationNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	l.log.Debug("Reservation payment synced",
		"event_id", msg.GetEventID(),
		"company_id", payload.CompanyID,
		"reservation_id", payload.ReservationID,
		"is_paid", payload.IsPaid,
	)
	return nil
}
