package service

import (
	"context"
	"errors"
	"time"

	"studiodesk/internal/events"
	reservationerrors "studiodesk/internal/reservations/errors"
	"studiodesk/internal/reservations/repository"
	"studiodesk/internal/session"
	"studiodesk/pkg/config"
	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/middleware"
	"studiodesk/pkg/model"
)

type ReservationAPI interface {
	GetAll(ctx context.Context, companyID string, page, pageSize int) (*model.Paginated[*model.Reservation], error)
	MarkAsPaid(ctx context.Context, companyID, id string) error
	UnmarkAsPaid(ctx context.Context, companyID, id string) error
}

type ReservationService interface {
	List(ctx context.Context, scope session.Scope, page, pageSize int) (*model.Paginated[*model.Reservation], error)
	SetPaid(ctx context.Context, scope session.Scope, id string, paid bool) (*model.Reservation, error)
}

type reservationService struct {
	api       ReservationAPI
	ledger    *repository.Ledger
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewReservationService(api ReservationAPI, ledger *repository.Ledger, publisher events.Publisher, cfg *config.Config) ReservationService {
	return newReservationService(api, ledger, publisher, cfg, time.Now)
}

func newReservationService(api ReservationAPI, ledger *repository.Ledger, publisher events.Publisher, cfg *config.Config, now func() time.Time) *reservationService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &reservationService{
		api:       api,
		ledger:    ledger,
		publisher: publisher,
		cfg:       cfg,
		now:       now,
	}
}

func (s *reservationService) List(ctx context.Context, scope session.Scope, page, pageSize int) (*model.Paginated[*model.Reservation], error) {
	page = config.NormalizePage(page)
	pageSize = s.cfg.NormalizePageSize(pageSize)

	result, err := s.api.GetAll(ctx, scope.CompanyID, page, pageSize)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations",
			"company_id", scope.CompanyID,
			"page", page,
			"error", err,
		)
		return nil, err
	}
	if err := s.ledger.Replace(scope.CompanyID, result.Items); err != nil {
		return nil, apperrors.Internal("Failed to record reservations", err)
	}

	result.Items = s.ledger.List(scope.CompanyID)
	if result.Page == 0 {
		result.Page = page
	}
	if result.PageSize == 0 {
		result.PageSize = pageSize
	}
	return result, nil
}

// SetPaid records the new payment state before the backend confirms it.
// A rejected call restores the previous snapshot. An accepted one is
// followed by a refresh whose failure is only logged.
func (s *reservationService) SetPaid(ctx context.Context, scope session.Scope, id string, paid bool) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput(reservationerrors.ErrInvalidReservationID.Error())
	}

	previous, err := s.snapshot(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	tentative := previous.Clone()
	tentative.IsPaid = paid
	tentative.PaidAt = nil
	if paid {
		paidAt := s.now()
		tentative.PaidAt = &paidAt
	}
	if err := s.ledger.Put(scope.CompanyID, tentative); err != nil {
		return nil, apperrors.Internal("Failed to record reservation", err)
	}

	if err := s.toggle(ctx, scope.CompanyID, id, paid); err != nil {
		if putErr := s.ledger.Put(scope.CompanyID, previous); putErr != nil {
			s.cfg.Log.Error("Failed to restore reservation", "id", id, "error", putErr)
		}
		s.cfg.Log.Warn("Payment change rejected, restored previous state",
			"id", id,
			"company_id", scope.CompanyID,
			"paid", paid,
			"error", err,
		)
		return nil, err
	}

	if err := s.refresh(ctx, scope.CompanyID); err != nil {
		s.cfg.Log.Warn("Silent reservation refresh failed", "company_id", scope.CompanyID, "error", err)
	}

	current, err := s.ledger.Get(scope.CompanyID, id)
	if err != nil {
		current = tentative
	}

	events.PublishBestEffort(ctx, s.publisher, s.cfg.Log, events.Event{
		Type:          events.ReservationPaymentSet,
		Key:           id,
		CorrelationID: middleware.RequestID(ctx),
		Payload: events.PaymentChangedPayload{
			CompanyID:     scope.CompanyID,
			ReservationID: id,
			IsPaid:        current.IsPaid,
			PaidAt:        current.PaidAt,
		},
	})

	s.cfg.Log.Info("Reservation payment changed", "id", id, "company_id", scope.CompanyID, "paid", current.IsPaid)
	return current, nil
}

// snapshot returns the ledger's copy of id, loading the first page when
// the company has not been listed yet.
func (s *reservationService) snapshot(ctx context.Context, scope session.Scope, id string) (*model.Reservation, error) {
	r, err := s.ledger.Get(scope.CompanyID, id)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, reservationerrors.ErrReservationNotFound) {
		return nil, apperrors.Internal("Failed to read reservation", err)
	}

	if err := s.refresh(ctx, scope.CompanyID); err != nil {
		return nil, err
	}
	r, err = s.ledger.Get(scope.CompanyID, id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Reservation", id)
	}
	return r, nil
}

func (s *reservationService) refresh(ctx context.Context, companyID string) error {
	result, err := s.api.GetAll(ctx, companyID, 1, s.cfg.NormalizePageSize(0))
	if err != nil {
		return err
	}
	return s.ledger.Merge(companyID, result.Items)
}

func (s *reservationService) toggle(ctx context.Context, companyID, id string, paid bool) error {
	if paid {
		return s.api.MarkAsPaid(ctx, companyID, id)
	}
	return s.api.UnmarkAsPaid(ctx, companyID, id)
}
