package events

import (
	"context"
	"time"

	"studiodesk/pkg/model"
)

type Type string

const (
	AvailabilityCreated   Type = "availability.created"
	AvailabilityDeleted   Type = "availability.deleted"
	ReservationPaymentSet Type = "reservation.payment_changed"

	SchemaVersion = "1"
)

// Event is a domain fact worth telling other systems about. Key picks the
// partition, so events for one staff member or reservation stay ordered.
type Event struct {
	Type          Type
	Key           string
	CorrelationID string
	Payload       any
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type AvailabilityCreatedPayload struct {
	CompanyID     string                    `json:"companyId"`
	StaffMemberID string                    `json:"staffMemberId"`
	Slot          *model.AvailabilitySlot   `json:"slot,omitempty"`
	Request       model.AvailabilityRequest `json:"request"`
}

type AvailabilityDeletedPayload struct {
	CompanyID      string `json:"companyId"`
	StaffMemberID  string `json:"staffMemberId"`
	AvailabilityID string `json:"availabilityId"`
}

type PaymentChangedPayload struct {
	CompanyID     string     `json:"companyId"`
	ReservationID string     `json:"reservationId"`
	IsPaid        bool       `json:"isPaid"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

// Nop drops every event. It stands in when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
