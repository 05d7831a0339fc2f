package repository

import (
	"sync"

	reservationerrors "studiodesk/internal/reservations/errors"
	"studiodesk/pkg/model"
)

// Ledger holds the last reservations seen per company. Every read and
// write copies, so callers never share a *model.Reservation with it.
type Ledger struct {
	mu        sync.Mutex
	companies map[string]*companyLedger
}

type companyLedger struct {
	order []string
	byID  map[string]*model.Reservation
}

func NewLedger() *Ledger {
	return &Ledger{companies: make(map[string]*companyLedger)}
}

// Replace swaps a company's snapshot for list, keeping list's order.
func (l *Ledger) Replace(companyID string, list []*model.Reservation) error {
	if companyID == "" {
		return reservationerrors.ErrLedgerCompanyRequired
	}

	cl := &companyLedger{
		order: make([]string, 0, len(list)),
		byID:  make(map[string]*model.Reservation, len(list)),
	}
	for _, r := range list {
		if r == nil || r.ID == "" {
			continue
		}
		if _, seen := cl.byID[r.ID]; !seen {
			cl.order = append(cl.order, r.ID)
		}
		cl.byID[r.ID] = r.Clone()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.companies[companyID] = cl
	return nil
}

// Get returns a copy of one reservation.
func (l *Ledger) Get(companyID, id string) (*model.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.companies[companyID]
	if !ok {
		return nil, reservationerrors.ErrReservationNotFound
	}
	r, ok := cl.byID[id]
	if !ok {
		return nil, reservationerrors.ErrReservationNotFound
	}
	return r.Clone(), nil
}

// Put overwrites a known reservation. Unknown ones are appended.
func (l *Ledger) Put(companyID string, r *model.Reservation) error {
	if companyID == "" {
		return reservationerrors.ErrLedgerCompanyRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.companies[companyID]
	if !ok {
		cl = &companyLedger{byID: make(map[string]*model.Reservation)}
		l.companies[companyID] = cl
	}
	if _, exists := cl.byID[r.ID]; !exists {
		cl.order = append(cl.order, r.ID)
	}
	cl.byID[r.ID] = r.Clone()
	return nil
}

// Update applies fn to a known reservation under the ledger lock. Unknown
// reservations are left alone and reported as not found.
func (l *Ledger) Update(companyID, id string, fn func(r *model.Reservation)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.companies[companyID]
	if !ok {
		return reservationerrors.ErrReservationNotFound
	}
	r, ok := cl.byID[id]
	if !ok {
		return reservationerrors.ErrReservationNotFound
	}
	updated := r.Clone()
	fn(updated)
	updated.ID = id
	cl.byID[id] = updated
	return nil
}

// Merge applies list on top of a company's snapshot without dropping
// reservations list does not mention.
func (l *Ledger) Merge(companyID string, list []*model.Reservation) error {
	for _, r := range list {
		if r == nil || r.ID == "" {
			continue
		}
		if err := l.Put(companyID, r); err != nil {
			return err
		}
	}
	return nil
}

// List returns copies of a company's reservations in ledger order.
func (l *Ledger) List(companyID string) []*model.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.companies[companyID]
	if !ok {
		return []*model.Reservation{}
	}
	out := make([]*model.Reservation, 0, len(cl.order))
	for _, id := range cl.order {
		out = append(out, cl.byID[id].Clone())
	}
	return out
}
