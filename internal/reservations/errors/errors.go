package errors

import "errors"

var (
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrInvalidReservationID  = errors.New("reservation id is required")
	ErrLedgerCompanyRequired = errors.New("company id is required")
)
