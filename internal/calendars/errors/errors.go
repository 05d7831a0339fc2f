package errors

import "errors"

var (
	ErrNoStaffMember = errors.New("session has no staff member")

	ErrEditNotSupported = errors.New("editing availability is not supported")

	ErrInvalidAvailabilityID = errors.New("availability ID cannot be empty")
)
