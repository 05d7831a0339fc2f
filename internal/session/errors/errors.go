package errors

import "errors"

var (
	ErrNotFound = errors.New("session not found")

	ErrExpired = errors.New("session expired")

	ErrNotAuthenticated = errors.New("not logged in")

	ErrNoCompany = errors.New("no company selected")

	ErrUnknownCompany = errors.New("company is not available to this user")
)
