package service

import "errors"

var (
	// ErrForbidden is returned when the caller is authenticated but is not
	// the record's owner or lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition is returned when a status change is not allowed
	// by the entity's transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
)
