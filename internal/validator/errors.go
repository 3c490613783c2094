package validator

import "errors"

var (
	// ErrMissingField is returned when a required employee field is absent.
	ErrMissingField = errors.New("required field is missing")
	// ErrUnknownState is returned when the employee location is not an allowed state.
	ErrUnknownState = errors.New("location is not an allowed state")
	// ErrInvalidSalary is returned when salary components are negative or inconsistent with the CTC.
	ErrInvalidSalary = errors.New("invalid salary components")
)
