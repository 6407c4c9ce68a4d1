package errors

import (
	stderrors "errors"
)

// Sentinel errors. Match with errors.Is; any AppError of the same type matches.
var (
	// ErrEmptyInput is returned when aggregation or a write is attempted on zero records.
	ErrEmptyInput = &AppError{Type: ErrTypeEmptyInput}

	// ErrMalformedRecord marks a record that failed validation.
	ErrMalformedRecord = &AppError{Type: ErrTypeMalformedRecord}
)

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if stderrors.As(err, &appErr) {
			if appErr.Type == errType {
				return true
			}
			err = appErr.Cause
			continue
		}
		return false
	}
	return false
}

// TypeOf returns the type of the outermost AppError in err's chain, or "" if none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsEmptyInput is shorthand for errors.Is(err, ErrEmptyInput).
func IsEmptyInput(err error) bool {
	return stderrors.Is(err, ErrEmptyInput)
}
