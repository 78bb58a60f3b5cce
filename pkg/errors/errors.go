package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNoFileProvided         = errors.New("no file uploaded")
	ErrInvalidFileFormat      = errors.New("invalid file format")
	ErrMissingRequiredColumns = errors.New("required columns not found: name, id number")
	ErrRecordNotFound         = errors.New("record not found")
	ErrOTPNotFound            = errors.New("no code was sent to this number")
	ErrOTPExpired             = errors.New("code has expired")
	ErrOTPMismatch            = errors.New("incorrect code")
	ErrInvalidCredentials     = errors.New("invalid username or password")
)

// RowError marks a single spreadsheet row that could not be processed.
// Reconcilers log and count these, they never abort a batch.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d skipped: %s", e.Row, e.Reason)
}

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}
