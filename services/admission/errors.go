package admission

import "errors"

var (
	// ErrRecordNotFound means no applicant matched the reference or
	// application-number lookup.
	ErrRecordNotFound = errors.New("applicant record not found")
	// ErrPaymentNotConfirmed means the gateway reported the transaction as
	// anything other than success. The record is never mutated in this case.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed by gateway")
	// ErrAcceptanceRequired means the admission letter was requested before
	// the acceptance fee was confirmed paid. Surfaced as 403 so clients can
	// route the applicant to the acceptance flow.
	ErrAcceptanceRequired = errors.New("acceptance fee not paid")
	// ErrNotAdmitted means the acceptance flow was entered for a record whose
	// status is not ADMITTED.
	ErrNotAdmitted = errors.New("applicant has not been admitted")
)

// ValidationError reports missing or malformed submission fields, keyed by
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
