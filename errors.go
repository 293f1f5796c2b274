package certpay

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound        = errors.New("certpay: not found")
	ErrAlreadyExists   = errors.New("certpay: already exists")
	ErrInvalidInput    = errors.New("certpay: invalid input")
	ErrForbidden       = errors.New("certpay: forbidden")
	ErrPaymentRequired = errors.New("certpay: payment required")

	// Organization errors
	ErrOrganizationNotFound = errors.New("certpay: organization not found")
	ErrUserNotFound         = errors.New("certpay: user not found")
	ErrMembershipNotFound   = errors.New("certpay: membership not found")

	// Project errors
	ErrProjectNotFound = errors.New("certpay: project not found")
	ErrWorkerNotFound  = errors.New("certpay: worker not found")

	// Payroll errors
	ErrRunNotFound        = errors.New("certpay: payroll run not found")
	ErrReportNotFound     = errors.New("certpay: report not found")
	ErrTimesheetsNotFound = errors.New("certpay: no timesheet entries in period")

	// Subscription errors
	ErrSubscriptionNotFound = errors.New("certpay: subscription not found")

	// Ingestion errors
	ErrIngestBufferFull = errors.New("certpay: ingest buffer full")

	// Store errors
	ErrStoreNotReady = errors.New("certpay: store not ready")
	ErrStoreClosed   = errors.New("certpay: store is closed")
)

// ValidationError represents a validation failure with details.
// It unwraps to ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("certpay: validation failed for %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error { return ErrInvalidInput }

// ForbiddenError carries the details of a failed authorization check.
// It unwraps to ErrForbidden.
type ForbiddenError struct {
	OrganizationID string
	ActorID        string
	Role           string
	Reason         string
}

func (e ForbiddenError) Error() string {
	return fmt.Sprintf("certpay: forbidden: %s (org=%s actor=%s role=%s)",
		e.Reason, e.OrganizationID, e.ActorID, e.Role)
}

func (e ForbiddenError) Unwrap() error { return ErrForbidden }

// PaymentRequiredError is returned when the entitlement gate blocks a write
// because the organization's subscription is not active.
// It unwraps to ErrPaymentRequired.
type PaymentRequiredError struct {
	OrganizationID string
	Status         string
}

func (e PaymentRequiredError) Error() string {
	return fmt.Sprintf("certpay: payment required: subscription %s for organization %s",
		e.Status, e.OrganizationID)
}

func (e PaymentRequiredError) Unwrap() error { return ErrPaymentRequired }

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrOrganizationNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrMembershipNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrRunNotFound) ||
		errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrSubscriptionNotFound)
}

// HTTPStatus maps an error to the HTTP status code an outer transport layer
// should respond with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrTimesheetsNotFound):
		// An empty period is a business rule violation, not a missing resource.
		return http.StatusUnprocessableEntity
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
