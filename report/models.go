// Package report defines compliance report revisions and rejections.
//
// Reports for one payroll run form a linear revision chain: rejecting
// revision N creates exactly one draft revision N+1 against the same run.
package report

import (
	"time"

	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/types"
)

// Status is the lifecycle state of a compliance report revision.
//
// StatusAccepted is defined but no engine operation reaches it; acceptance
// is an agency-side outcome with no workflow in this core.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// ReasonCode classifies why a report was rejected.
type ReasonCode string

const (
	ReasonHoursMismatch          ReasonCode = "hours_mismatch"
	ReasonClassificationMismatch ReasonCode = "classification_mismatch"
	ReasonFringeMismatch         ReasonCode = "fringe_mismatch"
	ReasonOther                  ReasonCode = "other"
)

// Valid reports whether c is one of the defined reason codes.
func (c ReasonCode) Valid() bool {
	switch c {
	case ReasonHoursMismatch, ReasonClassificationMismatch, ReasonFringeMismatch, ReasonOther:
		return true
	}
	return false
}

// ComplianceReport is one revision of a certified payroll report.
// Revision numbers are per payroll run, start at 1, and strictly
// increase by 1 along the rejection chain.
type ComplianceReport struct {
	types.Entity
	ID           id.ReportID     `json:"id"`
	PayrollRunID id.PayrollRunID `json:"payroll_run_id"`
	Revision     int             `json:"revision"`
	Status       Status          `json:"status"`
	SubmittedAt  *time.Time      `json:"submitted_at,omitempty"`
}

// Rejection records why a report revision was rejected and by whom.
type Rejection struct {
	types.Entity
	ID         id.RejectionID `json:"id"`
	ReportID   id.ReportID    `json:"compliance_report_id"`
	ReasonCode ReasonCode     `json:"reason_code"`
	Notes      string         `json:"notes"`
	CreatedBy  id.UserID      `json:"created_by"`
}
