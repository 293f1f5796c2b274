// Package payroll defines payroll runs: period-scoped aggregations of
// timesheet entries with worker-level and run-level totals.
package payroll

import (
	"time"

	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/types"
)

// DateLayout is the calendar date format accepted by period and work-date
// inputs. Dates are stored as UTC midnight; period bounds are inclusive.
const DateLayout = "2006-01-02"

// Status is the lifecycle state of a payroll run.
//
// StatusRejected is transient: a rejection sets it and then immediately
// overwrites it with StatusCorrected when the next report revision is
// created, so the terminal visible status after a rejection is always
// "corrected".
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusRejected  Status = "rejected"
	StatusCorrected Status = "corrected"
)

// Totals is the run-level aggregate snapshot. Derived at generation time
// and never recomputed afterwards.
type Totals struct {
	EntryCount  int     `json:"entry_count"`
	WorkerCount int     `json:"worker_count"`
	GrossWages  float64 `json:"gross_wages"`
}

// WorkerSummary is the per-worker aggregate within a run. Summaries are
// sorted by worker ID so repeated generation over identical data yields
// identical output.
type WorkerSummary struct {
	WorkerID   id.WorkerID `json:"worker_id"`
	TotalHours float64     `json:"total_hours"`
	TotalWages float64     `json:"total_wages"`
}

// Run is a certified payroll run for one project and period.
type Run struct {
	types.Entity
	ID              id.PayrollRunID `json:"id"`
	ProjectID       id.ProjectID    `json:"project_id"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	Status          Status          `json:"status"`
	CreatedBy       id.UserID       `json:"created_by"`
	Totals          Totals          `json:"totals"`
	WorkerSummaries []WorkerSummary `json:"worker_summaries"`
}

// IngestRecord is a raw timesheet record from an external payroll source,
// submitted through the engine's buffered ingestion pipeline.
type IngestRecord struct {
	Source    string       `json:"source"`
	ProjectID id.ProjectID `json:"project_id"`
	WorkerID  id.WorkerID  `json:"worker_id"`
	WorkDate  string       `json:"work_date"`
	Hours     float64      `json:"hours"`
	WageRate  float64      `json:"wage_rate"`
}
