// Package project defines public-works projects and the workers and
// timesheet entries they own by reference.
package project

import (
	"time"

	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/types"
)

// Project is a public-works project belonging to exactly one organization.
// OrganizationID is immutable after creation.
type Project struct {
	types.Entity
	ID             id.ProjectID      `json:"id"`
	OrganizationID id.OrganizationID `json:"organization_id"`
	Name           string            `json:"name"`
	ContractNumber string            `json:"contract_number,omitempty"`
}

// Worker is a classified laborer on a project.
type Worker struct {
	types.Entity
	ID             id.WorkerID  `json:"id"`
	ProjectID      id.ProjectID `json:"project_id"`
	FullName       string       `json:"full_name"`
	Classification string       `json:"classification"`
	FringeRate     float64      `json:"fringe_rate"`
}

// TimesheetEntry records hours worked by a worker on a project for one
// calendar day. Entries are immutable once created; payroll run totals are
// a point-in-time materialization over them.
type TimesheetEntry struct {
	types.Entity
	ID        id.TimesheetEntryID `json:"id"`
	ProjectID id.ProjectID        `json:"project_id"`
	WorkerID  id.WorkerID         `json:"worker_id"`
	WorkDate  time.Time           `json:"work_date"`
	Hours     float64             `json:"hours"`
	WageRate  float64             `json:"wage_rate"`
	Source    string              `json:"source,omitempty"` // set for bulk-ingested entries
}
