package audit

// Action constants for audit events. Each action carries a closed metadata
// key set; the engine never writes keys outside the documented set.
const (
	// ActionProjectCreated metadata: organization_id.
	ActionProjectCreated = "project.created"

	// ActionWorkerAdded metadata: project_id.
	ActionWorkerAdded = "worker.added"

	// ActionTimesheetRecorded metadata: project_id, worker_id.
	ActionTimesheetRecorded = "timesheet.recorded"

	// ActionPayrollRunGenerated metadata: project_id, report_id.
	ActionPayrollRunGenerated = "payroll_run.generated"

	// ActionReportSubmitted metadata: payroll_run_id.
	ActionReportSubmitted = "report.submitted"

	// ActionReportRejected metadata: next_revision_id, reason_code.
	ActionReportRejected = "report.rejected"

	// ActionSubscriptionStatusSet metadata: status.
	ActionSubscriptionStatusSet = "subscription.status_set"
)

// Resource constants for audit events.
const (
	ResourceProject        = "project"
	ResourceWorker         = "worker"
	ResourceTimesheetEntry = "timesheet_entry"
	ResourcePayrollRun     = "payroll_run"
	ResourceReport         = "report"
	ResourceSubscription   = "subscription"
)
