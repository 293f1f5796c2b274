package store

import (
	"context"
	"time"

	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/org"
	"github.com/xraph/certpay/payroll"
	"github.com/xraph/certpay/project"
	"github.com/xraph/certpay/report"
	"github.com/xraph/certpay/subscription"
)

// Store is the unified storage interface for all CertPay entities.
// Instead of embedding sub-interfaces, all methods are declared explicitly
// to avoid naming conflicts.
type Store interface {
	// Organization methods
	CreateOrganization(ctx context.Context, o *org.Organization) error
	GetOrganization(ctx context.Context, orgID id.OrganizationID) (*org.Organization, error)
	CreateUser(ctx context.Context, u *org.User) error
	GetUser(ctx context.Context, userID id.UserID) (*org.User, error)
	CreateMembership(ctx context.Context, m *org.Membership) error
	GetMembership(ctx context.Context, orgID id.OrganizationID, userID id.UserID) (*org.Membership, error)

	// Project methods
	CreateProject(ctx context.Context, p *project.Project) error
	GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error)
	ListProjects(ctx context.Context, orgID id.OrganizationID) ([]*project.Project, error)
	CreateWorker(ctx context.Context, w *project.Worker) error
	GetWorker(ctx context.Context, workerID id.WorkerID) (*project.Worker, error)
	ListWorkers(ctx context.Context, projectID id.ProjectID) ([]*project.Worker, error)
	CreateTimesheetEntry(ctx context.Context, e *project.TimesheetEntry) error
	ListTimesheetEntries(ctx context.Context, projectID id.ProjectID, periodStart, periodEnd time.Time) ([]*project.TimesheetEntry, error)

	// Payroll run methods
	CreateRun(ctx context.Context, r *payroll.Run) error
	GetRun(ctx context.Context, runID id.PayrollRunID) (*payroll.Run, error)
	ListRuns(ctx context.Context, projectID id.ProjectID) ([]*payroll.Run, error)
	UpdateRun(ctx context.Context, r *payroll.Run) error

	// Report methods
	CreateReport(ctx context.Context, rep *report.ComplianceReport) error
	GetReport(ctx context.Context, reportID id.ReportID) (*report.ComplianceReport, error)
	ListReports(ctx context.Context, runID id.PayrollRunID) ([]*report.ComplianceReport, error)
	UpdateReport(ctx context.Context, rep *report.ComplianceReport) error
	CreateRejection(ctx context.Context, rej *report.Rejection) error
	ListRejections(ctx context.Context, reportID id.ReportID) ([]*report.Rejection, error)

	// Subscription methods
	CreateSubscription(ctx context.Context, s *subscription.Subscription) error
	GetSubscription(ctx context.Context, orgID id.OrganizationID) (*subscription.Subscription, error)
	UpdateSubscription(ctx context.Context, s *subscription.Subscription) error

	// MarkWebhookEvent records a webhook event ID and reports whether it was
	// seen before. The check and the record are a single atomic step so that
	// concurrent duplicate deliveries cannot both observe "unseen".
	MarkWebhookEvent(ctx context.Context, eventID string) (seen bool, err error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
