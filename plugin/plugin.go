// Package plugin provides an extensible plugin system for CertPay.
// Plugins can hook into workflow lifecycle events to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Project lifecycle hooks
// ──────────────────────────────────────────────────

// OnProjectCreated is called when a new project is created.
type OnProjectCreated interface {
	Plugin
	OnProjectCreated(ctx context.Context, project interface{}) error
}

// OnWorkerAdded is called when a worker is added to a project.
type OnWorkerAdded interface {
	Plugin
	OnWorkerAdded(ctx context.Context, worker interface{}) error
}

// OnTimesheetRecorded is called when a timesheet entry is recorded.
type OnTimesheetRecorded interface {
	Plugin
	OnTimesheetRecorded(ctx context.Context, entry interface{}) error
}

// OnTimesheetsFlushed is called after the ingestion worker flushes a batch.
type OnTimesheetsFlushed interface {
	Plugin
	OnTimesheetsFlushed(ctx context.Context, stored, failed, duplicate int, elapsed time.Duration) error
}

// ──────────────────────────────────────────────────
// Payroll run and report lifecycle hooks
// ──────────────────────────────────────────────────

// OnPayrollRunGenerated is called when a payroll run and its first report
// revision are generated.
type OnPayrollRunGenerated interface {
	Plugin
	OnPayrollRunGenerated(ctx context.Context, run, report interface{}) error
}

// OnReportSubmitted is called when a compliance report is submitted.
type OnReportSubmitted interface {
	Plugin
	OnReportSubmitted(ctx context.Context, report interface{}) error
}

// OnReportRejected is called when a compliance report is rejected and the
// next revision has been created.
type OnReportRejected interface {
	Plugin
	OnReportRejected(ctx context.Context, report, rejection, nextRevision interface{}) error
}

// ──────────────────────────────────────────────────
// Billing hooks
// ──────────────────────────────────────────────────

// OnSubscriptionReconciled is called when a webhook event changes a
// subscription's status.
type OnSubscriptionReconciled interface {
	Plugin
	OnSubscriptionReconciled(ctx context.Context, organizationID, status string) error
}

// OnWebhookIgnored is called when a webhook event is ignored as a
// duplicate delivery.
type OnWebhookIgnored interface {
	Plugin
	OnWebhookIgnored(ctx context.Context, eventID string) error
}

// OnEntitlementDenied is called when the entitlement gate blocks a write.
type OnEntitlementDenied interface {
	Plugin
	OnEntitlementDenied(ctx context.Context, organizationID, status string) error
}
