// Package observability provides a metrics extension for CertPay that records
// workflow lifecycle event counts via a pluggable MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/xraph/certpay/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                   = (*MetricsExtension)(nil)
	_ plugin.OnInit                   = (*MetricsExtension)(nil)
	_ plugin.OnProjectCreated         = (*MetricsExtension)(nil)
	_ plugin.OnWorkerAdded            = (*MetricsExtension)(nil)
	_ plugin.OnTimesheetRecorded      = (*MetricsExtension)(nil)
	_ plugin.OnTimesheetsFlushed      = (*MetricsExtension)(nil)
	_ plugin.OnPayrollRunGenerated    = (*MetricsExtension)(nil)
	_ plugin.OnReportSubmitted        = (*MetricsExtension)(nil)
	_ plugin.OnReportRejected         = (*MetricsExtension)(nil)
	_ plugin.OnSubscriptionReconciled = (*MetricsExtension)(nil)
	_ plugin.OnWebhookIgnored         = (*MetricsExtension)(nil)
	_ plugin.OnEntitlementDenied      = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a CertPay plugin to automatically track workflow metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Project metrics
	ProjectsCreated    Counter
	WorkersAdded       Counter
	TimesheetsRecorded Counter

	// Ingestion metrics
	IngestStored       Counter
	IngestFailed       Counter
	IngestDuplicate    Counter
	IngestBatchSize    Histogram
	IngestFlushLatency Histogram

	// Payroll metrics
	PayrollRunsGenerated Counter
	ReportsSubmitted     Counter
	ReportsRejected      Counter

	// Billing metrics
	WebhooksReconciled Counter
	WebhooksIgnored    Counter
	EntitlementDenied  Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Project metrics
		ProjectsCreated:    factory.Counter("certpay.project.created"),
		WorkersAdded:       factory.Counter("certpay.worker.added"),
		TimesheetsRecorded: factory.Counter("certpay.timesheet.recorded"),

		// Ingestion metrics
		IngestStored:       factory.Counter("certpay.ingest.stored"),
		IngestFailed:       factory.Counter("certpay.ingest.failed"),
		IngestDuplicate:    factory.Counter("certpay.ingest.duplicate"),
		IngestBatchSize:    factory.Histogram("certpay.ingest.batch.size"),
		IngestFlushLatency: factory.Histogram("certpay.ingest.flush.latency_ms"),

		// Payroll metrics
		PayrollRunsGenerated: factory.Counter("certpay.payroll_run.generated"),
		ReportsSubmitted:     factory.Counter("certpay.report.submitted"),
		ReportsRejected:      factory.Counter("certpay.report.rejected"),

		// Billing metrics
		WebhooksReconciled: factory.Counter("certpay.webhook.reconciled"),
		WebhooksIgnored:    factory.Counter("certpay.webhook.ignored"),
		EntitlementDenied:  factory.Counter("certpay.entitlement.denied"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Project lifecycle hooks
// ──────────────────────────────────────────────────

// OnProjectCreated implements plugin.OnProjectCreated.
func (m *MetricsExtension) OnProjectCreated(_ context.Context, _ interface{}) error {
	m.ProjectsCreated.Inc()
	return nil
}

// OnWorkerAdded implements plugin.OnWorkerAdded.
func (m *MetricsExtension) OnWorkerAdded(_ context.Context, _ interface{}) error {
	m.WorkersAdded.Inc()
	return nil
}

// OnTimesheetRecorded implements plugin.OnTimesheetRecorded.
func (m *MetricsExtension) OnTimesheetRecorded(_ context.Context, _ interface{}) error {
	m.TimesheetsRecorded.Inc()
	return nil
}

// OnTimesheetsFlushed implements plugin.OnTimesheetsFlushed.
func (m *MetricsExtension) OnTimesheetsFlushed(_ context.Context, stored, failed, duplicate int, elapsed time.Duration) error {
	m.IngestStored.Add(float64(stored))
	m.IngestFailed.Add(float64(failed))
	m.IngestDuplicate.Add(float64(duplicate))
	m.IngestBatchSize.Observe(float64(stored + failed + duplicate))
	m.IngestFlushLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// ──────────────────────────────────────────────────
// Payroll lifecycle hooks
// ──────────────────────────────────────────────────

// OnPayrollRunGenerated implements plugin.OnPayrollRunGenerated.
func (m *MetricsExtension) OnPayrollRunGenerated(_ context.Context, _, _ interface{}) error {
	m.PayrollRunsGenerated.Inc()
	return nil
}

// OnReportSubmitted implements plugin.OnReportSubmitted.
func (m *MetricsExtension) OnReportSubmitted(_ context.Context, _ interface{}) error {
	m.ReportsSubmitted.Inc()
	return nil
}

// OnReportRejected implements plugin.OnReportRejected.
func (m *MetricsExtension) OnReportRejected(_ context.Context, _, _, _ interface{}) error {
	m.ReportsRejected.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Billing lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionReconciled implements plugin.OnSubscriptionReconciled.
func (m *MetricsExtension) OnSubscriptionReconciled(_ context.Context, _, _ string) error {
	m.WebhooksReconciled.Inc()
	return nil
}

// OnWebhookIgnored implements plugin.OnWebhookIgnored.
func (m *MetricsExtension) OnWebhookIgnored(_ context.Context, _ string) error {
	m.WebhooksIgnored.Inc()
	return nil
}

// OnEntitlementDenied implements plugin.OnEntitlementDenied.
func (m *MetricsExtension) OnEntitlementDenied(_ context.Context, _, _ string) error {
	m.EntitlementDenied.Inc()
	return nil
}
