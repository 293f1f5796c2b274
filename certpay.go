package certpay

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/xraph/certpay/audit"
	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/idempotency"
	"github.com/xraph/certpay/org"
	"github.com/xraph/certpay/payroll"
	"github.com/xraph/certpay/plugin"
	"github.com/xraph/certpay/project"
	"github.com/xraph/certpay/report"
	"github.com/xraph/certpay/store"
	"github.com/xraph/certpay/subscription"
	"github.com/xraph/certpay/types"
	"github.com/xraph/certpay/webhook"
)

// Actor identifies the authenticated caller of an operation. The boundary
// layer resolves the session and passes the actor in; the engine trusts it.
type Actor struct {
	UserID id.UserID
	Role   org.Role
}

// Engine is the certified payroll workflow engine.
type Engine struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	auditor audit.Recorder
	keys    *idempotency.Ledger

	// Background workers
	ingestBuffer chan *payroll.IngestRecord
	stopChan     chan struct{}
	wg           sync.WaitGroup

	// Configuration
	ingestBatchSize     int
	ingestFlushInterval time.Duration
	sweepInterval       time.Duration

	// Per-run locks serialize the report revision chain.
	runMu    sync.Mutex
	runLocks map[string]*sync.Mutex
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:               s,
		plugins:             plugin.NewRegistry(),
		logger:              slog.Default(),
		keys:                idempotency.New(),
		ingestBuffer:        make(chan *payroll.IngestRecord, 10000),
		stopChan:            make(chan struct{}),
		ingestBatchSize:     100,
		ingestFlushInterval: 5 * time.Second,
		sweepInterval:       10 * time.Minute,
		runLocks:            make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithAuditRecorder sets the audit sink. Without one, audit events are
// dropped.
func WithAuditRecorder(r audit.Recorder) Option {
	return func(e *Engine) {
		e.auditor = r
	}
}

// WithIdempotencyLedger sets the dedup ledger used by the ingestion worker.
func WithIdempotencyLedger(l *idempotency.Ledger) Option {
	return func(e *Engine) {
		e.keys = l
	}
}

// WithIngestConfig configures ingestion parameters.
func WithIngestConfig(batchSize int, flushInterval time.Duration) Option {
	return func(e *Engine) {
		e.ingestBatchSize = batchSize
		e.ingestFlushInterval = flushInterval
	}
}

// Start begins background workers.
func (e *Engine) Start(ctx context.Context) error {
	// Migrate database
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	// Initialize plugins
	e.plugins.EmitInit(ctx, e)

	// Start ingestion and sweep workers
	e.wg.Add(2)
	go e.ingestFlushWorker(ctx)
	go e.sweepWorker()

	e.logger.Info("certpay started",
		"batch_size", e.ingestBatchSize,
		"flush_interval", e.ingestFlushInterval,
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	close(e.stopChan)
	e.wg.Wait()

	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// ──────────────────────────────────────────────────
// Project Management
// ──────────────────────────────────────────────────

// CreateProjectInput is the input for CreateProject.
type CreateProjectInput struct {
	OrganizationID id.OrganizationID
	Name           string
	ContractNumber string
}

// CreateProject creates a public-works project for an organization.
func (e *Engine) CreateProject(ctx context.Context, in CreateProjectInput, actor Actor) (*project.Project, error) {
	if in.OrganizationID.IsNil() || in.Name == "" {
		return nil, ValidationError{Field: "organization_id, name", Message: "organizationId and name are required"}
	}
	if err := e.assertWriteAllowed(ctx, in.OrganizationID, actor); err != nil {
		return nil, err
	}

	p := &project.Project{
		Entity:         types.NewEntity(),
		ID:             id.NewProjectID(),
		OrganizationID: in.OrganizationID,
		Name:           in.Name,
		ContractNumber: in.ContractNumber,
	}
	if err := e.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	e.recordAudit(ctx, actor.UserID, audit.ActionProjectCreated, audit.ResourceProject, p.ID.String(), map[string]any{
		"organization_id": in.OrganizationID.String(),
	})
	e.plugins.EmitProjectCreated(ctx, p)
	return p, nil
}

// AddWorkerInput is the input for AddWorker.
type AddWorkerInput struct {
	FullName       string
	Classification string
	FringeRate     float64
}

// AddWorker registers a worker on a project roster.
func (e *Engine) AddWorker(ctx context.Context, projectID id.ProjectID, in AddWorkerInput, actor Actor) (*project.Worker, error) {
	p, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := e.assertWriteAllowed(ctx, p.OrganizationID, actor); err != nil {
		return nil, err
	}
	if in.FullName == "" || in.Classification == "" {
		return nil, ValidationError{Field: "full_name, classification", Message: "fullName and classification are required"}
	}

	w := &project.Worker{
		Entity:         types.NewEntity(),
		ID:             id.NewWorkerID(),
		ProjectID:      projectID,
		FullName:       in.FullName,
		Classification: in.Classification,
		FringeRate:     in.FringeRate,
	}
	if err := e.store.CreateWorker(ctx, w); err != nil {
		return nil, err
	}

	e.recordAudit(ctx, actor.UserID, audit.ActionWorkerAdded, audit.ResourceWorker, w.ID.String(), map[string]any{
		"project_id": projectID.String(),
	})
	e.plugins.EmitWorkerAdded(ctx, w)
	return w, nil
}

// AddTimesheetEntryInput is the input for AddTimesheetEntry. WorkDate is a
// calendar date in "2006-01-02" form.
type AddTimesheetEntryInput struct {
	WorkerID id.WorkerID
	WorkDate string
	Hours    float64
	WageRate float64
}

// AddTimesheetEntry records hours worked by a worker on a project date.
func (e *Engine) AddTimesheetEntry(ctx context.Context, projectID id.ProjectID, in AddTimesheetEntryInput, actor Actor) (*project.TimesheetEntry, error) {
	p, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := e.assertWriteAllowed(ctx, p.OrganizationID, actor); err != nil {
		return nil, err
	}
	if in.WorkerID.IsNil() || in.WorkDate == "" {
		return nil, ValidationError{Field: "worker_id, work_date", Message: "workerId and workDate are required"}
	}
	if _, err := e.store.GetWorker(ctx, in.WorkerID); err != nil {
		return nil, err
	}
	workDate, err := parseDate("work_date", in.WorkDate)
	if err != nil {
		return nil, err
	}
	if in.Hours <= 0 || in.WageRate <= 0 {
		return nil, ValidationError{Field: "hours, wage_rate", Message: "hours and wageRate must be positive"}
	}

	entry := &project.TimesheetEntry{
		Entity:    types.NewEntity(),
		ID:        id.NewTimesheetEntryID(),
		ProjectID: projectID,
		WorkerID:  in.WorkerID,
		WorkDate:  workDate,
		Hours:     in.Hours,
		WageRate:  in.WageRate,
	}
	if err := e.store.CreateTimesheetEntry(ctx, entry); err != nil {
		return nil, err
	}

	e.recordAudit(ctx, actor.UserID, audit.ActionTimesheetRecorded, audit.ResourceTimesheetEntry, entry.ID.String(), map[string]any{
		"project_id": projectID.String(),
		"worker_id":  in.WorkerID.String(),
	})
	e.plugins.EmitTimesheetRecorded(ctx, entry)
	return entry, nil
}

// ──────────────────────────────────────────────────
// Payroll Runs
// ──────────────────────────────────────────────────

// GeneratePayrollRunInput is the input for GeneratePayrollRun. Period bounds
// are calendar dates in "2006-01-02" form, inclusive on both ends.
type GeneratePayrollRunInput struct {
	ProjectID   id.ProjectID
	PeriodStart string
	PeriodEnd   string
}

// GeneratePayrollRun aggregates a project's timesheet entries over a period
// into a payroll run, and creates the first compliance report revision.
func (e *Engine) GeneratePayrollRun(ctx context.Context, in GeneratePayrollRunInput, actor Actor) (*payroll.Run, *report.ComplianceReport, error) {
	p, err := e.store.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if err := e.assertWriteAllowed(ctx, p.OrganizationID, actor); err != nil {
		return nil, nil, err
	}
	if in.PeriodStart == "" || in.PeriodEnd == "" {
		return nil, nil, ValidationError{Field: "period_start, period_end", Message: "periodStart and periodEnd are required"}
	}
	start, err := parseDate("period_start", in.PeriodStart)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate("period_end", in.PeriodEnd)
	if err != nil {
		return nil, nil, err
	}
	if start.After(end) {
		return nil, nil, ValidationError{Field: "period_start", Message: "periodStart must be before or equal to periodEnd"}
	}

	entries, err := e.store.ListTimesheetEntries(ctx, p.ID, start, end)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, ErrTimesheetsNotFound
	}

	type workerTotals struct {
		hours float64
		wages float64
	}
	totalsByWorker := make(map[id.WorkerID]*workerTotals)
	var grossWages float64
	for _, entry := range entries {
		wt := totalsByWorker[entry.WorkerID]
		if wt == nil {
			wt = &workerTotals{}
			totalsByWorker[entry.WorkerID] = wt
		}
		wt.hours += entry.Hours
		wt.wages += entry.Hours * entry.WageRate
		grossWages += entry.Hours * entry.WageRate
	}

	// Sorted by worker ID so repeated generation yields identical output.
	workerIDs := make([]id.WorkerID, 0, len(totalsByWorker))
	for workerID := range totalsByWorker {
		workerIDs = append(workerIDs, workerID)
	}
	sort.Slice(workerIDs, func(i, j int) bool {
		return workerIDs[i].String() < workerIDs[j].String()
	})

	summaries := make([]payroll.WorkerSummary, len(workerIDs))
	for i, workerID := range workerIDs {
		wt := totalsByWorker[workerID]
		summaries[i] = payroll.WorkerSummary{
			WorkerID:   workerID,
			TotalHours: types.Round2(wt.hours),
			TotalWages: types.Round2(wt.wages),
		}
	}

	run := &payroll.Run{
		Entity:      types.NewEntity(),
		ID:          id.NewPayrollRunID(),
		ProjectID:   p.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		Status:      payroll.StatusDraft,
		CreatedBy:   actor.UserID,
		Totals: payroll.Totals{
			EntryCount:  len(entries),
			WorkerCount: len(totalsByWorker),
			GrossWages:  types.Round2(grossWages),
		},
		WorkerSummaries: summaries,
	}
	if err := e.store.CreateRun(ctx, run); err != nil {
		return nil, nil, err
	}

	rep := &report.ComplianceReport{
		Entity:       types.NewEntity(),
		ID:           id.NewReportID(),
		PayrollRunID: run.ID,
		Revision:     1,
		Status:       report.StatusDraft,
	}
	if err := e.store.CreateReport(ctx, rep); err != nil {
		return nil, nil, err
	}

	e.recordAudit(ctx, actor.UserID, audit.ActionPayrollRunGenerated, audit.ResourcePayrollRun, run.ID.String(), map[string]any{
		"project_id": p.ID.String(),
		"report_id":  rep.ID.String(),
	})
	e.plugins.EmitPayrollRunGenerated(ctx, run, rep)
	return run, rep, nil
}

// ListPayrollRuns returns all payroll runs for a project, oldest first.
func (e *Engine) ListPayrollRuns(ctx context.Context, projectID id.ProjectID, actor Actor) ([]*payroll.Run, error) {
	p, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := e.assertReadAllowed(ctx, p.OrganizationID, actor); err != nil {
		return nil, err
	}

	runs, err := e.store.ListRuns(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID.String() < runs[j].ID.String()
		}
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}

// ──────────────────────────────────────────────────
// Compliance Reports
// ──────────────────────────────────────────────────

// GetReport retrieves a report revision, authorizing through its run's
// project.
func (e *Engine) GetReport(ctx context.Context, reportID id.ReportID, actor Actor) (*report.ComplianceReport, error) {
	rep, _, p, err := e.resolveReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := e.assertReadAllowed(ctx, p.OrganizationID, actor); err != nil {
		return nil, err
	}
	return rep, nil
}

// SubmitReport marks a report revision submitted and moves its run to
// submitted. Resubmitting an already submitted revision refreshes the
// submission timestamp.
func (e *Engine) SubmitReport(ctx context.Context, reportID id.ReportID, actor Actor) (*report.ComplianceReport, error) {
	rep, run, p, err := e.resolveReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := e.assertWriteAllowed(ctx, p.OrganizationID, actor); err != nil {
		return nil, err
	}

	lock := e.runLock(run.ID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	rep.Status = report.StatusSubmitted
	rep.SubmittedAt = &now
	rep.Touch()
	if err := e.store.UpdateReport(ctx, rep); err != nil {
		return nil, err
	}

	run.Status = payroll.StatusSubmitted
	run.Touch()
	if err := e.store.UpdateRun(ctx, run); err != nil {
		return nil, err
	}

	e.recordAudit(ctx, actor.UserID, audit.ActionReportSubmitted, audit.ResourceReport, rep.ID.String(), map[string]any{
		"payroll_run_id": run.ID.String(),
	})
	e.plugins.EmitReportSubmitted(ctx, rep)
	return rep, nil
}

// RejectReportInput is the input for RejectReport. ReasonCode defaults to
// report.ReasonOther when empty.
type RejectReportInput struct {
	ReasonCode report.ReasonCode
	Notes      string
}

// RejectReport records a rejection against a report revision and creates
// the next draft revision on the same run. The run passes through rejected
// and lands on corrected.
func (e *Engine) RejectReport(ctx context.Context, reportID id.ReportID, in RejectReportInput, actor Actor) (*report.Rejection, *report.ComplianceReport, error) {
	rep, run, p, err := e.resolveReport(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if err := e.assertWriteAllowed(ctx, p.OrganizationID, actor); err != nil {
		return nil, nil, err
	}
	if in.Notes == "" {
		return nil, nil, ValidationError{Field: "notes", Message: "notes are required"}
	}
	reasonCode := in.ReasonCode
	if reasonCode == "" {
		reasonCode = report.ReasonOther
	}
	if !reasonCode.Valid() {
		return nil, nil, ValidationError{Field: "reason_code", Message: "invalid reasonCode"}
	}

	lock := e.runLock(run.ID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: a concurrent rejection of the same revision
	// may have already advanced the chain, and a stale read here would
	// mint a colliding revision number.
	rep, err = e.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if rep.Status == report.StatusRejected {
		return nil, nil, ValidationError{Field: "report_id", Message: "report revision is already rejected"}
	}
	run, err = e.store.GetRun(ctx, rep.PayrollRunID)
	if err != nil {
		return nil, nil, err
	}

	rep.Status = report.StatusRejected
	rep.Touch()
	if err := e.store.UpdateReport(ctx, rep); err != nil {
		return nil, nil, err
	}

	rejection := &report.Rejection{
		Entity:     types.NewEntity(),
		ID:         id.NewRejectionID(),
		ReportID:   rep.ID,
		ReasonCode: reasonCode,
		Notes:      in.Notes,
		CreatedBy:  actor.UserID,
	}
	if err := e.store.CreateRejection(ctx, rejection); err != nil {
		return nil, nil, err
	}

	nextRevision := &report.ComplianceReport{
		Entity:       types.NewEntity(),
		ID:           id.NewReportID(),
		PayrollRunID: run.ID,
		Revision:     rep.Revision + 1,
		Status:       report.StatusDraft,
	}
	if err := e.store.CreateReport(ctx, nextRevision); err != nil {
		return nil, nil, err
	}

	// Rejected is transient; once the next revision exists the run settles
	// on corrected.
	run.Status = payroll.StatusCorrected
	run.Touch()
	if err := e.store.UpdateRun(ctx, run); err != nil {
		return nil, nil, err
	}

	e.recordAudit(ctx, actor.UserID, audit.ActionReportRejected, audit.ResourceReport, rep.ID.String(), map[string]any{
		"next_revision_id": nextRevision.ID.String(),
		"reason_code":      string(reasonCode),
	})
	e.plugins.EmitReportRejected(ctx, rep, rejection, nextRevision)
	return rejection, nextRevision, nil
}

// ──────────────────────────────────────────────────
// Billing
// ──────────────────────────────────────────────────

// SetSubscriptionStatus sets an organization's subscription status directly.
// Intended for provisioning and support tooling; webhook reconciliation is
// the normal path.
func (e *Engine) SetSubscriptionStatus(ctx context.Context, orgID id.OrganizationID, status subscription.Status, actor Actor) (*subscription.Subscription, error) {
	if !status.Valid() {
		return nil, ValidationError{Field: "status", Message: "invalid subscription status"}
	}

	sub, err := e.store.GetSubscription(ctx, orgID)
	if err != nil {
		return nil, err
	}
	sub.Status = status
	sub.Touch()
	if err := e.store.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	e.recordAudit(ctx, actor.UserID, audit.ActionSubscriptionStatusSet, audit.ResourceSubscription, sub.ID.String(), map[string]any{
		"status": string(status),
	})
	return sub, nil
}

// ProcessWebhook reconciles one billing-provider webhook event against the
// organization's subscription. Duplicate deliveries are ignored without
// error; the dedup record is written before any mutation so a replay can
// never apply twice.
func (e *Engine) ProcessWebhook(ctx context.Context, event *webhook.Event) (*webhook.Result, error) {
	if event == nil || event.ID == "" || event.Type == "" {
		return nil, ValidationError{Field: "event", Message: "invalid webhook event"}
	}

	seen, err := e.store.MarkWebhookEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if seen {
		e.logger.Debug("webhook ignored", "event_id", event.ID, "reason", "duplicate_event")
		e.plugins.EmitWebhookIgnored(ctx, event.ID)
		return &webhook.Result{Ignored: true, Reason: "duplicate_event"}, nil
	}

	result := &webhook.Result{OrganizationID: event.OrganizationID()}
	status, ok := subscription.StatusForEvent(event.Type)
	if !ok || result.OrganizationID == "" {
		return result, nil
	}
	result.Status = status

	orgID, err := id.ParseOrganizationID(result.OrganizationID)
	if err != nil {
		// Unknown linkage is not an error; the event is consumed either way.
		e.logger.Warn("webhook organization id unparseable",
			"event_id", event.ID,
			"organization_id", result.OrganizationID,
		)
		return result, nil
	}

	sub, err := e.store.GetSubscription(ctx, orgID)
	if err != nil {
		if IsNotFound(err) {
			return result, nil
		}
		return nil, err
	}
	sub.Status = status
	sub.Touch()
	if err := e.store.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	e.logger.Info("subscription reconciled",
		"event_id", event.ID,
		"event_type", event.Type,
		"organization_id", result.OrganizationID,
		"status", status,
	)
	e.plugins.EmitSubscriptionReconciled(ctx, result.OrganizationID, string(status))
	return result, nil
}

// ──────────────────────────────────────────────────
// Guards
// ──────────────────────────────────────────────────

// assertWriteAllowed runs the full write guard chain: membership, role,
// then entitlement. Order is fixed so callers get the most specific
// failure first. The role is taken from the actor, which the boundary
// layer resolved at session time.
func (e *Engine) assertWriteAllowed(ctx context.Context, orgID id.OrganizationID, actor Actor) error {
	if err := e.assertMembership(ctx, orgID, actor); err != nil {
		return err
	}
	if !actor.Role.In(org.WriteRoles) {
		return ForbiddenError{
			OrganizationID: orgID.String(),
			ActorID:        actor.UserID.String(),
			Role:           string(actor.Role),
			Reason:         "role not permitted to write",
		}
	}
	return e.assertEntitled(ctx, orgID)
}

// assertReadAllowed requires membership only; any role may read.
func (e *Engine) assertReadAllowed(ctx context.Context, orgID id.OrganizationID, actor Actor) error {
	return e.assertMembership(ctx, orgID, actor)
}

func (e *Engine) assertMembership(ctx context.Context, orgID id.OrganizationID, actor Actor) error {
	if _, err := e.store.GetMembership(ctx, orgID, actor.UserID); err != nil {
		if IsNotFound(err) {
			return ForbiddenError{
				OrganizationID: orgID.String(),
				ActorID:        actor.UserID.String(),
				Reason:         "user is not in organization",
			}
		}
		return err
	}
	return nil
}

func (e *Engine) assertEntitled(ctx context.Context, orgID id.OrganizationID) error {
	sub, err := e.store.GetSubscription(ctx, orgID)
	if err != nil {
		return err
	}
	if !sub.Status.Entitled() {
		e.plugins.EmitEntitlementDenied(ctx, orgID.String(), string(sub.Status))
		return PaymentRequiredError{
			OrganizationID: orgID.String(),
			Status:         string(sub.Status),
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// resolveReport walks a report back to its run and project.
func (e *Engine) resolveReport(ctx context.Context, reportID id.ReportID) (*report.ComplianceReport, *payroll.Run, *project.Project, error) {
	rep, err := e.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, nil, nil, err
	}
	run, err := e.store.GetRun(ctx, rep.PayrollRunID)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := e.store.GetProject(ctx, run.ProjectID)
	if err != nil {
		return nil, nil, nil, err
	}
	return rep, run, p, nil
}

// runLock returns the mutex serializing state changes for one run.
func (e *Engine) runLock(runID id.PayrollRunID) *sync.Mutex {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	key := runID.String()
	lock, ok := e.runLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		e.runLocks[key] = lock
	}
	return lock
}

// recordAudit writes an audit event through the configured recorder.
// Recorder failures are logged, never surfaced to the caller.
func (e *Engine) recordAudit(ctx context.Context, actorID id.UserID, action, resourceType, resourceID string, metadata map[string]any) {
	if e.auditor == nil {
		return
	}
	event, err := audit.NewEvent(actorID, action, resourceType, resourceID, metadata)
	if err != nil {
		e.logger.Warn("audit event invalid", "action", action, "error", err)
		return
	}
	if err := e.auditor.Record(ctx, event); err != nil {
		e.logger.Warn("audit record failed", "action", action, "error", err)
	}
}

// parseDate parses a calendar date input as UTC midnight.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(payroll.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ValidationError{Field: field, Message: "invalid date, expected " + payroll.DateLayout}
	}
	return t, nil
}
