package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                   []OnInit
	onShutdown               []OnShutdown
	onProjectCreated         []OnProjectCreated
	onWorkerAdded            []OnWorkerAdded
	onTimesheetRecorded      []OnTimesheetRecorded
	onTimesheetsFlushed      []OnTimesheetsFlushed
	onPayrollRunGenerated    []OnPayrollRunGenerated
	onReportSubmitted        []OnReportSubmitted
	onReportRejected         []OnReportRejected
	onSubscriptionReconciled []OnSubscriptionReconciled
	onWebhookIgnored         []OnWebhookIgnored
	onEntitlementDenied      []OnEntitlementDenied
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnProjectCreated); ok {
		r.onProjectCreated = append(r.onProjectCreated, v)
	}
	if v, ok := p.(OnWorkerAdded); ok {
		r.onWorkerAdded = append(r.onWorkerAdded, v)
	}
	if v, ok := p.(OnTimesheetRecorded); ok {
		r.onTimesheetRecorded = append(r.onTimesheetRecorded, v)
	}
	if v, ok := p.(OnTimesheetsFlushed); ok {
		r.onTimesheetsFlushed = append(r.onTimesheetsFlushed, v)
	}
	if v, ok := p.(OnPayrollRunGenerated); ok {
		r.onPayrollRunGenerated = append(r.onPayrollRunGenerated, v)
	}
	if v, ok := p.(OnReportSubmitted); ok {
		r.onReportSubmitted = append(r.onReportSubmitted, v)
	}
	if v, ok := p.(OnReportRejected); ok {
		r.onReportRejected = append(r.onReportRejected, v)
	}
	if v, ok := p.(OnSubscriptionReconciled); ok {
		r.onSubscriptionReconciled = append(r.onSubscriptionReconciled, v)
	}
	if v, ok := p.(OnWebhookIgnored); ok {
		r.onWebhookIgnored = append(r.onWebhookIgnored, v)
	}
	if v, ok := p.(OnEntitlementDenied); ok {
		r.onEntitlementDenied = append(r.onEntitlementDenied, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnProjectCreated)(nil)).Elem(), "OnProjectCreated")
	checkInterface(reflect.TypeOf((*OnWorkerAdded)(nil)).Elem(), "OnWorkerAdded")
	checkInterface(reflect.TypeOf((*OnTimesheetRecorded)(nil)).Elem(), "OnTimesheetRecorded")
	checkInterface(reflect.TypeOf((*OnTimesheetsFlushed)(nil)).Elem(), "OnTimesheetsFlushed")
	checkInterface(reflect.TypeOf((*OnPayrollRunGenerated)(nil)).Elem(), "OnPayrollRunGenerated")
	checkInterface(reflect.TypeOf((*OnReportSubmitted)(nil)).Elem(), "OnReportSubmitted")
	checkInterface(reflect.TypeOf((*OnReportRejected)(nil)).Elem(), "OnReportRejected")
	checkInterface(reflect.TypeOf((*OnSubscriptionReconciled)(nil)).Elem(), "OnSubscriptionReconciled")
	checkInterface(reflect.TypeOf((*OnWebhookIgnored)(nil)).Elem(), "OnWebhookIgnored")
	checkInterface(reflect.TypeOf((*OnEntitlementDenied)(nil)).Elem(), "OnEntitlementDenied")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProjectCreated emits a project created event.
func (r *Registry) EmitProjectCreated(ctx context.Context, project interface{}) {
	r.mu.RLock()
	plugins := r.onProjectCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProjectCreated(ctx, project)
		}); err != nil {
			r.logger.Warn("plugin OnProjectCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitWorkerAdded emits a worker added event.
func (r *Registry) EmitWorkerAdded(ctx context.Context, worker interface{}) {
	r.mu.RLock()
	plugins := r.onWorkerAdded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnWorkerAdded(ctx, worker)
		}); err != nil {
			r.logger.Warn("plugin OnWorkerAdded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTimesheetRecorded emits a timesheet recorded event.
func (r *Registry) EmitTimesheetRecorded(ctx context.Context, entry interface{}) {
	r.mu.RLock()
	plugins := r.onTimesheetRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTimesheetRecorded(ctx, entry)
		}); err != nil {
			r.logger.Warn("plugin OnTimesheetRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTimesheetsFlushed emits a timesheet batch flushed event.
func (r *Registry) EmitTimesheetsFlushed(ctx context.Context, stored, failed, duplicate int, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onTimesheetsFlushed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTimesheetsFlushed(ctx, stored, failed, duplicate, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnTimesheetsFlushed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPayrollRunGenerated emits a payroll run generated event.
func (r *Registry) EmitPayrollRunGenerated(ctx context.Context, run, report interface{}) {
	r.mu.RLock()
	plugins := r.onPayrollRunGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPayrollRunGenerated(ctx, run, report)
		}); err != nil {
			r.logger.Warn("plugin OnPayrollRunGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReportSubmitted emits a report submitted event.
func (r *Registry) EmitReportSubmitted(ctx context.Context, report interface{}) {
	r.mu.RLock()
	plugins := r.onReportSubmitted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReportSubmitted(ctx, report)
		}); err != nil {
			r.logger.Warn("plugin OnReportSubmitted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReportRejected emits a report rejected event.
func (r *Registry) EmitReportRejected(ctx context.Context, report, rejection, nextRevision interface{}) {
	r.mu.RLock()
	plugins := r.onReportRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReportRejected(ctx, report, rejection, nextRevision)
		}); err != nil {
			r.logger.Warn("plugin OnReportRejected failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSubscriptionReconciled emits a subscription reconciled event.
func (r *Registry) EmitSubscriptionReconciled(ctx context.Context, organizationID, status string) {
	r.mu.RLock()
	plugins := r.onSubscriptionReconciled
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSubscriptionReconciled(ctx, organizationID, status)
		}); err != nil {
			r.logger.Warn("plugin OnSubscriptionReconciled failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitWebhookIgnored emits a webhook ignored event.
func (r *Registry) EmitWebhookIgnored(ctx context.Context, eventID string) {
	r.mu.RLock()
	plugins := r.onWebhookIgnored
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnWebhookIgnored(ctx, eventID)
		}); err != nil {
			r.logger.Warn("plugin OnWebhookIgnored failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntitlementDenied emits an entitlement denied event.
func (r *Registry) EmitEntitlementDenied(ctx context.Context, organizationID, status string) {
	r.mu.RLock()
	plugins := r.onEntitlementDenied
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntitlementDenied(ctx, organizationID, status)
		}); err != nil {
			r.logger.Warn("plugin OnEntitlementDenied failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the workflow pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
