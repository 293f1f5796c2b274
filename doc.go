// Package certpay provides a certified payroll workflow engine for Go
// applications serving public-works contractors.
//
// CertPay is designed as a library, not a service. Import it directly into
// your Go application and put your own transport in front of it. It provides:
//
//   - Tenant-scoped authorization: membership, then role, then entitlement
//   - Payroll run generation aggregating timesheet entries over a period
//   - Compliance report revision chains driven by agency rejections
//   - Idempotent billing webhook reconciliation
//   - Buffered timesheet ingestion from external payroll sources
//   - Append-only audit trail for every actor-driven mutation
//
// # Quick Start
//
// Create an engine instance with your preferred store:
//
//	import (
//	    "github.com/xraph/certpay"
//	    "github.com/xraph/certpay/store/memory"
//	)
//
//	// Initialize store
//	store := memory.New()
//
//	// Create engine
//	engine := certpay.New(store)
//
//	// Start the engine (begins background workers)
//	if err := engine.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Stop()
//
// # Core Concepts
//
// Projects belong to an organization and carry a roster of workers:
//
//	p, err := engine.CreateProject(ctx, certpay.CreateProjectInput{
//	    OrganizationID: orgID,
//	    Name:           "Bridge Retrofit",
//	}, actor)
//
// Payroll runs aggregate a project's timesheet entries over an inclusive
// date period and snapshot the totals:
//
//	run, report, err := engine.GeneratePayrollRun(ctx, certpay.GeneratePayrollRunInput{
//	    ProjectID:   p.ID,
//	    PeriodStart: "2025-06-02",
//	    PeriodEnd:   "2025-06-08",
//	}, actor)
//
// Rejecting a compliance report creates the next draft revision on the same
// run, so revisions form a linear chain.
//
// # Authorization
//
// Every actor-facing operation resolves the project's organization and runs
// the guard chain in a fixed order: the actor must be a member, writes
// additionally require the owner or admin role, and writes are blocked with
// a payment-required error unless the organization's subscription is active.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	project_01h2xcejqtf2nbrexx3vqjhp41  // Project ID
//	run_01h2xcejqtf2nbrexx3vqjhp41      // Payroll run ID
//	report_01h455vb4pex5vsknk084sn02q   // Compliance report ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package certpay
