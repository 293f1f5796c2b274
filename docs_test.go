package certpay_test

import (
	"context"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/certpay"
	"github.com/xraph/certpay/audit"
	"github.com/xraph/certpay/store/memory"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (seeded memory store for demo, use MongoDB in production)
		store, seed := memory.NewSeeded()

		// Initialize the engine
		trail := audit.NewLog()
		engine := certpay.New(store,
			certpay.WithLogger(slog.Default()),
			certpay.WithAuditRecorder(trail),
			certpay.WithIngestConfig(100, 5*time.Second),
		)

		// Start the engine
		ctx := context.Background()
		if err := engine.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer engine.Stop()

		// The seeded owner can create projects
		actor := certpay.Actor{UserID: seed.OwnerUserID, Role: "owner"}

		p, err := engine.CreateProject(ctx, certpay.CreateProjectInput{
			OrganizationID: seed.OrganizationID,
			Name:           "Bridge Retrofit",
			ContractNumber: "CA-2025-114",
		}, actor)
		if err != nil {
			t.Fatal(err)
		}

		// Add a worker to the roster
		w, err := engine.AddWorker(ctx, p.ID, certpay.AddWorkerInput{
			FullName:       "Dana Reyes",
			Classification: "Electrician",
			FringeRate:     12.50,
		}, actor)
		if err != nil {
			t.Fatal(err)
		}

		// Record hours
		_, err = engine.AddTimesheetEntry(ctx, p.ID, certpay.AddTimesheetEntryInput{
			WorkerID: w.ID,
			WorkDate: "2025-06-02",
			Hours:    8,
			WageRate: 45,
		}, actor)
		if err != nil {
			t.Fatal(err)
		}

		// Generate the run and its first compliance report revision
		run, report, err := engine.GeneratePayrollRun(ctx, certpay.GeneratePayrollRunInput{
			ProjectID:   p.ID,
			PeriodStart: "2025-06-02",
			PeriodEnd:   "2025-06-08",
		}, actor)
		if err != nil {
			t.Fatal(err)
		}

		log.Printf("run %s gross wages: %.2f, report revision %d\n",
			run.ID, run.Totals.GrossWages, report.Revision)
	})
}
