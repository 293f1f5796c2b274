package certpay_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/xraph/certpay"
	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/org"
	"github.com/xraph/certpay/payroll"
	"github.com/xraph/certpay/store/memory"
)

// flushObserver captures flush counts reported by the ingest worker.
type flushObserver struct {
	mu        sync.Mutex
	stored    int
	failed    int
	duplicate int
}

func (f *flushObserver) Name() string { return "flush-observer" }

func (f *flushObserver) OnTimesheetsFlushed(_ context.Context, stored, failed, duplicate int, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored += stored
	f.failed += failed
	f.duplicate += duplicate
	return nil
}

func (f *flushObserver) counts() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored, f.failed, f.duplicate
}

func TestIngestFlush(t *testing.T) {
	store, seed := memory.NewSeeded()
	observer := &flushObserver{}
	// A long flush interval keeps the ticker out of the picture; the
	// final drain on Stop is what persists the batch.
	engine := certpay.New(store,
		certpay.WithPlugin(observer),
		certpay.WithIngestConfig(100, time.Hour),
	)
	owner := certpay.Actor{UserID: seed.OwnerUserID, Role: org.RoleOwner}
	ctx := context.Background()

	if err := engine.Start(ctx); err != nil {
		t.Fatal(err)
	}

	p, err := engine.CreateProject(ctx, certpay.CreateProjectInput{
		OrganizationID: seed.OrganizationID,
		Name:           "Bridge Retrofit",
	}, owner)
	if err != nil {
		t.Fatal(err)
	}
	w, err := engine.AddWorker(ctx, p.ID, certpay.AddWorkerInput{
		FullName:       "Dana Reyes",
		Classification: "Electrician",
	}, owner)
	if err != nil {
		t.Fatal(err)
	}

	records := []*payroll.IngestRecord{
		{Source: "adp", ProjectID: p.ID, WorkerID: w.ID, WorkDate: "2025-06-02", Hours: 8, WageRate: 45},
		{Source: "adp", ProjectID: p.ID, WorkerID: w.ID, WorkDate: "2025-06-03", Hours: 6, WageRate: 45},
		// Repeats the first record's (source, project, worker, date) key.
		{Source: "adp", ProjectID: p.ID, WorkerID: w.ID, WorkDate: "2025-06-02", Hours: 8, WageRate: 45},
		// Unknown worker, dropped during normalization.
		{Source: "adp", ProjectID: p.ID, WorkerID: id.NewWorkerID(), WorkDate: "2025-06-02", Hours: 8, WageRate: 45},
		// Non-positive hours, dropped during normalization.
		{Source: "adp", ProjectID: p.ID, WorkerID: w.ID, WorkDate: "2025-06-04", Hours: 0, WageRate: 45},
	}
	for _, rec := range records {
		if err := engine.Ingest(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	if err := engine.Stop(); err != nil {
		t.Fatal(err)
	}

	stored, failed, duplicate := observer.counts()
	if stored != 2 || failed != 2 || duplicate != 1 {
		t.Errorf("expected stored=2 failed=2 duplicate=1, got stored=%d failed=%d duplicate=%d",
			stored, failed, duplicate)
	}

	start, _ := time.ParseInLocation(payroll.DateLayout, "2025-06-01", time.UTC)
	end, _ := time.ParseInLocation(payroll.DateLayout, "2025-06-07", time.UTC)
	entries, err := store.ListTimesheetEntries(ctx, p.ID, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 stored entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Source != "adp" {
			t.Errorf("expected source adp, got %q", entry.Source)
		}
	}
}

func TestIngestValidation(t *testing.T) {
	store, _ := memory.NewSeeded()
	engine := certpay.New(store)
	ctx := context.Background()

	if err := engine.Ingest(ctx, nil); !errors.Is(err, certpay.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil record, got %v", err)
	}
	if err := engine.Ingest(ctx, &payroll.IngestRecord{}); !errors.Is(err, certpay.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing source, got %v", err)
	}
}
