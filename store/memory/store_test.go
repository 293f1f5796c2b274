package memory_test

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
	"github.com/xraph/certpay/project"
	"github.com/xraph/certpay/store/memory"
	"github.com/xraph/certpay/subscription"
	"github.com/xraph/certpay/types"
)

func TestSeededStore(t *testing.T) {
	store, seed := memory.NewSeeded()
	ctx := context.Background()

	o, err := store.GetOrganization(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Name == "" {
		t.Error("seeded organization has no name")
	}

	m, err := store.GetMembership(ctx, seed.OrganizationID, seed.OwnerUserID)
	if err != nil {
		t.Fatal(err)
	}
	if m.Role != org.RoleOwner {
		t.Errorf("expected owner membership, got %q", m.Role)
	}

	sub, err := store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != subscription.StatusActive {
		t.Errorf("expected active subscription, got %q", sub.Status)
	}
}

func TestNotFoundSentinels(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	tests := []struct {
		name string
		err  func() error
		want error
	}{
		{"Organization", func() error { _, err := store.GetOrganization(ctx, id.NewOrganizationID()); return err }, certpay.ErrOrganizationNotFound},
		{"User", func() error { _, err := store.GetUser(ctx, id.NewUserID()); return err }, certpay.ErrUserNotFound},
		{"Membership", func() error {
			_, err := store.GetMembership(ctx, id.NewOrganizationID(), id.NewUserID())
			return err
		}, certpay.ErrMembershipNotFound},
		{"Project", func() error { _, err := store.GetProject(ctx, id.NewProjectID()); return err }, certpay.ErrProjectNotFound},
		{"Worker", func() error { _, err := store.GetWorker(ctx, id.NewWorkerID()); return err }, certpay.ErrWorkerNotFound},
		{"Run", func() error { _, err := store.GetRun(ctx, id.NewPayrollRunID()); return err }, certpay.ErrRunNotFound},
		{"Report", func() error { _, err := store.GetReport(ctx, id.NewReportID()); return err }, certpay.ErrReportNotFound},
		{"Subscription", func() error { _, err := store.GetSubscription(ctx, id.NewOrganizationID()); return err }, certpay.ErrSubscriptionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.err()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !certpay.IsNotFound(err) {
				t.Errorf("expected IsNotFound to hold for %v", err)
			}
		})
	}
}

func TestCreateDuplicate(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	p := &project.Project{
		Entity:         types.NewEntity(),
		ID:             id.NewProjectID(),
		OrganizationID: id.NewOrganizationID(),
		Name:           "Bridge Retrofit",
	}
	if err := store.CreateProject(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateProject(ctx, p); !errors.Is(err, certpay.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestListTimesheetEntriesInclusiveBounds(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	projectID := id.NewProjectID()
	workerID := id.NewWorkerID()
	day := func(s string) time.Time {
		d, err := time.ParseInLocation(payroll.DateLayout, s, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}
	for _, date := range []string{"2025-06-01", "2025-06-02", "2025-06-08", "2025-06-09"} {
		if err := store.CreateTimesheetEntry(ctx, &project.TimesheetEntry{
			Entity:    types.NewEntity(),
			ID:        id.NewTimesheetEntryID(),
			ProjectID: projectID,
			WorkerID:  workerID,
			WorkDate:  day(date),
			Hours:     8,
			WageRate:  45,
		}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.ListTimesheetEntries(ctx, projectID, day("2025-06-02"), day("2025-06-08"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected both boundary dates included, got %d entries", len(entries))
	}
	for _, e := range entries {
		if e.WorkDate.Before(day("2025-06-02")) || e.WorkDate.After(day("2025-06-08")) {
			t.Errorf("entry outside period: %s", e.WorkDate)
		}
	}

	other, err := store.ListTimesheetEntries(ctx, id.NewProjectID(), day("2025-06-01"), day("2025-06-09"))
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("expected no entries for unrelated project, got %d", len(other))
	}
}

func TestReadsReturnCopies(t *testing.T) {
	store, seed := memory.NewSeeded()
	ctx := context.Background()

	// Mutating a returned struct must not leak into the store before the
	// matching Update call.
	sub, err := store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	sub.Status = subscription.StatusCanceled
	again, err := store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != subscription.StatusActive {
		t.Errorf("subscription mutation leaked into store: %q", again.Status)
	}

	p := &project.Project{
		Entity:         types.NewEntity(),
		ID:             id.NewProjectID(),
		OrganizationID: seed.OrganizationID,
		Name:           "Bridge Retrofit",
	}
	if err := store.CreateProject(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Name = "renamed after create"
	got, err := store.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Bridge Retrofit" {
		t.Errorf("create kept caller's pointer: %q", got.Name)
	}
	got.Name = "renamed after read"
	got, err = store.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Bridge Retrofit" {
		t.Errorf("read returned live pointer: %q", got.Name)
	}

	run := &payroll.Run{
		Entity:    types.NewEntity(),
		ID:        id.NewPayrollRunID(),
		ProjectID: p.ID,
		Status:    payroll.StatusDraft,
		WorkerSummaries: []payroll.WorkerSummary{
			{WorkerID: id.NewWorkerID(), TotalHours: 8, TotalWages: 360},
		},
	}
	if err := store.CreateRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	fetched, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	fetched.WorkerSummaries[0].TotalHours = 99
	fetched, err = store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.WorkerSummaries[0].TotalHours != 8 {
		t.Errorf("worker summaries shared backing array: %v", fetched.WorkerSummaries[0].TotalHours)
	}
}

func TestMarkWebhookEvent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	seen, err := store.MarkWebhookEvent(ctx, "evt_1")
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("first delivery should not be seen")
	}
	seen, err = store.MarkWebhookEvent(ctx, "evt_1")
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("second delivery should be seen")
	}
}

func TestMarkWebhookEventConcurrent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			seen, err := store.MarkWebhookEvent(ctx, "evt_race")
			if err != nil {
				t.Error(err)
				return
			}
			if !seen {
				mu.Lock()
				firsts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if firsts != 1 {
		t.Errorf("expected exactly one first delivery, got %d", firsts)
	}
}

func TestUpdateRunAndReport(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	run := &payroll.Run{
		Entity:    types.NewEntity(),
		ID:        id.NewPayrollRunID(),
		ProjectID: id.NewProjectID(),
		Status:    payroll.StatusDraft,
	}
	if err := store.CreateRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	run.Status = payroll.StatusSubmitted
	if err := store.UpdateRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != payroll.StatusSubmitted {
		t.Errorf("expected submitted, got %q", got.Status)
	}

	missing := &payroll.Run{Entity: types.NewEntity(), ID: id.NewPayrollRunID()}
	if err := store.UpdateRun(ctx, missing); !errors.Is(err, certpay.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
