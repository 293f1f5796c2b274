package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/certpay/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"OrganizationID", id.NewOrganizationID, "org_"},
		{"UserID", id.NewUserID, "user_"},
		{"SubscriptionID", id.NewSubscriptionID, "sub_"},
		{"ProjectID", id.NewProjectID, "project_"},
		{"WorkerID", id.NewWorkerID, "worker_"},
		{"TimesheetEntryID", id.NewTimesheetEntryID, "time_"},
		{"PayrollRunID", id.NewPayrollRunID, "run_"},
		{"ReportID", id.NewReportID, "report_"},
		{"RejectionID", id.NewRejectionID, "reject_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixProject)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixProject {
		t.Errorf("expected prefix %q, got %q", id.PrefixProject, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"OrganizationID", id.NewOrganizationID, id.ParseOrganizationID},
		{"UserID", id.NewUserID, id.ParseUserID},
		{"SubscriptionID", id.NewSubscriptionID, id.ParseSubscriptionID},
		{"ProjectID", id.NewProjectID, id.ParseProjectID},
		{"WorkerID", id.NewWorkerID, id.ParseWorkerID},
		{"TimesheetEntryID", id.NewTimesheetEntryID, id.ParseTimesheetEntryID},
		{"PayrollRunID", id.NewPayrollRunID, id.ParsePayrollRunID},
		{"ReportID", id.NewReportID, id.ParseReportID},
		{"RejectionID", id.NewRejectionID, id.ParseRejectionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	projectID := id.NewProjectID()

	if _, err := id.ParseWorkerID(projectID.String()); err == nil {
		t.Error("expected error parsing a project ID as a worker ID")
	}
	if _, err := id.ParseReportID(projectID.String()); err == nil {
		t.Error("expected error parsing a project ID as a report ID")
	}
}

func TestParseWithPrefix(t *testing.T) {
	i := id.NewPayrollRunID()
	parsed, err := id.ParseWithPrefix(i.String(), id.PrefixPayrollRun)
	if err != nil {
		t.Fatalf("ParseWithPrefix failed: %v", err)
	}
	if parsed.String() != i.String() {
		t.Errorf("mismatch: %q != %q", parsed.String(), i.String())
	}

	_, err = id.ParseWithPrefix(i.String(), id.PrefixReport)
	if err == nil {
		t.Error("expected error for wrong prefix")
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := id.Parse("")
	if err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", i.Prefix())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewReportID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.ID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	data, err = nilID.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(nil) failed: %v", err)
	}
	var restored2 id.ID
	if err := restored2.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !restored2.IsNil() {
		t.Error("expected nil after round-trip of nil ID")
	}
}

func TestUniqueness(t *testing.T) {
	a := id.NewTimesheetEntryID()
	b := id.NewTimesheetEntryID()
	if a.String() == b.String() {
		t.Errorf("two consecutive NewTimesheetEntryID() calls returned the same ID: %q", a.String())
	}
}
