package webhook

import "testing"

func TestParse(t *testing.T) {
	payload := []byte(`{
		"id": "evt_123",
		"type": "invoice.paid",
		"data": {"object": {"metadata": {"organizationId": "org_01h2xcejqtf2nbrexx3vqjhp41"}}}
	}`)

	e, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.ID != "evt_123" {
		t.Errorf("ID: got %q", e.ID)
	}
	if e.Type != "invoice.paid" {
		t.Errorf("Type: got %q", e.Type)
	}
	if e.OrganizationID() != "org_01h2xcejqtf2nbrexx3vqjhp41" {
		t.Errorf("OrganizationID: got %q", e.OrganizationID())
	}
}

func TestParseNoMetadata(t *testing.T) {
	e, err := Parse([]byte(`{"id": "evt_1", "type": "customer.subscription.updated", "data": {"object": {}}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.OrganizationID() != "" {
		t.Errorf("expected empty organization ID, got %q", e.OrganizationID())
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}
