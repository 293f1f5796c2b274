package certpay_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xraph/certpay"
	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/subscription"
	"github.com/xraph/certpay/webhook"
)

func billingEvent(eventID, eventType, orgID string) *webhook.Event {
	e := &webhook.Event{ID: eventID, Type: eventType}
	e.Data.Object.Metadata.OrganizationID = orgID
	return e
}

func TestProcessWebhookReconciles(t *testing.T) {
	engine, store, seed, _, _ := newTestEngine(t)
	ctx := context.Background()

	result, err := engine.ProcessWebhook(ctx, billingEvent("evt_001", "invoice.payment_failed", seed.OrganizationID.String()))
	if err != nil {
		t.Fatal(err)
	}
	if result.Ignored {
		t.Fatalf("expected event to apply, got ignored with reason %q", result.Reason)
	}
	if result.Status != subscription.StatusPastDue {
		t.Errorf("expected past_due result, got %q", result.Status)
	}
	if result.OrganizationID != seed.OrganizationID.String() {
		t.Errorf("unexpected organization in result: %q", result.OrganizationID)
	}

	sub, err := store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != subscription.StatusPastDue {
		t.Errorf("expected subscription past_due, got %q", sub.Status)
	}
}

func TestProcessWebhookStatusMappings(t *testing.T) {
	tests := []struct {
		eventType string
		want      subscription.Status
	}{
		{"invoice.paid", subscription.StatusActive},
		{"invoice.payment_failed", subscription.StatusPastDue},
		{"customer.subscription.deleted", subscription.StatusCanceled},
	}
	for i, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			engine, store, seed, _, _ := newTestEngine(t)
			ctx := context.Background()

			eventID := fmt.Sprintf("evt_map_%d", i)
			if _, err := engine.ProcessWebhook(ctx, billingEvent(eventID, tt.eventType, seed.OrganizationID.String())); err != nil {
				t.Fatal(err)
			}
			sub, err := store.GetSubscription(ctx, seed.OrganizationID)
			if err != nil {
				t.Fatal(err)
			}
			if sub.Status != tt.want {
				t.Errorf("expected %q, got %q", tt.want, sub.Status)
			}
		})
	}
}

func TestProcessWebhookDuplicateDelivery(t *testing.T) {
	engine, store, seed, _, _ := newTestEngine(t)
	ctx := context.Background()

	ev := billingEvent("evt_dup", "invoice.payment_failed", seed.OrganizationID.String())
	if _, err := engine.ProcessWebhook(ctx, ev); err != nil {
		t.Fatal(err)
	}

	// Flip the status back, then replay the same delivery. The replay
	// must be ignored and leave the subscription untouched.
	sub, err := store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	sub.Status = subscription.StatusActive
	if err := store.UpdateSubscription(ctx, sub); err != nil {
		t.Fatal(err)
	}

	result, err := engine.ProcessWebhook(ctx, ev)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Ignored || result.Reason != "duplicate_event" {
		t.Fatalf("expected duplicate to be ignored, got %+v", result)
	}
	sub, err = store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != subscription.StatusActive {
		t.Errorf("replay mutated subscription to %q", sub.Status)
	}
}

func TestProcessWebhookUnmappedType(t *testing.T) {
	engine, store, seed, _, _ := newTestEngine(t)
	ctx := context.Background()

	result, err := engine.ProcessWebhook(ctx, billingEvent("evt_upd", "customer.subscription.updated", seed.OrganizationID.String()))
	if err != nil {
		t.Fatal(err)
	}
	if result.Ignored {
		t.Error("unmapped event types are consumed, not flagged as duplicates")
	}
	if result.Status != "" {
		t.Errorf("expected no status mapping, got %q", result.Status)
	}
	sub, err := store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != subscription.StatusActive {
		t.Errorf("unmapped event mutated subscription to %q", sub.Status)
	}
}

func TestProcessWebhookUnknownLinkage(t *testing.T) {
	engine, _, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		event *webhook.Event
	}{
		{"MissingMetadata", billingEvent("evt_no_org", "invoice.paid", "")},
		{"UnparseableOrganization", billingEvent("evt_bad_org", "invoice.paid", "not-an-id")},
		{"UnknownOrganization", billingEvent("evt_gone_org", "invoice.paid", id.NewOrganizationID().String())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.ProcessWebhook(ctx, tt.event)
			if err != nil {
				t.Fatalf("unknown linkage must not surface an error, got %v", err)
			}
			if result.Ignored {
				t.Error("event should be consumed, not marked duplicate")
			}

			// The delivery is still recorded; a replay is a duplicate.
			replay, err := engine.ProcessWebhook(ctx, tt.event)
			if err != nil {
				t.Fatal(err)
			}
			if !replay.Ignored {
				t.Error("expected replay to be ignored")
			}
		})
	}
}

func TestProcessWebhookValidation(t *testing.T) {
	engine, _, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	for _, ev := range []*webhook.Event{
		nil,
		{Type: "invoice.paid"},
		{ID: "evt_x"},
	} {
		if _, err := engine.ProcessWebhook(ctx, ev); !errors.Is(err, certpay.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %+v, got %v", ev, err)
		}
	}
}

func TestProcessWebhookFromPayload(t *testing.T) {
	engine, store, seed, _, _ := newTestEngine(t)
	ctx := context.Background()

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_raw_1",
		"type": "customer.subscription.deleted",
		"data": {"object": {"metadata": {"organizationId": %q}}}
	}`, seed.OrganizationID))

	ev, err := webhook.Parse(payload)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.ProcessWebhook(ctx, ev); err != nil {
		t.Fatal(err)
	}
	sub, err := store.GetSubscription(ctx, seed.OrganizationID)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != subscription.StatusCanceled {
		t.Errorf("expected canceled, got %q", sub.Status)
	}

	if _, err := webhook.Parse([]byte("{not json")); err == nil {
		t.Error("expected parse error for malformed payload")
	}
}
