package subscription_test

import (
	"testing"

	"github.com/xraph/certpay/subscription"
)

func TestStatusForEvent(t *testing.T) {
	tests := []struct {
		eventType string
		want      subscription.Status
		mapped    bool
	}{
		{subscription.EventInvoicePaid, subscription.StatusActive, true},
		{subscription.EventInvoiceFailed, subscription.StatusPastDue, true},
		{subscription.EventSubscriptionDeleted, subscription.StatusCanceled, true},
		{subscription.EventSubscriptionUpdated, "", false},
		{"invoice.finalized", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			got, ok := subscription.StatusForEvent(tt.eventType)
			if ok != tt.mapped || got != tt.want {
				t.Errorf("StatusForEvent(%q) = (%q, %v), want (%q, %v)",
					tt.eventType, got, ok, tt.want, tt.mapped)
			}
		})
	}
}

func TestStatusEntitled(t *testing.T) {
	if !subscription.StatusActive.Entitled() {
		t.Error("active should be entitled")
	}
	for _, s := range []subscription.Status{
		subscription.StatusPastDue,
		subscription.StatusCanceled,
		subscription.StatusIncomplete,
	} {
		if s.Entitled() {
			t.Errorf("%q should not be entitled", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []subscription.Status{
		subscription.StatusActive,
		subscription.StatusPastDue,
		subscription.StatusCanceled,
		subscription.StatusIncomplete,
	} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if subscription.Status("trialing").Valid() {
		t.Error("undefined status should not be valid")
	}
}
