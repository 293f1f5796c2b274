// Package webhook defines the billing-provider webhook payload consumed by
// the engine's reconciler, and the reconciliation result.
//
// Payloads are not signature-verified here; the boundary layer owns
// transport-level authenticity.
package webhook

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/xraph/certpay/subscription"
)

// Event is the subset of a billing-provider webhook payload the reconciler
// reads. ID is the provider's delivery identifier and is the deduplication
// key; Type selects the subscription status mapping.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData wraps the provider's event object.
type EventData struct {
	Object EventObject `json:"object"`
}

// EventObject carries the provider object's metadata.
type EventObject struct {
	Metadata EventMetadata `json:"metadata"`
}

// EventMetadata holds the tenant linkage written by the billing integration
// when the provider objects were created.
type EventMetadata struct {
	OrganizationID string `json:"organizationId"`
}

// OrganizationID returns the organization linked in the event metadata,
// or an empty string when the event carries none.
func (e *Event) OrganizationID() string {
	return e.Data.Object.Metadata.OrganizationID
}

// Parse decodes a raw webhook payload body into an Event.
func Parse(payload []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("webhook: decode payload: %w", err)
	}
	return &e, nil
}

// Result is the outcome of reconciling one webhook event.
// Ignored is a normal, non-error outcome: the event was a duplicate
// delivery or carried no status mapping to apply.
type Result struct {
	Ignored        bool                `json:"ignored"`
	Reason         string              `json:"reason,omitempty"`
	OrganizationID string              `json:"organization_id,omitempty"`
	Status         subscription.Status `json:"status,omitempty"`
}
