// Package subscription defines the billing subscription that gates write
// access for an organization, and the mapping from billing-provider webhook
// events to subscription statuses.
package subscription

import (
	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/types"
)

// Status is the billing state of an organization's subscription.
type Status string

const (
	StatusActive     Status = "active"
	StatusPastDue    Status = "past_due"
	StatusCanceled   Status = "canceled"
	StatusIncomplete Status = "incomplete"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPastDue, StatusCanceled, StatusIncomplete:
		return true
	}
	return false
}

// Entitled reports whether s permits write operations.
// Only an active subscription is entitled.
func (s Status) Entitled() bool {
	return s == StatusActive
}

// Subscription is an organization's billing subscription.
// Exactly one exists per organization.
type Subscription struct {
	types.Entity
	ID             id.SubscriptionID `json:"id"`
	OrganizationID id.OrganizationID `json:"organization_id"`
	Status         Status            `json:"status"`
	ProviderRef    string            `json:"provider_ref,omitempty"`
}
