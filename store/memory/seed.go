package memory

import (
	"context"

	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/org"
	"github.com/xraph/certpay/subscription"
	"github.com/xraph/certpay/types"
)

// Seed holds the identifiers of the demo tenant created by NewSeeded.
type Seed struct {
	OrganizationID id.OrganizationID
	OwnerUserID    id.UserID
}

// NewSeeded creates a memory store pre-populated with a demo organization,
// an owner user, and an active subscription. Useful for examples and tests.
func NewSeeded() (*Store, Seed) {
	s := New()
	ctx := context.Background()

	orgID := id.NewOrganizationID()
	ownerID := id.NewUserID()

	_ = s.CreateOrganization(ctx, &org.Organization{
		Entity: types.NewEntity(),
		ID:     orgID,
		Name:   "Demo Contractor LLC",
	})
	_ = s.CreateUser(ctx, &org.User{
		Entity: types.NewEntity(),
		ID:     ownerID,
		Email:  "owner@demo-contractor.com",
	})
	_ = s.CreateMembership(ctx, &org.Membership{
		Entity:         types.NewEntity(),
		OrganizationID: orgID,
		UserID:         ownerID,
		Role:           org.RoleOwner,
	})
	_ = s.CreateSubscription(ctx, &subscription.Subscription{
		Entity:         types.NewEntity(),
		ID:             id.NewSubscriptionID(),
		OrganizationID: orgID,
		Status:         subscription.StatusActive,
	})

	return s, Seed{OrganizationID: orgID, OwnerUserID: ownerID}
}
