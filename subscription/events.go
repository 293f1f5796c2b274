package subscription

// Billing-provider webhook event types with a subscription status mapping.
const (
	EventInvoicePaid         = "invoice.paid"
	EventInvoiceFailed       = "invoice.payment_failed"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventSubscriptionUpdated = "customer.subscription.updated"
)

// StatusForEvent maps a billing-provider webhook event type to the
// subscription status it implies. The second return is false when the
// event type carries no status mapping and must be ignored.
func StatusForEvent(eventType string) (Status, bool) {
	switch eventType {
	case EventInvoicePaid:
		return StatusActive, true
	case EventInvoiceFailed:
		return StatusPastDue, true
	case EventSubscriptionDeleted:
		return StatusCanceled, true
	case EventSubscriptionUpdated:
		// Plan changes are tracked by the provider; no local status change.
		return "", false
	default:
		return "", false
	}
}
