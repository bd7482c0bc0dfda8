package domain

// Event subjects published on the message bus.
const (
	SubjectListingCreated  = "listing.created"
	SubjectListingUpdated  = "listing.updated"
	SubjectListingDeleted  = "listing.deleted"
	SubjectListingExpired  = "listing.expired"
	SubjectListingRemoved  = "listing.removed"
	SubjectListingRenewed  = "listing.renewed"
	SubjectListingRelisted = "listing.relisted"
	SubjectListingSold     = "listing.sold"
	SubjectUserBlocked     = "user.block_toggled"

	SubjectPaymentRequested = "payments.requested"
	SubjectPaymentSucceeded = "payments.succeeded"
	SubjectPaymentFailed    = "payments.failed"
)
