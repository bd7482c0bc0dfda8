package domain

import (
	"fmt"
	"math"
	"time"
)

type PaymentPurpose string

const (
	PurposeNewListings PaymentPurpose = "new_listings"
	PurposeRenewal     PaymentPurpose = "renewal"
	PurposeDonation    PaymentPurpose = "donation"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment tracks a charge until the processor reports its outcome. New
// boards wait in Staged and are only stored once the charge succeeds.
type Payment struct {
	ID         string
	UserID     string
	UserEmail  string
	Purpose    PaymentPurpose
	ListingIDs []string
	Staged     []*Listing
	Charge     Charge
	Status     PaymentStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

func (p *Payment) IsResolved() bool {
	return p.Status != PaymentPending
}

// Resolve records the processor outcome. Resolving twice is an error so the
// caller can treat redelivered results as no-ops.
func (p *Payment) Resolve(succeeded bool, now time.Time) error {
	if p.IsResolved() {
		return fmt.Errorf("%w: payment %s already %s", ErrConflict, p.ID, p.Status)
	}
	p.Status = PaymentFailed
	if succeeded {
		p.Status = PaymentSucceeded
	}
	p.ResolvedAt = &now
	return nil
}

// PaymentResult is the asynchronous outcome delivered by the processor.
type PaymentResult struct {
	PaymentID string
	Succeeded bool
	Reason    string
}

// DimensionCount totals dimension rows across listings.
func DimensionCount(listings []*Listing) int {
	n := 0
	for _, l := range listings {
		n += len(l.Dimensions)
	}
	return n
}

type DonationEntry struct {
	ID        string
	UserID    string
	UserEmail string
	Entries   int
	Amount    float64
	Date      time.Time
}

// EntriesFor converts a donation amount into giveaway entries, one per whole unit.
func EntriesFor(amount float64) int {
	return int(math.Floor(amount))
}

type DonationSummary struct {
	TotalEntries int
	TotalAmount  float64
	Participants int
}

func SummarizeDonations(entries []*DonationEntry) DonationSummary {
	var s DonationSummary
	users := make(map[string]struct{})
	for _, e := range entries {
		s.TotalEntries += e.Entries
		s.TotalAmount += e.Amount
		users[e.UserID] = struct{}{}
	}
	s.Participants = len(users)
	return s
}
