package domain

import "time"

const (
	Day = 24 * time.Hour

	NewListingLifetime  = 365 * Day
	UsedListingLifetime = 90 * Day
	// RetentionWindow is how long an expired listing is kept before removal.
	RetentionWindow = 30 * Day
)

// ExpiryDuration is the live window for a listing of the given condition.
func ExpiryDuration(c Condition) time.Duration {
	if c == ConditionNew {
		return NewListingLifetime
	}
	return UsedListingLifetime
}

// ExpiryTime is the instant the current live window ends.
func (l *Listing) ExpiryTime() time.Time {
	return l.ListedDate.Add(ExpiryDuration(l.Condition))
}

type Transition int

const (
	NoChange Transition = iota
	Expire
	Remove
)

func (t Transition) String() string {
	switch t {
	case Expire:
		return "expire"
	case Remove:
		return "remove"
	}
	return "none"
}

// Evaluate decides what the lifecycle clock does to l at now. Retention is
// counted from ExpiryTime, so a live listing already past both windows is
// removed directly. Listings with an unknown listed date are left alone.
func Evaluate(l *Listing, now time.Time) Transition {
	if l == nil || l.ListedDate.IsZero() {
		return NoChange
	}
	if l.Status != StatusLive && l.Status != StatusExpired {
		return NoChange
	}
	if now.Sub(l.ExpiryTime()) > RetentionWindow {
		return Remove
	}
	if l.Status == StatusLive && now.Sub(l.ListedDate) > ExpiryDuration(l.Condition) {
		return Expire
	}
	return NoChange
}

// Reconciliation is the outcome of one lifecycle pass over a collection.
type Reconciliation struct {
	// Listings is the corrected collection with removed listings dropped.
	Listings []*Listing
	// Expired holds corrected copies of the listings that moved to Expired.
	Expired []*Listing
	// Removed holds the listings dropped for exceeding retention, with the
	// status they were stored under.
	Removed []*Listing
}

func (r Reconciliation) Changed() bool {
	return len(r.Expired) > 0 || len(r.Removed) > 0
}

// Reconcile runs one lifecycle pass. Input listings are never modified: a
// listing that crosses a threshold is copied before its status changes, and
// untouched listings are passed through as-is.
func Reconcile(listings []*Listing, now time.Time) Reconciliation {
	out := Reconciliation{Listings: make([]*Listing, 0, len(listings))}
	for _, l := range listings {
		switch Evaluate(l, now) {
		case Expire:
			c := l.Clone()
			c.Status = StatusExpired
			c.ExpiresAt = c.ExpiryTime()
			stamp := now
			c.ExpiredAt = &stamp
			out.Expired = append(out.Expired, c)
			out.Listings = append(out.Listings, c)
		case Remove:
			out.Removed = append(out.Removed, l)
		default:
			if l != nil {
				out.Listings = append(out.Listings, l)
			}
		}
	}
	return out
}
