package domain

import (
	"fmt"
	"time"
)

// EffectiveStatus recomputes the status from the listing's timestamps
// instead of trusting the stored field.
func EffectiveStatus(l *Listing, now time.Time) ListingStatus {
	if l != nil && l.Status == StatusLive && Evaluate(l, now) != NoChange {
		return StatusExpired
	}
	return l.Status
}

// RenewalPlan says how an expired listing gets back to Live.
type RenewalPlan struct {
	RequiresPayment bool
	Charge          Charge
}

func authorizeOwner(l *Listing, requester *User) error {
	if requester == nil {
		return ErrUnauthenticated
	}
	if !l.IsOwnedBy(requester.ID) {
		return fmt.Errorf("%w: listing %s belongs to another seller", ErrForbidden, l.ID)
	}
	return nil
}

// PlanRenewal decides whether renewing l is free or paid. Used boards renew
// for free; New boards pay the seller's country fee once per dimension row.
func PlanRenewal(l *Listing, requester *User, now time.Time) (RenewalPlan, error) {
	if err := authorizeOwner(l, requester); err != nil {
		return RenewalPlan{}, err
	}
	switch EffectiveStatus(l, now) {
	case StatusExpired, StatusPaymentFailed:
	default:
		return RenewalPlan{}, fmt.Errorf("%w: cannot renew a %s listing", ErrInvalidTransition, l.Status)
	}
	if l.Condition != ConditionNew {
		return RenewalPlan{}, nil
	}
	return RenewalPlan{
		RequiresPayment: true,
		Charge:          FeeFor(requester.Country, len(l.Dimensions)),
	}, nil
}

// ConfirmRenewal is the Live transition after a successful renewal payment.
func (l *Listing) ConfirmRenewal(now time.Time) {
	l.Activate(now)
	l.IsPaid = true
}

// FailRenewal marks the listing as having a failed renewal charge.
func (l *Listing) FailRenewal() {
	l.Status = StatusPaymentFailed
}

// Relist brings a sold listing back for free, whatever its condition.
func Relist(l *Listing, requester *User, now time.Time) error {
	if err := authorizeOwner(l, requester); err != nil {
		return err
	}
	if l.Status != StatusSold {
		return fmt.Errorf("%w: only sold listings can be relisted", ErrInvalidTransition)
	}
	l.Activate(now)
	return nil
}

// MarkSold is allowed for the owner of a live listing only.
func MarkSold(l *Listing, requester *User, now time.Time) error {
	if err := authorizeOwner(l, requester); err != nil {
		return err
	}
	if EffectiveStatus(l, now) != StatusLive {
		return fmt.Errorf("%w: only live listings can be marked sold", ErrInvalidTransition)
	}
	l.Status = StatusSold
	return nil
}
