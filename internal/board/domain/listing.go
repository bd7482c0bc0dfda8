package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type ListingStatus string

const (
	StatusLive          ListingStatus = "Live"
	StatusExpired       ListingStatus = "Expired"
	StatusSold          ListingStatus = "Sold"
	StatusPaymentFailed ListingStatus = "PaymentFailed"
)

func (s ListingStatus) IsValid() bool {
	switch s {
	case StatusLive, StatusExpired, StatusSold, StatusPaymentFailed:
		return true
	}
	return false
}

type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

func (c Condition) IsValid() bool {
	return c == ConditionNew || c == ConditionUsed
}

type FinSystem string

const (
	FinSystemFCS     FinSystem = "FCS"
	FinSystemFCSII   FinSystem = "FCS II"
	FinSystemFutures FinSystem = "Futures"
	FinSystemGlassOn FinSystem = "Glass On"
	FinSystemOther   FinSystem = "Other"
)

func (f FinSystem) IsValid() bool {
	switch f {
	case FinSystemFCS, FinSystemFCSII, FinSystemFutures, FinSystemGlassOn, FinSystemOther:
		return true
	}
	return false
}

type FinSetup string

const (
	FinSetupSingle   FinSetup = "Single"
	FinSetupTwin     FinSetup = "Twin"
	FinSetupThruster FinSetup = "Thruster"
	FinSetupQuad     FinSetup = "Quad"
	FinSetupBonzer   FinSetup = "Bonzer"
	FinSetupOther    FinSetup = "Other"
)

func (f FinSetup) IsValid() bool {
	switch f {
	case FinSetupSingle, FinSetupTwin, FinSetupThruster, FinSetupQuad, FinSetupBonzer, FinSetupOther:
		return true
	}
	return false
}

// Dimension is one size variant of a board: length in feet, width and
// thickness in inches, volume in litres.
type Dimension struct {
	Length    float64
	Width     float64
	Thickness float64
	Volume    float64
}

func (d Dimension) complete() bool {
	for _, v := range []float64{d.Length, d.Width, d.Thickness, d.Volume} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Listing struct {
	ID          string
	SellerID    string
	Brand       string
	Model       string
	Description string
	Images      []string
	Dimensions  []Dimension
	FinSystem   FinSystem
	FinSetup    FinSetup
	Condition   Condition
	Price       float64
	Status      ListingStatus
	ListedDate  time.Time
	ExpiresAt   time.Time
	// ExpiredAt records when a pass moved the listing to Expired. Retention
	// does not read it.
	ExpiredAt *time.Time
	IsPaid    bool
	Website   string
}

// Clone returns a copy that shares no slices with l.
func (l *Listing) Clone() *Listing {
	c := *l
	c.Images = append([]string(nil), l.Images...)
	c.Dimensions = append([]Dimension(nil), l.Dimensions...)
	if l.ExpiredAt != nil {
		t := *l.ExpiredAt
		c.ExpiredAt = &t
	}
	return &c
}

func (l *Listing) IsOwnedBy(userID string) bool {
	return userID != "" && l.SellerID == userID
}

// Activate puts the listing back on a fresh clock starting at now.
func (l *Listing) Activate(now time.Time) {
	l.Status = StatusLive
	l.ListedDate = now
	l.ExpiresAt = now.Add(ExpiryDuration(l.Condition))
	l.ExpiredAt = nil
}

// NewListing validates the draft and returns a listing ready to be stored.
// The caller decides the initial status and listed date.
func NewListing(id, sellerID string, draft ListingDraft) (*Listing, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	dims := append([]Dimension(nil), draft.Dimensions...)
	if draft.Condition == ConditionUsed {
		dims = dims[:1]
	}
	return &Listing{
		ID:          id,
		SellerID:    sellerID,
		Brand:       strings.TrimSpace(draft.Brand),
		Model:       strings.TrimSpace(draft.Model),
		Description: draft.Description,
		Images:      append([]string(nil), draft.Images...),
		Dimensions:  dims,
		FinSystem:   draft.FinSystem,
		FinSetup:    draft.FinSetup,
		Condition:   draft.Condition,
		Price:       draft.Price,
		Website:     draft.Website,
	}, nil
}

// ListingDraft carries the seller-editable fields of a listing.
type ListingDraft struct {
	Brand       string
	Model       string
	Description string
	Images      []string
	Dimensions  []Dimension
	FinSystem   FinSystem
	FinSetup    FinSetup
	Condition   Condition
	Price       float64
	Website     string
}

func (d ListingDraft) Validate() error {
	if strings.TrimSpace(d.Brand) == "" || strings.TrimSpace(d.Model) == "" {
		return fmt.Errorf("%w: brand and model are required", ErrInvalidInput)
	}
	if len(d.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	}
	if len(d.Dimensions) == 0 {
		return fmt.Errorf("%w: at least one dimension row is required", ErrInvalidInput)
	}
	for i, dim := range d.Dimensions {
		if !dim.complete() {
			return fmt.Errorf("%w: dimension row %d is incomplete", ErrInvalidInput, i+1)
		}
	}
	if !d.Condition.IsValid() {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidInput, d.Condition)
	}
	if !d.FinSystem.IsValid() {
		return fmt.Errorf("%w: unknown fin system %q", ErrInvalidInput, d.FinSystem)
	}
	if !d.FinSetup.IsValid() {
		return fmt.Errorf("%w: unknown fin setup %q", ErrInvalidInput, d.FinSetup)
	}
	if d.Price < 0 || math.IsNaN(d.Price) || math.IsInf(d.Price, 0) {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// ApplyEdit overwrites the seller-editable fields. Condition cannot change.
func (l *Listing) ApplyEdit(draft ListingDraft) error {
	if draft.Condition != l.Condition {
		return fmt.Errorf("%w: condition cannot be changed", ErrInvalidInput)
	}
	edited, err := NewListing(l.ID, l.SellerID, draft)
	if err != nil {
		return err
	}
	l.Brand = edited.Brand
	l.Model = edited.Model
	l.Description = edited.Description
	l.Images = edited.Images
	l.Dimensions = edited.Dimensions
	l.FinSystem = edited.FinSystem
	l.FinSetup = edited.FinSetup
	l.Price = edited.Price
	l.Website = edited.Website
	return nil
}

// ListingUpdate is a targeted field update. Nil fields are left untouched.
type ListingUpdate struct {
	Status         *ListingStatus
	ListedDate     *time.Time
	ExpiresAt      *time.Time
	ExpiredAt      *time.Time
	ClearExpiredAt bool
	IsPaid         *bool
}

// LifecycleUpdate captures the lifecycle fields of l as a targeted update.
func LifecycleUpdate(l *Listing) ListingUpdate {
	status := l.Status
	listed := l.ListedDate
	expires := l.ExpiresAt
	paid := l.IsPaid
	upd := ListingUpdate{Status: &status, ListedDate: &listed, ExpiresAt: &expires, IsPaid: &paid}
	if l.ExpiredAt != nil {
		t := *l.ExpiredAt
		upd.ExpiredAt = &t
	} else {
		upd.ClearExpiredAt = true
	}
	return upd
}
