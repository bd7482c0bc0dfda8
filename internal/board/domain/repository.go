package domain

import (
	"context"
	"io"
	"time"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	CreateMany(ctx context.Context, listings []*Listing) error
	Update(ctx context.Context, listing *Listing) error
	// UpdateFields applies a targeted update. When expect is non-empty the
	// update only applies while the stored status still equals it, and
	// ErrConflict is returned otherwise.
	UpdateFields(ctx context.Context, id string, expect ListingStatus, upd ListingUpdate) error
	Delete(ctx context.Context, id string) error
	// DeleteWithStatus deletes only while the stored status equals status,
	// returning ErrConflict otherwise.
	DeleteWithStatus(ctx context.Context, id string, status ListingStatus) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	FindBySeller(ctx context.Context, sellerID string) ([]*Listing, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Upsert(ctx context.Context, user *User) error
	SetFavs(ctx context.Context, userID string, favs []string) error
	SetAlerts(ctx context.Context, userID string, alerts []Alert) error
	SetBlocked(ctx context.Context, userID string, blocked bool) error
	// RemoveFavoriteEverywhere drops a deleted listing from every user's favs.
	RemoveFavoriteEverywhere(ctx context.Context, listingID string) error
}

// NotificationRepository stores each user's notifications as one record.
type NotificationRepository interface {
	Get(ctx context.Context, userID string) ([]Notification, error)
	Put(ctx context.Context, userID string, notifications []Notification) error
	Delete(ctx context.Context, userID string) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	// MarkResolved stores the outcome only if the payment is still pending,
	// returning ErrConflict otherwise.
	MarkResolved(ctx context.Context, payment *Payment) error
}

type AdRepository interface {
	Create(ctx context.Context, ad *ManagedAd) error
	Update(ctx context.Context, ad *ManagedAd) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*ManagedAd, error)
	FindActive(ctx context.Context) ([]*ManagedAd, error)
}

type DonationRepository interface {
	Create(ctx context.Context, entry *DonationEntry) error
	FindAll(ctx context.Context) ([]*DonationEntry, error)
}

type SessionRepository interface {
	Get(ctx context.Context, id string) (*BrowseSession, error)
	Save(ctx context.Context, session *BrowseSession) error
}

// SnapshotCache holds the last loaded listing collection.
type SnapshotCache interface {
	Get(ctx context.Context) ([]*Listing, error)
	Set(ctx context.Context, listings []*Listing, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// PaymentGateway asks the processor to charge a payment. The outcome
// arrives later as a PaymentResult.
type PaymentGateway interface {
	RequestCharge(ctx context.Context, payment *Payment) error
}

type ImageStorage interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, imageURL string) error
}
