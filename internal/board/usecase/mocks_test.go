package usecase

import (
	"context"
	"io"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/stretchr/testify/mock"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockListingRepository) CreateMany(ctx context.Context, ls []*domain.Listing) error {
	return m.Called(ctx, ls).Error(0)
}
func (m *MockListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockListingRepository) UpdateFields(ctx context.Context, id string, expect domain.ListingStatus, upd domain.ListingUpdate) error {
	return m.Called(ctx, id, expect, upd).Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockListingRepository) DeleteWithStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}
func (m *MockUserRepository) Upsert(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) SetFavs(ctx context.Context, userID string, favs []string) error {
	return m.Called(ctx, userID, favs).Error(0)
}
func (m *MockUserRepository) SetAlerts(ctx context.Context, userID string, alerts []domain.Alert) error {
	return m.Called(ctx, userID, alerts).Error(0)
}
func (m *MockUserRepository) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	return m.Called(ctx, userID, blocked).Error(0)
}
func (m *MockUserRepository) RemoveFavoriteEverywhere(ctx context.Context, listingID string) error {
	return m.Called(ctx, listingID).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Get(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepository) Put(ctx context.Context, userID string, ns []domain.Notification) error {
	return m.Called(ctx, userID, ns).Error(0)
}
func (m *MockNotificationRepository) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepository) MarkResolved(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

type MockAdRepository struct{ mock.Mock }

func (m *MockAdRepository) Create(ctx context.Context, ad *domain.ManagedAd) error {
	return m.Called(ctx, ad).Error(0)
}
func (m *MockAdRepository) Update(ctx context.Context, ad *domain.ManagedAd) error {
	return m.Called(ctx, ad).Error(0)
}
func (m *MockAdRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockAdRepository) FindAll(ctx context.Context) ([]*domain.ManagedAd, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ManagedAd), args.Error(1)
}
func (m *MockAdRepository) FindActive(ctx context.Context) ([]*domain.ManagedAd, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ManagedAd), args.Error(1)
}

type MockDonationRepository struct{ mock.Mock }

func (m *MockDonationRepository) Create(ctx context.Context, e *domain.DonationEntry) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockDonationRepository) FindAll(ctx context.Context) ([]*domain.DonationEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DonationEntry), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.BrowseSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BrowseSession), args.Error(1)
}
func (m *MockSessionRepository) Save(ctx context.Context, s *domain.BrowseSession) error {
	return m.Called(ctx, s).Error(0)
}

type MockSnapshotCache struct{ mock.Mock }

func (m *MockSnapshotCache) Get(ctx context.Context) ([]*domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockSnapshotCache) Set(ctx context.Context, ls []*domain.Listing, ttl time.Duration) error {
	return m.Called(ctx, ls, ttl).Error(0)
}
func (m *MockSnapshotCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return m.Called(ctx, subject, data).Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) RequestCharge(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, r, size, contentType)
	return args.String(0), args.Error(1)
}
func (m *MockImageStorage) Delete(ctx context.Context, imageURL string) error {
	return m.Called(ctx, imageURL).Error(0)
}
