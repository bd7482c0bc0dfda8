package usecase

import (
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func sequence(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

type fixture struct {
	listings      *MockListingRepository
	users         *MockUserRepository
	notifications *MockNotificationRepository
	payments      *MockPaymentRepository
	ads           *MockAdRepository
	donations     *MockDonationRepository
	sessions      *MockSessionRepository
	cache         *MockSnapshotCache
	publisher     *MockPublisher
	gateway       *MockPaymentGateway
	images        *MockImageStorage
	metrics       *metrics.MetricsManager
	log           *logger.Logger
}

// newFixture returns fresh mocks. Cache invalidation and event publishing
// are side effects most tests do not assert on, so they are optional.
func newFixture() *fixture {
	f := &fixture{
		listings:      new(MockListingRepository),
		users:         new(MockUserRepository),
		notifications: new(MockNotificationRepository),
		payments:      new(MockPaymentRepository),
		ads:           new(MockAdRepository),
		donations:     new(MockDonationRepository),
		sessions:      new(MockSessionRepository),
		cache:         new(MockSnapshotCache),
		publisher:     new(MockPublisher),
		gateway:       new(MockPaymentGateway),
		images:        new(MockImageStorage),
		metrics:       metrics.NewMetricsManager("test"),
		log:           logger.NewNop(),
	}
	f.cache.On("Invalidate", mock.Anything).Return(nil).Maybe()
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func (f *fixture) lifecycle() *LifecycleUsecase {
	uc := NewLifecycleUsecase(f.listings, f.users, f.images, f.cache, f.publisher, f.metrics, f.log)
	uc.now = fixedClock
	return uc
}

func (f *fixture) payment() *PaymentUsecase {
	uc := NewPaymentUsecase(f.payments, f.listings, f.donations, f.gateway, f.cache, f.publisher, f.metrics, f.log)
	uc.now = fixedClock
	uc.newID = sequence("pay-1", "pay-2", "pay-3")
	return uc
}

func (f *fixture) renewal() *RenewalUsecase {
	uc := NewRenewalUsecase(f.listings, f.users, f.payment(), f.cache, f.publisher, f.metrics, f.log)
	uc.now = fixedClock
	return uc
}

func (f *fixture) listing() *ListingUsecase {
	uc := NewListingUsecase(f.listings, f.users, f.images, f.payment(), f.cache, f.publisher, f.log)
	uc.now = fixedClock
	uc.newID = sequence("board-1", "board-2", "board-3", "board-4")
	return uc
}

func (f *fixture) notification(everySnapshot bool) *NotificationUsecase {
	uc := NewNotificationUsecase(f.notifications, f.listings, everySnapshot, f.metrics, f.log)
	uc.now = fixedClock
	return uc
}

func (f *fixture) feed(everySnapshot bool) *FeedUsecase {
	uc := NewFeedUsecase(f.listings, f.users, f.ads, f.sessions, f.cache, f.lifecycle(), f.notification(everySnapshot), time.Minute, f.metrics, f.log)
	uc.now = fixedClock
	uc.newID = sequence("session-1")
	return uc
}

func (f *fixture) account() *AccountUsecase {
	uc := NewAccountUsecase(f.users, f.listings, f.log)
	uc.now = fixedClock
	uc.newID = sequence("alert-1", "alert-2")
	return uc
}

func (f *fixture) admin() *AdminUsecase {
	uc := NewAdminUsecase(f.listings, f.users, f.ads, f.donations, f.images, f.lifecycle(), f.cache, f.publisher, f.log)
	uc.newID = sequence("ad-id-1")
	return uc
}

func seller(id string) *domain.User {
	return &domain.User{ID: id, Name: id, Email: id + "@example.com", Country: "AU", IsVerified: true, Role: domain.RoleUser}
}

func viewerOf(u *domain.User) *domain.Viewer {
	return &domain.Viewer{UserID: u.ID, Role: u.Role}
}

func board(id, sellerID string, c domain.Condition, status domain.ListingStatus, age time.Duration) *domain.Listing {
	listed := testNow.Add(-age)
	return &domain.Listing{
		ID:         id,
		SellerID:   sellerID,
		Brand:      "Lost",
		Model:      "Driver",
		Images:     []string{"https://img.example.com/" + id + ".jpg"},
		Dimensions: []domain.Dimension{{Length: 6, Width: 19.5, Thickness: 2.5, Volume: 31}},
		FinSystem:  domain.FinSystemFCSII,
		FinSetup:   domain.FinSetupThruster,
		Condition:  c,
		Price:      500,
		Status:     status,
		ListedDate: listed,
		ExpiresAt:  listed.Add(domain.ExpiryDuration(c)),
	}
}

func draft(c domain.Condition, dims int) domain.ListingDraft {
	d := domain.ListingDraft{
		Brand:     "Pyzel",
		Model:     "Ghost",
		Images:    []string{"https://img.example.com/ghost.jpg"},
		Condition: c,
		FinSystem: domain.FinSystemFutures,
		FinSetup:  domain.FinSetupThruster,
		Price:     900,
	}
	for i := 0; i < dims; i++ {
		d.Dimensions = append(d.Dimensions, domain.Dimension{Length: 6 + float64(i)*0.1, Width: 19, Thickness: 2.5, Volume: 30})
	}
	return d
}

func statusUpdate(want domain.ListingStatus) interface{} {
	return mock.MatchedBy(func(u domain.ListingUpdate) bool {
		return u.Status != nil && *u.Status == want
	})
}
