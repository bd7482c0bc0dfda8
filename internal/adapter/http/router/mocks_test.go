package router

import (
	"context"
	"io"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/board/usecase"
	"github.com/stretchr/testify/mock"
)

type MockFeedService struct{ mock.Mock }

func (m *MockFeedService) Bounds() domain.SliderBounds { return domain.DefaultSliderBounds }

func (m *MockFeedService) OpenSession(ctx context.Context, viewer *domain.Viewer, view domain.ViewMode, filters *domain.FilterState, order domain.SortOrder) (*domain.BrowseSession, domain.FeedPage, error) {
	args := m.Called(ctx, viewer, view, filters, order)
	if args.Get(0) == nil {
		return nil, domain.FeedPage{}, args.Error(2)
	}
	return args.Get(0).(*domain.BrowseSession), args.Get(1).(domain.FeedPage), args.Error(2)
}

func (m *MockFeedService) Page(ctx context.Context, viewer *domain.Viewer, sessionID string) (*domain.BrowseSession, domain.FeedPage, error) {
	args := m.Called(ctx, viewer, sessionID)
	if args.Get(0) == nil {
		return nil, domain.FeedPage{}, args.Error(2)
	}
	return args.Get(0).(*domain.BrowseSession), args.Get(1).(domain.FeedPage), args.Error(2)
}

func (m *MockFeedService) Update(ctx context.Context, viewer *domain.Viewer, sessionID string, change usecase.SessionChange) (*domain.BrowseSession, domain.FeedPage, error) {
	args := m.Called(ctx, viewer, sessionID, change)
	if args.Get(0) == nil {
		return nil, domain.FeedPage{}, args.Error(2)
	}
	return args.Get(0).(*domain.BrowseSession), args.Get(1).(domain.FeedPage), args.Error(2)
}

func (m *MockFeedService) GetListing(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockListingService struct{ mock.Mock }

func (m *MockListingService) Create(ctx context.Context, viewer *domain.Viewer, drafts []domain.ListingDraft) (*usecase.CreateResult, error) {
	args := m.Called(ctx, viewer, drafts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateResult), args.Error(1)
}

func (m *MockListingService) Donate(ctx context.Context, viewer *domain.Viewer, draft domain.ListingDraft, amount float64) (*domain.Payment, error) {
	args := m.Called(ctx, viewer, draft, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, viewer *domain.Viewer, id string, draft domain.ListingDraft) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, id, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, viewer *domain.Viewer, id string) error {
	return m.Called(ctx, viewer, id).Error(0)
}

func (m *MockListingService) UploadImage(ctx context.Context, viewer *domain.Viewer, filename string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, viewer, filename, r, size, contentType)
	return args.String(0), args.Error(1)
}

type MockRenewalService struct{ mock.Mock }

func (m *MockRenewalService) Renew(ctx context.Context, viewer *domain.Viewer, id string) (*usecase.RenewResult, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RenewResult), args.Error(1)
}

func (m *MockRenewalService) Relist(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockRenewalService) MarkSold(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) SyncProfile(ctx context.Context, viewer *domain.Viewer, p usecase.Profile) (*domain.User, error) {
	args := m.Called(ctx, viewer, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountService) Me(ctx context.Context, viewer *domain.Viewer) (*domain.User, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountService) ToggleFavorite(ctx context.Context, viewer *domain.Viewer, listingID string) (bool, error) {
	args := m.Called(ctx, viewer, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountService) AddAlert(ctx context.Context, viewer *domain.Viewer, brand, model string) (domain.Alert, error) {
	args := m.Called(ctx, viewer, brand, model)
	return args.Get(0).(domain.Alert), args.Error(1)
}

func (m *MockAccountService) SaveSearch(ctx context.Context, viewer *domain.Viewer, keyword string) (domain.Alert, error) {
	args := m.Called(ctx, viewer, keyword)
	return args.Get(0).(domain.Alert), args.Error(1)
}

func (m *MockAccountService) DeleteAlert(ctx context.Context, viewer *domain.Viewer, alertID string) error {
	return m.Called(ctx, viewer, alertID).Error(0)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) List(ctx context.Context, viewer *domain.Viewer) ([]domain.Notification, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, viewer *domain.Viewer, id string) error {
	return m.Called(ctx, viewer, id).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, viewer *domain.Viewer) error {
	return m.Called(ctx, viewer).Error(0)
}

func (m *MockNotificationService) ClearAll(ctx context.Context, viewer *domain.Viewer) error {
	return m.Called(ctx, viewer).Error(0)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) DeleteListing(ctx context.Context, viewer *domain.Viewer, id string) error {
	return m.Called(ctx, viewer, id).Error(0)
}

func (m *MockAdminService) ToggleBlock(ctx context.Context, viewer *domain.Viewer, userID string) (bool, error) {
	args := m.Called(ctx, viewer, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminService) ListAds(ctx context.Context, viewer *domain.Viewer) ([]*domain.ManagedAd, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ManagedAd), args.Error(1)
}

func (m *MockAdminService) CreateAd(ctx context.Context, viewer *domain.Viewer, ad *domain.ManagedAd) (*domain.ManagedAd, error) {
	args := m.Called(ctx, viewer, ad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagedAd), args.Error(1)
}

func (m *MockAdminService) UpdateAd(ctx context.Context, viewer *domain.Viewer, ad *domain.ManagedAd) (*domain.ManagedAd, error) {
	args := m.Called(ctx, viewer, ad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagedAd), args.Error(1)
}

func (m *MockAdminService) DeleteAd(ctx context.Context, viewer *domain.Viewer, id string) error {
	return m.Called(ctx, viewer, id).Error(0)
}

func (m *MockAdminService) Donations(ctx context.Context, viewer *domain.Viewer) ([]*domain.DonationEntry, domain.DonationSummary, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, domain.DonationSummary{}, args.Error(2)
	}
	return args.Get(0).([]*domain.DonationEntry), args.Get(1).(domain.DonationSummary), args.Error(2)
}

func (m *MockAdminService) RunSweep(ctx context.Context, viewer *domain.Viewer) (usecase.SweepReport, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).(usecase.SweepReport), args.Error(1)
}
