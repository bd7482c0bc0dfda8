package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedUsecase serves browse sessions. Each page is built from a fresh
// snapshot: lifecycle pass first, then filter, sort, paginate and ads.
type FeedUsecase struct {
	listings      domain.ListingRepository
	users         domain.UserRepository
	ads           domain.AdRepository
	sessions      domain.SessionRepository
	cache         domain.SnapshotCache
	lifecycle     *LifecycleUsecase
	notifications *NotificationUsecase
	bounds        domain.SliderBounds
	cacheTTL      time.Duration
	metrics       *metrics.MetricsManager
	logger        *logger.Logger
	now           Clock
	newID         func() string
}

func NewFeedUsecase(
	listings domain.ListingRepository,
	users domain.UserRepository,
	ads domain.AdRepository,
	sessions domain.SessionRepository,
	cache domain.SnapshotCache,
	lifecycle *LifecycleUsecase,
	notifications *NotificationUsecase,
	cacheTTL time.Duration,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *FeedUsecase {
	return &FeedUsecase{
		listings:      listings,
		users:         users,
		ads:           ads,
		sessions:      sessions,
		cache:         cache,
		lifecycle:     lifecycle,
		notifications: notifications,
		bounds:        domain.DefaultSliderBounds,
		cacheTTL:      cacheTTL,
		metrics:       m,
		logger:        log.Named("FeedUsecase"),
		now:           systemClock,
		newID:         uuid.NewString,
	}
}

func (uc *FeedUsecase) Bounds() domain.SliderBounds { return uc.bounds }

// snapshot loads the collection, from cache when possible, and runs the
// lifecycle pass over it before anything else reads it.
func (uc *FeedUsecase) snapshot(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := uc.cache.Get(ctx)
	if err != nil {
		listings, err = uc.listings.FindAll(ctx)
		if err != nil {
			return nil, repoErr(err, "load listings")
		}
		if err := uc.cache.Set(ctx, listings, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to cache listing snapshot", zap.Error(err))
		}
	}
	corrected, _ := uc.lifecycle.Apply(ctx, listings, TriggerFeed)
	return corrected, nil
}

// OpenSession starts a browse session and returns its first page. A signed-in
// viewer counts as a viewer change for expiry reminders.
func (uc *FeedUsecase) OpenSession(ctx context.Context, viewer *domain.Viewer, view domain.ViewMode, filters *domain.FilterState, order domain.SortOrder) (*domain.BrowseSession, domain.FeedPage, error) {
	s := domain.NewBrowseSession(uc.newID(), viewer.ID(), uc.bounds, uc.now())
	if view != "" {
		if !view.IsValid() {
			return nil, domain.FeedPage{}, fmt.Errorf("%w: unknown view %q", domain.ErrInvalidInput, view)
		}
		s.View = view
	}
	if order != "" {
		if !order.IsValid() {
			return nil, domain.FeedPage{}, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, order)
		}
		s.Sort = order
	}
	if filters != nil {
		s.ApplyFilters(*filters)
	}

	if id := viewer.ID(); id != "" {
		if _, err := uc.notifications.OnViewerChange(ctx, id); err != nil {
			uc.logger.Warn("expiry reminders not derived", zap.String("user_id", id), zap.Error(err))
		}
	}
	return uc.saveAndRender(ctx, s)
}

func (uc *FeedUsecase) session(ctx context.Context, viewer *domain.Viewer, id string) (*domain.BrowseSession, error) {
	s, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, repoErr(err, "load session %s", id)
	}
	if s.ViewerID != viewer.ID() {
		return nil, fmt.Errorf("%w: session belongs to another viewer", domain.ErrForbidden)
	}
	return s, nil
}

// SessionChange mutates a session before the page is rebuilt.
type SessionChange func(s *domain.BrowseSession, bounds domain.SliderBounds) error

func ApplyFilters(f domain.FilterState) SessionChange {
	return func(s *domain.BrowseSession, _ domain.SliderBounds) error {
		s.ApplyFilters(f)
		return nil
	}
}

func ClearFilters() SessionChange {
	return func(s *domain.BrowseSession, b domain.SliderBounds) error {
		s.ClearFilters(b)
		return nil
	}
}

func SwitchView(v domain.ViewMode) SessionChange {
	return func(s *domain.BrowseSession, b domain.SliderBounds) error {
		if !v.IsValid() {
			return fmt.Errorf("%w: unknown view %q", domain.ErrInvalidInput, v)
		}
		s.SwitchView(v, b)
		return nil
	}
}

func ChangeSort(o domain.SortOrder) SessionChange {
	return func(s *domain.BrowseSession, _ domain.SliderBounds) error {
		if !o.IsValid() {
			return fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, o)
		}
		s.ChangeSort(o)
		return nil
	}
}

func ShowMore() SessionChange {
	return func(s *domain.BrowseSession, _ domain.SliderBounds) error {
		s.ShowMore()
		return nil
	}
}

// Page rebuilds the current page of a session without changing it.
func (uc *FeedUsecase) Page(ctx context.Context, viewer *domain.Viewer, sessionID string) (*domain.BrowseSession, domain.FeedPage, error) {
	s, err := uc.session(ctx, viewer, sessionID)
	if err != nil {
		return nil, domain.FeedPage{}, err
	}
	page, err := uc.render(ctx, s)
	return s, page, err
}

// Update applies change to the session, saves it and returns the new page.
func (uc *FeedUsecase) Update(ctx context.Context, viewer *domain.Viewer, sessionID string, change SessionChange) (*domain.BrowseSession, domain.FeedPage, error) {
	s, err := uc.session(ctx, viewer, sessionID)
	if err != nil {
		return nil, domain.FeedPage{}, err
	}
	if err := change(s, uc.bounds); err != nil {
		return nil, domain.FeedPage{}, err
	}
	return uc.saveAndRender(ctx, s)
}

func (uc *FeedUsecase) saveAndRender(ctx context.Context, s *domain.BrowseSession) (*domain.BrowseSession, domain.FeedPage, error) {
	s.UpdatedAt = uc.now()
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, domain.FeedPage{}, repoErr(err, "save session %s", s.ID)
	}
	page, err := uc.render(ctx, s)
	return s, page, err
}

func (uc *FeedUsecase) render(ctx context.Context, s *domain.BrowseSession) (domain.FeedPage, error) {
	ctx, span := tracer.Start(ctx, "FeedUsecase.render")
	defer span.End()

	listings, err := uc.snapshot(ctx)
	if err != nil {
		return domain.FeedPage{}, err
	}
	users, err := uc.users.FindAll(ctx)
	if err != nil {
		return domain.FeedPage{}, repoErr(err, "load user directory")
	}
	dir := domain.NewUserDirectory(users)

	var ads []*domain.ManagedAd
	if s.View == domain.ViewAll {
		if ads, err = uc.ads.FindActive(ctx); err != nil {
			uc.logger.Warn("managed ads unavailable, using placeholders", zap.Error(err))
			ads = nil
		}
	}

	q := domain.VisibilityQuery{
		Viewer:  dir[s.ViewerID],
		View:    s.View,
		Filters: s.Filters,
		Users:   dir,
		Bounds:  uc.bounds,
	}
	page := domain.BuildFeed(listings, q, s.Sort, s.Window, ads)
	uc.metrics.FeedRequests.WithLabelValues(string(s.View)).Inc()
	uc.notifications.OnSnapshot(ctx, s.ViewerID, listings)
	return page, nil
}

// GetListing returns one listing if the viewer may see it. Non-live listings
// and listings of blocked sellers are only visible to their owner and admins.
func (uc *FeedUsecase) GetListing(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error) {
	l, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "load listing %s", id)
	}
	c := l.Clone()
	c.Status = domain.EffectiveStatus(l, uc.now())
	if viewer.IsAdmin() || c.IsOwnedBy(viewer.ID()) {
		return c, nil
	}
	if c.Status != domain.StatusLive {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrNotFound, id)
	}
	seller, err := uc.users.FindByID(ctx, c.SellerID)
	if err != nil || seller.IsBlocked {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrNotFound, id)
	}
	return c, nil
}
