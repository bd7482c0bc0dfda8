package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"go.uber.org/zap"
)

// NotificationUsecase derives expiry reminders and manages the stored set.
type NotificationUsecase struct {
	store    domain.NotificationRepository
	listings domain.ListingRepository
	// everySnapshot also derives on each feed build, not only when a viewer
	// is established.
	everySnapshot bool
	metrics       *metrics.MetricsManager
	logger        *logger.Logger
	now           Clock
}

func NewNotificationUsecase(
	store domain.NotificationRepository,
	listings domain.ListingRepository,
	everySnapshot bool,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *NotificationUsecase {
	return &NotificationUsecase{
		store:         store,
		listings:      listings,
		everySnapshot: everySnapshot,
		metrics:       m,
		logger:        log.Named("NotificationUsecase"),
		now:           systemClock,
	}
}

func (uc *NotificationUsecase) stored(ctx context.Context, userID string) ([]domain.Notification, error) {
	ns, err := uc.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repoErr(err, "load notifications for %s", userID)
	}
	return ns, nil
}

// derive merges new reminders for the viewer's listings into the stored set
// and persists only when something was added.
func (uc *NotificationUsecase) derive(ctx context.Context, userID string, listings []*domain.Listing) ([]domain.Notification, error) {
	existing, err := uc.stored(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged, created := domain.DeriveExpiryNotifications(listings, userID, existing, uc.now())
	if len(created) == 0 {
		return merged, nil
	}
	if err := uc.store.Put(ctx, userID, merged); err != nil {
		return nil, repoErr(err, "store notifications for %s", userID)
	}
	uc.metrics.NotificationsIssued.Add(float64(len(created)))
	uc.logger.Info("expiry reminders issued", zap.String("user_id", userID), zap.Int("count", len(created)))
	return merged, nil
}

// OnViewerChange runs when a viewer is established for a session.
func (uc *NotificationUsecase) OnViewerChange(ctx context.Context, userID string) ([]domain.Notification, error) {
	if userID == "" {
		return nil, nil
	}
	own, err := uc.listings.FindBySeller(ctx, userID)
	if err != nil {
		return nil, repoErr(err, "load listings of %s", userID)
	}
	return uc.derive(ctx, userID, domain.Reconcile(own, uc.now()).Listings)
}

// OnSnapshot derives from an already reconciled snapshot when configured to
// follow every snapshot. Failures are logged only.
func (uc *NotificationUsecase) OnSnapshot(ctx context.Context, userID string, listings []*domain.Listing) {
	if !uc.everySnapshot || userID == "" {
		return
	}
	if _, err := uc.derive(ctx, userID, listings); err != nil {
		uc.logger.Warn("snapshot notification derivation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (uc *NotificationUsecase) List(ctx context.Context, viewer *domain.Viewer) ([]domain.Notification, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	ns, err := uc.stored(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	domain.SortNotifications(ns)
	return ns, nil
}

func (uc *NotificationUsecase) MarkRead(ctx context.Context, viewer *domain.Viewer, id string) error {
	ns, err := uc.List(ctx, viewer)
	if err != nil {
		return err
	}
	if !domain.MarkRead(ns, id) {
		return fmt.Errorf("%w: notification %s", domain.ErrNotFound, id)
	}
	return uc.put(ctx, viewer.UserID, ns)
}

func (uc *NotificationUsecase) MarkAllRead(ctx context.Context, viewer *domain.Viewer) error {
	ns, err := uc.List(ctx, viewer)
	if err != nil {
		return err
	}
	if len(ns) == 0 {
		return nil
	}
	domain.MarkAllRead(ns)
	return uc.put(ctx, viewer.UserID, ns)
}

// ClearAll removes the stored record so the next derivation starts fresh.
func (uc *NotificationUsecase) ClearAll(ctx context.Context, viewer *domain.Viewer) error {
	if viewer == nil {
		return domain.ErrUnauthenticated
	}
	if err := uc.store.Delete(ctx, viewer.UserID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return repoErr(err, "clear notifications for %s", viewer.UserID)
	}
	return nil
}

func (uc *NotificationUsecase) put(ctx context.Context, userID string, ns []domain.Notification) error {
	if err := uc.store.Put(ctx, userID, ns); err != nil {
		return repoErr(err, "store notifications for %s", userID)
	}
	return nil
}
