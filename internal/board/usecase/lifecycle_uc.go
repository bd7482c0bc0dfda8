package usecase

import (
	"context"
	"errors"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Lifecycle pass triggers, used as a metrics label.
const (
	TriggerSweep  = "sweep"
	TriggerFeed   = "feed"
	TriggerManual = "manual"
)

// SweepReport summarises one persisted lifecycle pass.
type SweepReport struct {
	Scanned int
	Expired int
	Removed int
	Skipped int
}

// LifecycleUsecase runs the lifecycle clock over stored listings and persists
// the corrections with targeted, status-guarded writes.
type LifecycleUsecase struct {
	listings  domain.ListingRepository
	cache     domain.SnapshotCache
	publisher domain.EventPublisher
	remover   *listingRemover
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
	now       Clock
}

func NewLifecycleUsecase(
	listings domain.ListingRepository,
	users domain.UserRepository,
	images domain.ImageStorage,
	cache domain.SnapshotCache,
	publisher domain.EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *LifecycleUsecase {
	l := log.Named("LifecycleUsecase")
	return &LifecycleUsecase{
		listings:  listings,
		cache:     cache,
		publisher: publisher,
		remover: &listingRemover{
			listings: listings, users: users, images: images,
			cache: cache, publisher: publisher, logger: l,
		},
		metrics: m,
		logger:  l,
		now:     systemClock,
	}
}

// Apply reconciles a loaded snapshot and writes back only what changed. A
// failed write is logged and the corrected in-memory view is still returned.
func (uc *LifecycleUsecase) Apply(ctx context.Context, listings []*domain.Listing, trigger string) ([]*domain.Listing, SweepReport) {
	ctx, span := tracer.Start(ctx, "LifecycleUsecase.Apply")
	defer span.End()

	now := uc.now()
	r := domain.Reconcile(listings, now)
	report := SweepReport{Scanned: len(listings)}

	for _, l := range r.Expired {
		err := uc.listings.UpdateFields(ctx, l.ID, domain.StatusLive, domain.LifecycleUpdate(l))
		switch {
		case err == nil:
			report.Expired++
			uc.metrics.ListingsExpired.Inc()
			publish(ctx, uc.publisher, uc.logger, domain.SubjectListingExpired, listingPayload(l))
		case errors.Is(err, domain.ErrConflict):
			report.Skipped++
			uc.logger.Debug("listing changed before expiry was written", zap.String("listing_id", l.ID))
		default:
			report.Skipped++
			uc.logger.Warn("failed to persist expiry", zap.String("listing_id", l.ID), zap.Error(err))
		}
	}

	for _, l := range r.Removed {
		err := uc.remover.remove(ctx, l, l.Status, domain.SubjectListingRemoved)
		switch {
		case err == nil:
			report.Removed++
			uc.metrics.ListingsRemoved.Inc()
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
			report.Skipped++
			uc.logger.Debug("listing changed before removal", zap.String("listing_id", l.ID))
		default:
			report.Skipped++
			uc.logger.Warn("failed to remove expired listing", zap.String("listing_id", l.ID), zap.Error(err))
		}
	}

	outcome := "unchanged"
	if r.Changed() {
		invalidate(ctx, uc.cache, uc.logger)
		outcome = "changed"
		uc.logger.Info("lifecycle pass corrected listings",
			zap.String("trigger", trigger),
			zap.Int("expired", report.Expired),
			zap.Int("removed", report.Removed),
			zap.Int("skipped", report.Skipped))
	}
	uc.metrics.LifecycleSweeps.WithLabelValues(trigger, outcome).Inc()
	span.SetAttributes(
		attribute.Int("lifecycle.scanned", report.Scanned),
		attribute.Int("lifecycle.expired", report.Expired),
		attribute.Int("lifecycle.removed", report.Removed),
	)
	return r.Listings, report
}

// Sweep loads the whole collection and runs one persisted pass.
func (uc *LifecycleUsecase) Sweep(ctx context.Context, trigger string) (SweepReport, error) {
	listings, err := uc.listings.FindAll(ctx)
	if err != nil {
		uc.metrics.LifecycleSweeps.WithLabelValues(trigger, "error").Inc()
		return SweepReport{}, repoErr(err, "load listings for sweep")
	}
	_, report := uc.Apply(ctx, listings, trigger)
	return report, nil
}
