package usecase

import (
	"context"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"go.uber.org/zap"
)

// RenewalUsecase handles renew, relist and mark-as-sold.
type RenewalUsecase struct {
	listings  domain.ListingRepository
	users     domain.UserRepository
	payments  *PaymentUsecase
	cache     domain.SnapshotCache
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
	now       Clock
}

func NewRenewalUsecase(
	listings domain.ListingRepository,
	users domain.UserRepository,
	payments *PaymentUsecase,
	cache domain.SnapshotCache,
	publisher domain.EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *RenewalUsecase {
	return &RenewalUsecase{
		listings:  listings,
		users:     users,
		payments:  payments,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("RenewalUsecase"),
		now:       systemClock,
	}
}

// RenewResult carries the listing as stored after the call and, for paid
// renewals, the pending payment. A paid renewal leaves the listing untouched.
type RenewResult struct {
	Listing *domain.Listing
	Payment *domain.Payment
}

func (uc *RenewalUsecase) load(ctx context.Context, viewer *domain.Viewer, id string) (*domain.User, *domain.Listing, error) {
	u, err := loadUser(ctx, uc.users, viewer)
	if err != nil {
		return nil, nil, err
	}
	l, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, nil, repoErr(err, "load listing %s", id)
	}
	return u, l, nil
}

// save writes the lifecycle fields, guarded on the status the listing was read with.
func (uc *RenewalUsecase) save(ctx context.Context, l *domain.Listing, expect domain.ListingStatus, subject, kind string) error {
	if err := uc.listings.UpdateFields(ctx, l.ID, expect, domain.LifecycleUpdate(l)); err != nil {
		return repoErr(err, "update listing %s", l.ID)
	}
	invalidate(ctx, uc.cache, uc.logger)
	publish(ctx, uc.publisher, uc.logger, subject, listingPayload(l))
	uc.metrics.Renewals.WithLabelValues(kind).Inc()
	uc.logger.Info("listing lifecycle action", zap.String("kind", kind), zap.String("listing_id", l.ID))
	return nil
}

func (uc *RenewalUsecase) Renew(ctx context.Context, viewer *domain.Viewer, id string) (*RenewResult, error) {
	ctx, span := tracer.Start(ctx, "RenewalUsecase.Renew")
	defer span.End()

	u, l, err := uc.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	plan, err := domain.PlanRenewal(l, u, now)
	if err != nil {
		return nil, err
	}

	if plan.RequiresPayment {
		p, err := uc.payments.Start(ctx, &domain.Payment{
			UserID:     u.ID,
			UserEmail:  u.Email,
			Purpose:    domain.PurposeRenewal,
			ListingIDs: []string{l.ID},
			Charge:     plan.Charge,
		})
		if err != nil {
			return nil, err
		}
		uc.metrics.Renewals.WithLabelValues("renew_paid").Inc()
		return &RenewResult{Listing: l, Payment: p}, nil
	}

	expect := l.Status
	l.Activate(now)
	if err := uc.save(ctx, l, expect, domain.SubjectListingRenewed, "renew_free"); err != nil {
		return nil, err
	}
	return &RenewResult{Listing: l}, nil
}

func (uc *RenewalUsecase) Relist(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error) {
	u, l, err := uc.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Relist(l, u, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, l, domain.StatusSold, domain.SubjectListingRelisted, "relist"); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *RenewalUsecase) MarkSold(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error) {
	u, l, err := uc.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := domain.MarkSold(l, u, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, l, domain.StatusLive, domain.SubjectListingSold, "sold"); err != nil {
		return nil, err
	}
	return l, nil
}
