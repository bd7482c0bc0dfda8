package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentUsecase starts charges and applies their asynchronous outcome.
// Nothing becomes Live until the processor confirms the charge.
type PaymentUsecase struct {
	payments  domain.PaymentRepository
	listings  domain.ListingRepository
	donations domain.DonationRepository
	gateway   domain.PaymentGateway
	cache     domain.SnapshotCache
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
	now       Clock
	newID     func() string
}

func NewPaymentUsecase(
	payments domain.PaymentRepository,
	listings domain.ListingRepository,
	donations domain.DonationRepository,
	gateway domain.PaymentGateway,
	cache domain.SnapshotCache,
	publisher domain.EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		payments:  payments,
		listings:  listings,
		donations: donations,
		gateway:   gateway,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("PaymentUsecase"),
		now:       systemClock,
		newID:     uuid.NewString,
	}
}

// Start stores a pending payment and asks the processor to charge it. If the
// processor cannot be reached the payment is closed as failed and the
// caller gets the error; no listing state has been touched at that point.
func (uc *PaymentUsecase) Start(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentUsecase.Start")
	defer span.End()

	if p.Charge.MinorUnits() <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput)
	}
	p.ID = uc.newID()
	p.Status = domain.PaymentPending
	p.CreatedAt = uc.now()

	if err := uc.payments.Create(ctx, p); err != nil {
		uc.logger.Error("failed to store payment", zap.String("user_id", p.UserID), zap.Error(err))
		return nil, repoErr(err, "create payment")
	}
	if err := uc.gateway.RequestCharge(ctx, p); err != nil {
		uc.logger.Error("charge request failed", zap.String("payment_id", p.ID), zap.Error(err))
		if rerr := p.Resolve(false, uc.now()); rerr == nil {
			if merr := uc.payments.MarkResolved(ctx, p); merr != nil {
				uc.logger.Warn("failed to close unreachable payment", zap.String("payment_id", p.ID), zap.Error(merr))
			}
		}
		return nil, fmt.Errorf("%w: payment processor unavailable: %v", domain.ErrRepository, err)
	}

	uc.logger.Info("payment requested",
		zap.String("payment_id", p.ID),
		zap.String("purpose", string(p.Purpose)),
		zap.Float64("amount", p.Charge.Amount),
		zap.String("currency", p.Charge.Currency))
	return p, nil
}

// Resolve applies a processor outcome. The outcome is applied before the
// payment is closed, and every step tolerates having run already, so a
// redelivered result is harmless.
func (uc *PaymentUsecase) Resolve(ctx context.Context, result domain.PaymentResult) error {
	ctx, span := tracer.Start(ctx, "PaymentUsecase.Resolve")
	defer span.End()

	log := uc.logger.With(zap.String("payment_id", result.PaymentID), zap.Bool("succeeded", result.Succeeded))
	p, err := uc.payments.FindByID(ctx, result.PaymentID)
	if err != nil {
		return repoErr(err, "load payment %s", result.PaymentID)
	}
	if p.IsResolved() {
		log.Info("ignoring outcome for resolved payment", zap.String("status", string(p.Status)))
		return nil
	}

	switch p.Purpose {
	case domain.PurposeRenewal:
		err = uc.resolveRenewal(ctx, p, result.Succeeded)
	case domain.PurposeNewListings, domain.PurposeDonation:
		if result.Succeeded {
			err = uc.commitStaged(ctx, p)
		} else {
			log.Info("payment failed, staged listings discarded", zap.String("reason", result.Reason))
		}
	default:
		err = fmt.Errorf("%w: unknown payment purpose %q", domain.ErrInvalidInput, p.Purpose)
	}
	if err != nil {
		log.Error("failed to apply payment outcome", zap.Error(err))
		return err
	}

	if err := p.Resolve(result.Succeeded, uc.now()); err != nil {
		return nil
	}
	if err := uc.payments.MarkResolved(ctx, p); err != nil && !errors.Is(err, domain.ErrConflict) {
		return repoErr(err, "resolve payment %s", p.ID)
	}

	outcome := "failed"
	if result.Succeeded {
		outcome = "succeeded"
	}
	uc.metrics.Payments.WithLabelValues(string(p.Purpose), outcome).Inc()
	invalidate(ctx, uc.cache, uc.logger)
	log.Info("payment resolved", zap.String("purpose", string(p.Purpose)))
	return nil
}

func (uc *PaymentUsecase) resolveRenewal(ctx context.Context, p *domain.Payment, succeeded bool) error {
	now := uc.now()
	for _, id := range p.ListingIDs {
		l, err := uc.listings.FindByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("renewed listing no longer exists", zap.String("listing_id", id))
			continue
		}
		if err != nil {
			return repoErr(err, "load renewed listing %s", id)
		}
		expect := l.Status
		subject := domain.SubjectListingRenewed
		switch {
		case succeeded && domain.EffectiveStatus(l, now) == domain.StatusLive:
			continue
		case succeeded:
			l.ConfirmRenewal(now)
		case expect == domain.StatusPaymentFailed:
			continue
		default:
			l.FailRenewal()
			subject = domain.SubjectListingUpdated
		}
		err = uc.listings.UpdateFields(ctx, id, expect, domain.LifecycleUpdate(l))
		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Info("listing changed while payment was pending", zap.String("listing_id", id))
			continue
		}
		if err != nil {
			return repoErr(err, "apply renewal outcome to %s", id)
		}
		publish(ctx, uc.publisher, uc.logger, subject, listingPayload(l))
	}
	return nil
}

// commitStaged inserts the boards held by a paid payment. Staged boards
// carry their ids from the start, so a second insert reports a conflict
// instead of duplicating them.
func (uc *PaymentUsecase) commitStaged(ctx context.Context, p *domain.Payment) error {
	now := uc.now()
	for _, l := range p.Staged {
		l.Activate(now)
		l.IsPaid = p.Purpose == domain.PurposeNewListings
	}
	if len(p.Staged) > 0 {
		err := uc.listings.CreateMany(ctx, p.Staged)
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return repoErr(err, "insert paid listings")
		}
		if err == nil {
			for _, l := range p.Staged {
				publish(ctx, uc.publisher, uc.logger, domain.SubjectListingCreated, listingPayload(l))
			}
		}
	}
	if p.Purpose == domain.PurposeDonation {
		entry := &domain.DonationEntry{
			ID:        "donation-" + p.ID,
			UserID:    p.UserID,
			UserEmail: p.UserEmail,
			Entries:   domain.EntriesFor(p.Charge.Amount),
			Amount:    p.Charge.Amount,
			Date:      now,
		}
		if err := uc.donations.Create(ctx, entry); err != nil && !errors.Is(err, domain.ErrConflict) {
			return repoErr(err, "record donation")
		}
	}
	return nil
}
