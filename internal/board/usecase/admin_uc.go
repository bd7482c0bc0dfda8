package usecase

import (
	"context"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminUsecase holds moderation and promotion management operations.
type AdminUsecase struct {
	listings  domain.ListingRepository
	users     domain.UserRepository
	ads       domain.AdRepository
	donations domain.DonationRepository
	lifecycle *LifecycleUsecase
	publisher domain.EventPublisher
	remover   *listingRemover
	logger    *logger.Logger
	newID     func() string
}

func NewAdminUsecase(
	listings domain.ListingRepository,
	users domain.UserRepository,
	ads domain.AdRepository,
	donations domain.DonationRepository,
	images domain.ImageStorage,
	lifecycle *LifecycleUsecase,
	cache domain.SnapshotCache,
	publisher domain.EventPublisher,
	log *logger.Logger,
) *AdminUsecase {
	l := log.Named("AdminUsecase")
	return &AdminUsecase{
		listings:  listings,
		users:     users,
		ads:       ads,
		donations: donations,
		lifecycle: lifecycle,
		publisher: publisher,
		remover: &listingRemover{
			listings: listings, users: users, images: images,
			cache: cache, publisher: publisher, logger: l,
		},
		logger: l,
		newID:  uuid.NewString,
	}
}

func (uc *AdminUsecase) DeleteListing(ctx context.Context, viewer *domain.Viewer, id string) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	l, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return repoErr(err, "load listing %s", id)
	}
	if err := uc.remover.remove(ctx, l, "", domain.SubjectListingDeleted); err != nil {
		return err
	}
	uc.logger.Info("listing deleted by admin", zap.String("listing_id", id), zap.String("admin_id", viewer.UserID))
	return nil
}

// ToggleBlock flips a user's block flag and returns the new value.
func (uc *AdminUsecase) ToggleBlock(ctx context.Context, viewer *domain.Viewer, userID string) (bool, error) {
	if err := requireAdmin(viewer); err != nil {
		return false, err
	}
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return false, repoErr(err, "load user %s", userID)
	}
	blocked := !u.IsBlocked
	if err := uc.users.SetBlocked(ctx, userID, blocked); err != nil {
		return false, repoErr(err, "update block flag of %s", userID)
	}
	publish(ctx, uc.publisher, uc.logger, domain.SubjectUserBlocked, map[string]interface{}{
		"user_id": userID,
		"blocked": blocked,
	})
	uc.logger.Info("user block toggled", zap.String("user_id", userID), zap.Bool("blocked", blocked))
	return blocked, nil
}

func (uc *AdminUsecase) ListAds(ctx context.Context, viewer *domain.Viewer) ([]*domain.ManagedAd, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	ads, err := uc.ads.FindAll(ctx)
	if err != nil {
		return nil, repoErr(err, "list ads")
	}
	return ads, nil
}

func (uc *AdminUsecase) CreateAd(ctx context.Context, viewer *domain.Viewer, ad *domain.ManagedAd) (*domain.ManagedAd, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	if err := ad.Validate(); err != nil {
		return nil, err
	}
	ad.ID = uc.newID()
	if err := uc.ads.Create(ctx, ad); err != nil {
		return nil, repoErr(err, "create ad")
	}
	return ad, nil
}

func (uc *AdminUsecase) UpdateAd(ctx context.Context, viewer *domain.Viewer, ad *domain.ManagedAd) (*domain.ManagedAd, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	if err := ad.Validate(); err != nil {
		return nil, err
	}
	if err := uc.ads.Update(ctx, ad); err != nil {
		return nil, repoErr(err, "update ad %s", ad.ID)
	}
	return ad, nil
}

func (uc *AdminUsecase) DeleteAd(ctx context.Context, viewer *domain.Viewer, id string) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	if err := uc.ads.Delete(ctx, id); err != nil {
		return repoErr(err, "delete ad %s", id)
	}
	return nil
}

func (uc *AdminUsecase) Donations(ctx context.Context, viewer *domain.Viewer) ([]*domain.DonationEntry, domain.DonationSummary, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, domain.DonationSummary{}, err
	}
	entries, err := uc.donations.FindAll(ctx)
	if err != nil {
		return nil, domain.DonationSummary{}, repoErr(err, "list donations")
	}
	return entries, domain.SummarizeDonations(entries), nil
}

func (uc *AdminUsecase) RunSweep(ctx context.Context, viewer *domain.Viewer) (SweepReport, error) {
	if err := requireAdmin(viewer); err != nil {
		return SweepReport{}, err
	}
	return uc.lifecycle.Sweep(ctx, TriggerManual)
}
