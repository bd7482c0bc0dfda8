package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingUsecase handles seller-side listing writes.
type ListingUsecase struct {
	listings  domain.ListingRepository
	users     domain.UserRepository
	images    domain.ImageStorage
	payments  *PaymentUsecase
	cache     domain.SnapshotCache
	publisher domain.EventPublisher
	remover   *listingRemover
	logger    *logger.Logger
	now       Clock
	newID     func() string
}

func NewListingUsecase(
	listings domain.ListingRepository,
	users domain.UserRepository,
	images domain.ImageStorage,
	payments *PaymentUsecase,
	cache domain.SnapshotCache,
	publisher domain.EventPublisher,
	log *logger.Logger,
) *ListingUsecase {
	l := log.Named("ListingUsecase")
	return &ListingUsecase{
		listings:  listings,
		users:     users,
		images:    images,
		payments:  payments,
		cache:     cache,
		publisher: publisher,
		remover: &listingRemover{
			listings: listings, users: users, images: images,
			cache: cache, publisher: publisher, logger: l,
		},
		logger: l,
		now:    systemClock,
		newID:  uuid.NewString,
	}
}

// CreateResult holds the Used boards that went live straight away and, if any
// New boards were submitted, the payment they are waiting on.
type CreateResult struct {
	Listings []*domain.Listing
	Payment  *domain.Payment
}

// Create validates every draft before writing anything. Used boards go live
// immediately; New boards are staged on a payment and inserted once it
// succeeds.
func (uc *ListingUsecase) Create(ctx context.Context, viewer *domain.Viewer, drafts []domain.ListingDraft) (*CreateResult, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Create")
	defer span.End()

	seller, err := loadUser(ctx, uc.users, viewer)
	if err != nil {
		return nil, err
	}
	if err := seller.CanTransact(); err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: at least one board is required", domain.ErrInvalidInput)
	}

	var used, staged []*domain.Listing
	for i, d := range drafts {
		l, err := domain.NewListing(uc.newID(), seller.ID, d)
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i+1, err)
		}
		if l.Condition == domain.ConditionNew {
			staged = append(staged, l)
		} else {
			used = append(used, l)
		}
	}

	res := &CreateResult{}
	if len(used) > 0 {
		now := uc.now()
		for _, l := range used {
			l.Activate(now)
		}
		if err := uc.listings.CreateMany(ctx, used); err != nil {
			uc.logger.Error("failed to store listings", zap.String("seller_id", seller.ID), zap.Error(err))
			return nil, repoErr(err, "create listings")
		}
		res.Listings = used
	}

	// Live boards are stored before the charge is requested.
	if len(staged) > 0 {
		charge := domain.FeeFor(seller.Country, domain.DimensionCount(staged))
		p, err := uc.payments.Start(ctx, &domain.Payment{
			UserID:    seller.ID,
			UserEmail: seller.Email,
			Purpose:   domain.PurposeNewListings,
			Staged:    staged,
			Charge:    charge,
		})
		if err != nil {
			uc.rollback(ctx, used)
			return nil, err
		}
		res.Payment = p
	}

	if len(used) > 0 {
		invalidate(ctx, uc.cache, uc.logger)
		for _, l := range used {
			publish(ctx, uc.publisher, uc.logger, domain.SubjectListingCreated, listingPayload(l))
		}
	}

	uc.logger.Info("listings submitted",
		zap.String("seller_id", seller.ID),
		zap.Int("live", len(used)),
		zap.Int("awaiting_payment", len(staged)))
	return res, nil
}

// rollback deletes boards stored earlier in a batch that then failed.
func (uc *ListingUsecase) rollback(ctx context.Context, stored []*domain.Listing) {
	for _, l := range stored {
		if err := uc.listings.Delete(ctx, l.ID); err != nil {
			uc.logger.Error("failed to roll back listing", zap.String("listing_id", l.ID), zap.Error(err))
		}
	}
}

// Donate lists a Used board together with a giveaway donation. The board and
// the donation entry are only stored once the donation is paid.
func (uc *ListingUsecase) Donate(ctx context.Context, viewer *domain.Viewer, draft domain.ListingDraft, amount float64) (*domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Donate")
	defer span.End()

	seller, err := loadUser(ctx, uc.users, viewer)
	if err != nil {
		return nil, err
	}
	if err := seller.CanTransact(); err != nil {
		return nil, err
	}
	if draft.Condition != domain.ConditionUsed {
		return nil, fmt.Errorf("%w: donations are attached to used boards", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: donation amount must be positive", domain.ErrInvalidInput)
	}
	l, err := domain.NewListing(uc.newID(), seller.ID, draft)
	if err != nil {
		return nil, err
	}
	pricing := domain.PricingFor(seller.Country)
	return uc.payments.Start(ctx, &domain.Payment{
		UserID:    seller.ID,
		UserEmail: seller.Email,
		Purpose:   domain.PurposeDonation,
		Staged:    []*domain.Listing{l},
		Charge:    domain.Charge{Amount: amount, Currency: pricing.Currency, Symbol: pricing.Symbol, Quantity: 1},
	})
}

func (uc *ListingUsecase) ownedListing(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	l, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "load listing %s", id)
	}
	if !l.IsOwnedBy(viewer.UserID) {
		return nil, fmt.Errorf("%w: listing %s belongs to another seller", domain.ErrForbidden, id)
	}
	return l, nil
}

// Update edits the descriptive fields of the viewer's own listing.
func (uc *ListingUsecase) Update(ctx context.Context, viewer *domain.Viewer, id string, draft domain.ListingDraft) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Update")
	defer span.End()

	l, err := uc.ownedListing(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := l.ApplyEdit(draft); err != nil {
		return nil, err
	}
	if err := uc.listings.Update(ctx, l); err != nil {
		return nil, repoErr(err, "update listing %s", id)
	}
	invalidate(ctx, uc.cache, uc.logger)
	publish(ctx, uc.publisher, uc.logger, domain.SubjectListingUpdated, listingPayload(l))
	return l, nil
}

func (uc *ListingUsecase) Delete(ctx context.Context, viewer *domain.Viewer, id string) error {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Delete")
	defer span.End()

	l, err := uc.ownedListing(ctx, viewer, id)
	if err != nil {
		return err
	}
	if err := uc.remover.remove(ctx, l, "", domain.SubjectListingDeleted); err != nil {
		return err
	}
	uc.logger.Info("listing deleted by owner", zap.String("listing_id", id), zap.String("seller_id", l.SellerID))
	return nil
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadImage stores a board photo under the seller's prefix and returns its URL.
func (uc *ListingUsecase) UploadImage(ctx context.Context, viewer *domain.Viewer, filename string, r io.Reader, size int64, contentType string) (string, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.UploadImage")
	defer span.End()

	seller, err := loadUser(ctx, uc.users, viewer)
	if err != nil {
		return "", err
	}
	if err := seller.CanTransact(); err != nil {
		return "", err
	}
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, contentType)
	}
	if e := strings.ToLower(path.Ext(filename)); e == ".jpeg" || e == ext {
		ext = e
	}
	object := path.Join("boards", seller.ID, uc.newID()+ext)
	url, err := uc.images.Upload(ctx, object, r, size, contentType)
	if err != nil {
		uc.logger.Error("image upload failed", zap.String("object", object), zap.Error(err))
		return "", repoErr(err, "upload image")
	}
	return url, nil
}
