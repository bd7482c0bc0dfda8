package usecase

import (
	"context"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const imagePurgeConcurrency = 4

// listingRemover deletes a listing and cleans up everything that refers to it.
type listingRemover struct {
	listings  domain.ListingRepository
	users     domain.UserRepository
	images    domain.ImageStorage
	cache     domain.SnapshotCache
	publisher domain.EventPublisher
	logger    *logger.Logger
}

// remove deletes l. With a non-empty expect the delete only happens while the
// stored status still matches. Image and favorite cleanup is best effort.
func (r *listingRemover) remove(ctx context.Context, l *domain.Listing, expect domain.ListingStatus, subject string) error {
	var err error
	if expect != "" {
		err = r.listings.DeleteWithStatus(ctx, l.ID, expect)
	} else {
		err = r.listings.Delete(ctx, l.ID)
	}
	if err != nil {
		return repoErr(err, "delete listing %s", l.ID)
	}

	r.purgeImages(ctx, l)
	if err := r.users.RemoveFavoriteEverywhere(ctx, l.ID); err != nil {
		r.logger.Warn("failed to drop listing from favorites", zap.String("listing_id", l.ID), zap.Error(err))
	}
	invalidate(ctx, r.cache, r.logger)
	publish(ctx, r.publisher, r.logger, subject, listingPayload(l))
	return nil
}

func (r *listingRemover) purgeImages(ctx context.Context, l *domain.Listing) {
	if r.images == nil || len(l.Images) == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(imagePurgeConcurrency)
	for _, url := range l.Images {
		url := url
		g.Go(func() error {
			if err := r.images.Delete(ctx, url); err != nil {
				r.logger.Warn("failed to delete listing image",
					zap.String("listing_id", l.ID), zap.String("image", url), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
