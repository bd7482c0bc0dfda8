package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountUsecase covers the viewer's own profile, favorites and alerts.
type AccountUsecase struct {
	users    domain.UserRepository
	listings domain.ListingRepository
	logger   *logger.Logger
	now      Clock
	newID    func() string
}

func NewAccountUsecase(users domain.UserRepository, listings domain.ListingRepository, log *logger.Logger) *AccountUsecase {
	return &AccountUsecase{
		users:    users,
		listings: listings,
		logger:   log.Named("AccountUsecase"),
		now:      systemClock,
		newID:    uuid.NewString,
	}
}

// Profile is what the identity provider tells us about the viewer.
type Profile struct {
	Name       string
	Email      string
	Location   string
	Country    string
	IsVerified bool
}

// SyncProfile creates or refreshes the viewer's user record. Favorites,
// alerts, role and block state are kept.
func (uc *AccountUsecase) SyncProfile(ctx context.Context, viewer *domain.Viewer, p Profile) (*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	u, err := uc.users.FindByID(ctx, viewer.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		u = &domain.User{ID: viewer.UserID, Role: domain.RoleUser, CreatedAt: uc.now()}
	case err != nil:
		return nil, repoErr(err, "load user %s", viewer.UserID)
	}
	u.Name = strings.TrimSpace(p.Name)
	u.Email = strings.TrimSpace(p.Email)
	u.Location = strings.TrimSpace(p.Location)
	u.Country = strings.ToUpper(strings.TrimSpace(p.Country))
	u.IsVerified = p.IsVerified
	if err := uc.users.Upsert(ctx, u); err != nil {
		return nil, repoErr(err, "save user %s", u.ID)
	}
	return u, nil
}

func (uc *AccountUsecase) Me(ctx context.Context, viewer *domain.Viewer) (*domain.User, error) {
	return loadUser(ctx, uc.users, viewer)
}

// ToggleFavorite flips the listing in the viewer's favorites and reports
// whether it is now a favorite.
func (uc *AccountUsecase) ToggleFavorite(ctx context.Context, viewer *domain.Viewer, listingID string) (bool, error) {
	u, err := loadUser(ctx, uc.users, viewer)
	if err != nil {
		return false, err
	}
	if err := u.CanTransact(); err != nil {
		return false, err
	}
	if !u.HasFavorite(listingID) {
		if _, err := uc.listings.FindByID(ctx, listingID); err != nil {
			return false, repoErr(err, "load listing %s", listingID)
		}
	}
	fav := u.ToggleFavorite(listingID)
	if err := uc.users.SetFavs(ctx, u.ID, u.Favs); err != nil {
		return false, repoErr(err, "save favorites of %s", u.ID)
	}
	uc.logger.Debug("favorite toggled", zap.String("user_id", u.ID), zap.String("listing_id", listingID), zap.Bool("favorite", fav))
	return fav, nil
}

func (uc *AccountUsecase) AddAlert(ctx context.Context, viewer *domain.Viewer, brand, model string) (domain.Alert, error) {
	u, err := loadUser(ctx, uc.users, viewer)
	if err != nil {
		return domain.Alert{}, err
	}
	if err := u.CanTransact(); err != nil {
		return domain.Alert{}, err
	}
	alert, err := u.AddAlert(uc.newID, brand, model)
	if err != nil {
		return domain.Alert{}, err
	}
	if err := uc.users.SetAlerts(ctx, u.ID, u.Alerts); err != nil {
		return domain.Alert{}, repoErr(err, "save alerts of %s", u.ID)
	}
	return alert, nil
}

// SaveSearch stores the current keyword as a brand-only alert.
func (uc *AccountUsecase) SaveSearch(ctx context.Context, viewer *domain.Viewer, keyword string) (domain.Alert, error) {
	return uc.AddAlert(ctx, viewer, keyword, "")
}

func (uc *AccountUsecase) DeleteAlert(ctx context.Context, viewer *domain.Viewer, alertID string) error {
	u, err := loadUser(ctx, uc.users, viewer)
	if err != nil {
		return err
	}
	if err := u.RemoveAlert(alertID); err != nil {
		return err
	}
	if err := uc.users.SetAlerts(ctx, u.ID, u.Alerts); err != nil {
		return repoErr(err, "save alerts of %s", u.ID)
	}
	return nil
}
