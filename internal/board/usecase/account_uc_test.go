package usecase

import (
	"context"
	"testing"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountUsecase_SyncProfile(t *testing.T) {
	t.Run("creates missing user", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
		f.users.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		u, err := f.account().SyncProfile(context.Background(), &domain.Viewer{UserID: "u1"}, Profile{
			Name: " Kai ", Email: "kai@example.com", Country: "nz", IsVerified: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "Kai", u.Name)
		assert.Equal(t, "NZ", u.Country)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.Equal(t, testNow, u.CreatedAt)
	})

	t.Run("keeps favorites and moderation state", func(t *testing.T) {
		f := newFixture()
		existing := seller("u1")
		existing.Favs = []string{"b1"}
		existing.IsBlocked = true
		existing.Role = domain.RoleAdmin
		f.users.On("FindByID", mock.Anything, "u1").Return(existing, nil)
		f.users.On("Upsert", mock.Anything, existing).Return(nil)

		u, err := f.account().SyncProfile(context.Background(), &domain.Viewer{UserID: "u1"}, Profile{Name: "New Name"})

		require.NoError(t, err)
		assert.Equal(t, []string{"b1"}, u.Favs)
		assert.True(t, u.IsBlocked)
		assert.Equal(t, domain.RoleAdmin, u.Role)
	})
}

func TestAccountUsecase_ToggleFavorite(t *testing.T) {
	f := newFixture()
	alice := seller("alice")
	f.users.On("FindByID", mock.Anything, "alice").Return(alice, nil)
	f.listings.On("FindByID", mock.Anything, "b1").Return(board("b1", "bob", domain.ConditionUsed, domain.StatusLive, domain.Day), nil).Once()
	f.listings.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	f.users.On("SetFavs", mock.Anything, "alice", mock.Anything).Return(nil)
	uc := f.account()

	fav, err := uc.ToggleFavorite(context.Background(), viewerOf(alice), "b1")
	require.NoError(t, err)
	assert.True(t, fav)

	fav, err = uc.ToggleFavorite(context.Background(), viewerOf(alice), "b1")
	require.NoError(t, err)
	assert.False(t, fav, "removing does not need the listing to exist")

	_, err = uc.ToggleFavorite(context.Background(), viewerOf(alice), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.listings.AssertExpectations(t)
}

func TestAccountUsecase_FavoriteRequiresVerification(t *testing.T) {
	f := newFixture()
	carol := seller("carol")
	carol.IsVerified = false
	f.users.On("FindByID", mock.Anything, "carol").Return(carol, nil)

	_, err := f.account().ToggleFavorite(context.Background(), viewerOf(carol), "b1")

	assert.ErrorIs(t, err, domain.ErrNotVerified)
	f.users.AssertNotCalled(t, "SetFavs", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountUsecase_Alerts(t *testing.T) {
	f := newFixture()
	alice := seller("alice")
	f.users.On("FindByID", mock.Anything, "alice").Return(alice, nil)
	f.users.On("SetAlerts", mock.Anything, "alice", mock.Anything).Return(nil)
	uc := f.account()

	a, err := uc.AddAlert(context.Background(), viewerOf(alice), "Channel Islands", "Fever")
	require.NoError(t, err)
	assert.Equal(t, "alert-1", a.ID)

	_, err = uc.AddAlert(context.Background(), viewerOf(alice), "channel islands", "FEVER")
	assert.ErrorIs(t, err, domain.ErrConflict)

	saved, err := uc.SaveSearch(context.Background(), viewerOf(alice), "firewire")
	require.NoError(t, err)
	assert.Equal(t, domain.Alert{ID: "alert-2", Brand: "firewire"}, saved)

	require.NoError(t, uc.DeleteAlert(context.Background(), viewerOf(alice), "alert-1"))
	assert.ErrorIs(t, uc.DeleteAlert(context.Background(), viewerOf(alice), "alert-1"), domain.ErrNotFound)
	assert.Len(t, alice.Alerts, 1)
}
