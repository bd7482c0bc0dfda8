package mongodb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

var testDB *mongo.Database

// TestMain starts a throwaway MongoDB. Without Docker the tests skip.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker unavailable, skipping mongo integration tests: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start mongo: %s", err)
	}
	_ = resource.Expire(120)

	uri := fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp"))
	var client *mongo.Client
	if err := pool.Retry(func() error {
		var errRetry error
		client, errRetry = NewMongoClient(context.Background(), uri)
		return errRetry
	}); err != nil {
		log.Fatalf("could not connect to mongo: %s", err)
	}
	testDB = client.Database("surfdims_test")

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("could not purge mongo: %s", err)
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testDB == nil {
		t.Skip("mongo not available")
	}
	t.Cleanup(func() { _ = testDB.Drop(context.Background()) })
	return testDB
}

var baseTime = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func storedListing(id string, status domain.ListingStatus) *domain.Listing {
	return &domain.Listing{
		ID:         id,
		SellerID:   "alice",
		Brand:      "Sharp Eye",
		Model:      "Inferno",
		Images:     []string{"https://img.example.com/" + id + ".jpg"},
		Dimensions: []domain.Dimension{{Length: 5.8, Width: 18.75, Thickness: 2.3, Volume: 27}},
		FinSystem:  domain.FinSystemFCSII,
		FinSetup:   domain.FinSetupThruster,
		Condition:  domain.ConditionUsed,
		Price:      650,
		Status:     status,
		ListedDate: baseTime,
		ExpiresAt:  baseTime.Add(domain.UsedListingLifetime),
	}
}

func TestListingRepository_GuardedWrites(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo, err := NewListingRepository(ctx, db, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, repo.CreateMany(ctx, []*domain.Listing{storedListing("l1", domain.StatusLive), storedListing("l2", domain.StatusExpired)}))
	assert.ErrorIs(t, repo.Create(ctx, storedListing("l1", domain.StatusLive)), domain.ErrConflict)

	expired := storedListing("l1", domain.StatusExpired)
	stamp := baseTime.Add(91 * domain.Day)
	expired.ExpiredAt = &stamp
	require.NoError(t, repo.UpdateFields(ctx, "l1", domain.StatusLive, domain.LifecycleUpdate(expired)))
	assert.ErrorIs(t, repo.UpdateFields(ctx, "l1", domain.StatusLive, domain.LifecycleUpdate(expired)), domain.ErrConflict)
	assert.ErrorIs(t, repo.UpdateFields(ctx, "nope", domain.StatusLive, domain.LifecycleUpdate(expired)), domain.ErrNotFound)

	got, err := repo.FindByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)
	require.NotNil(t, got.ExpiredAt)
	assert.True(t, got.ExpiredAt.Equal(stamp))

	got.Activate(baseTime.Add(100 * domain.Day))
	require.NoError(t, repo.UpdateFields(ctx, "l1", domain.StatusExpired, domain.LifecycleUpdate(got)))
	got, err = repo.FindByID(ctx, "l1")
	require.NoError(t, err)
	assert.Nil(t, got.ExpiredAt, "renewal clears the expiry stamp")

	assert.ErrorIs(t, repo.DeleteWithStatus(ctx, "l1", domain.StatusExpired), domain.ErrConflict)
	require.NoError(t, repo.DeleteWithStatus(ctx, "l2", domain.StatusExpired))
	_, err = repo.FindByID(ctx, "l2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mine, err := repo.FindBySeller(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestUserRepository_Favorites(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo, err := NewUserRepository(ctx, db, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, &domain.User{ID: "u1", Email: "u1@example.com", Favs: []string{"l1", "l2"}, Role: domain.RoleUser, CreatedAt: baseTime}))
	require.NoError(t, repo.Upsert(ctx, &domain.User{ID: "u2", Email: "u2@example.com", Favs: []string{"l1"}, CreatedAt: baseTime}))

	require.NoError(t, repo.RemoveFavoriteEverywhere(ctx, "l1"))
	u1, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"l2"}, u1.Favs)
	u2, err := repo.FindByID(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, u2.Favs)
	assert.Equal(t, domain.RoleUser, u2.Role)

	require.NoError(t, repo.SetBlocked(ctx, "u2", true))
	assert.ErrorIs(t, repo.SetBlocked(ctx, "ghost", true), domain.ErrNotFound)
	require.NoError(t, repo.SetAlerts(ctx, "u1", []domain.Alert{{ID: "a1", Brand: "JS"}}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestPaymentRepository_ResolveOnce(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo := NewPaymentRepository(db)

	p := &domain.Payment{
		ID:        "p1",
		UserID:    "u1",
		Purpose:   domain.PurposeNewListings,
		Staged:    []*domain.Listing{storedListing("staged-1", "")},
		Charge:    domain.FeeFor("FR", 1),
		Status:    domain.PaymentPending,
		CreatedAt: baseTime,
	}
	require.NoError(t, repo.Create(ctx, p))

	loaded, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, loaded.Staged, 1)
	assert.Equal(t, "staged-1", loaded.Staged[0].ID)
	assert.Equal(t, "EUR", loaded.Charge.Currency)

	require.NoError(t, loaded.Resolve(true, baseTime.Add(time.Minute)))
	require.NoError(t, repo.MarkResolved(ctx, loaded))
	assert.ErrorIs(t, repo.MarkResolved(ctx, loaded), domain.ErrConflict)
}
