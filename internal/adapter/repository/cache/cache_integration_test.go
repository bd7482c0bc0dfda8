package cache

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClient *redis.Client

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker unavailable, skipping redis integration tests: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start redis: %s", err)
	}
	_ = resource.Expire(120)

	if err := pool.Retry(func() error {
		var errRetry error
		testClient, errRetry = NewRedisClient(context.Background(), resource.GetHostPort("6379/tcp"), "", 0)
		return errRetry
	}); err != nil {
		log.Fatalf("could not connect to redis: %s", err)
	}

	code := m.Run()

	_ = testClient.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("could not purge redis: %s", err)
	}
	os.Exit(code)
}

func requireRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testClient == nil {
		t.Skip("redis not available")
	}
	t.Cleanup(func() { testClient.FlushDB(context.Background()) })
	return testClient
}

func TestListingCache(t *testing.T) {
	c := NewListingCache(requireRedis(t))
	ctx := context.Background()

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	expired := listed.Add(91 * domain.Day)
	in := []*domain.Listing{{ID: "a", SellerID: "s", Status: domain.StatusExpired, ListedDate: listed, ExpiredAt: &expired}}
	require.NoError(t, c.Set(ctx, in, time.Minute))

	out, err := c.Get(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
	assert.True(t, out[0].ExpiredAt.Equal(expired))

	require.NoError(t, c.Invalidate(ctx))
	_, err = c.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(requireRedis(t), time.Hour)
	ctx := context.Background()

	s := domain.NewBrowseSession("s1", "alice", domain.DefaultSliderBounds, time.Now().UTC())
	s.ShowMore()
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2*domain.PageSize, got.Window.Visible)
	assert.Equal(t, domain.DefaultFilters(domain.DefaultSliderBounds), got.Filters)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationRepository(t *testing.T) {
	repo := NewNotificationRepository(requireRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "alice", []domain.Notification{{ID: "n1", BoardID: "b1", Message: "hi"}}))
	ns, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "n1", ns[0].ID)

	require.NoError(t, repo.Delete(ctx, "alice"))
	assert.ErrorIs(t, repo.Delete(ctx, "alice"), domain.ErrNotFound)
}
