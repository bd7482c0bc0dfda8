package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/redis/go-redis/v9"
)

const notificationKeyPrefix = "notifications:"

// NotificationRepository keeps each user's notifications as one JSON value
// without expiry.
type NotificationRepository struct {
	client redis.Cmdable
}

func NewNotificationRepository(client redis.Cmdable) *NotificationRepository {
	return &NotificationRepository{client: client}
}

func (r *NotificationRepository) Get(ctx context.Context, userID string) ([]domain.Notification, error) {
	data, err := r.client.Get(ctx, notificationKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: notifications for %s", domain.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications for %s: %w", userID, err)
	}
	var ns []domain.Notification
	if err := json.Unmarshal(data, &ns); err != nil {
		return nil, fmt.Errorf("failed to decode notifications for %s: %w", userID, err)
	}
	return ns, nil
}

func (r *NotificationRepository) Put(ctx context.Context, userID string, notifications []domain.Notification) error {
	data, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("failed to encode notifications for %s: %w", userID, err)
	}
	if err := r.client.Set(ctx, notificationKeyPrefix+userID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store notifications for %s: %w", userID, err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID string) error {
	n, err := r.client.Del(ctx, notificationKeyPrefix+userID).Result()
	if err != nil {
		return fmt.Errorf("failed to clear notifications for %s: %w", userID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: notifications for %s", domain.ErrNotFound, userID)
	}
	return nil
}
