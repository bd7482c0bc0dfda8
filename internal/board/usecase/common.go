package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("surfdims/usecase")

// Clock returns the current time. Usecases take one so tests can pin it.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// repoErr wraps a storage failure unless it already carries a domain error.
func repoErr(err error, format string, args ...interface{}) error {
	for _, known := range []error{domain.ErrNotFound, domain.ErrConflict, domain.ErrInvalidInput} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrRepository, fmt.Sprintf(format, args...), err)
}

// loadUser resolves the viewer's profile.
func loadUser(ctx context.Context, users domain.UserRepository, viewer *domain.Viewer) (*domain.User, error) {
	if viewer == nil || viewer.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	u, err := users.FindByID(ctx, viewer.UserID)
	if err != nil {
		return nil, repoErr(err, "load user %s", viewer.UserID)
	}
	return u, nil
}

func requireAdmin(viewer *domain.Viewer) error {
	if viewer == nil {
		return domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin() {
		return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
	}
	return nil
}

func listingPayload(l *domain.Listing) map[string]interface{} {
	return map[string]interface{}{
		"listing_id":  l.ID,
		"seller_id":   l.SellerID,
		"status":      string(l.Status),
		"condition":   string(l.Condition),
		"listed_date": l.ListedDate,
		"expires_at":  l.ExpiresAt,
	}
}

// publish sends an event. Bus failures never fail the operation.
func publish(ctx context.Context, pub domain.EventPublisher, log *logger.Logger, subject string, payload interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, subject, payload); err != nil {
		log.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// invalidate drops the cached listing snapshot after a write.
func invalidate(ctx context.Context, cache domain.SnapshotCache, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn("failed to invalidate listing snapshot", zap.Error(err))
	}
}
