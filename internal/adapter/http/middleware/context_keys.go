package middleware

import (
	"context"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
)

// ContextKey is the type of keys this package stores in a request context.
type ContextKey string

// ViewerCtxKey holds the authenticated *domain.Viewer.
const ViewerCtxKey = ContextKey("viewer")

func WithViewer(ctx context.Context, v *domain.Viewer) context.Context {
	return context.WithValue(ctx, ViewerCtxKey, v)
}

// ViewerFrom returns the viewer set by the auth middleware, or nil for an
// anonymous request.
func ViewerFrom(ctx context.Context) *domain.Viewer {
	v, _ := ctx.Value(ViewerCtxKey).(*domain.Viewer)
	return v
}
