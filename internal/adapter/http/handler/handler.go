package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/LuqmanKt98/surfdims/internal/adapter/http/middleware"
	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/board/usecase"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

type FeedService interface {
	Bounds() domain.SliderBounds
	OpenSession(ctx context.Context, viewer *domain.Viewer, view domain.ViewMode, filters *domain.FilterState, order domain.SortOrder) (*domain.BrowseSession, domain.FeedPage, error)
	Page(ctx context.Context, viewer *domain.Viewer, sessionID string) (*domain.BrowseSession, domain.FeedPage, error)
	Update(ctx context.Context, viewer *domain.Viewer, sessionID string, change usecase.SessionChange) (*domain.BrowseSession, domain.FeedPage, error)
	GetListing(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error)
}

type ListingService interface {
	Create(ctx context.Context, viewer *domain.Viewer, drafts []domain.ListingDraft) (*usecase.CreateResult, error)
	Donate(ctx context.Context, viewer *domain.Viewer, draft domain.ListingDraft, amount float64) (*domain.Payment, error)
	Update(ctx context.Context, viewer *domain.Viewer, id string, draft domain.ListingDraft) (*domain.Listing, error)
	Delete(ctx context.Context, viewer *domain.Viewer, id string) error
	UploadImage(ctx context.Context, viewer *domain.Viewer, filename string, r io.Reader, size int64, contentType string) (string, error)
}

type RenewalService interface {
	Renew(ctx context.Context, viewer *domain.Viewer, id string) (*usecase.RenewResult, error)
	Relist(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error)
	MarkSold(ctx context.Context, viewer *domain.Viewer, id string) (*domain.Listing, error)
}

type AccountService interface {
	SyncProfile(ctx context.Context, viewer *domain.Viewer, p usecase.Profile) (*domain.User, error)
	Me(ctx context.Context, viewer *domain.Viewer) (*domain.User, error)
	ToggleFavorite(ctx context.Context, viewer *domain.Viewer, listingID string) (bool, error)
	AddAlert(ctx context.Context, viewer *domain.Viewer, brand, model string) (domain.Alert, error)
	SaveSearch(ctx context.Context, viewer *domain.Viewer, keyword string) (domain.Alert, error)
	DeleteAlert(ctx context.Context, viewer *domain.Viewer, alertID string) error
}

type NotificationService interface {
	List(ctx context.Context, viewer *domain.Viewer) ([]domain.Notification, error)
	MarkRead(ctx context.Context, viewer *domain.Viewer, id string) error
	MarkAllRead(ctx context.Context, viewer *domain.Viewer) error
	ClearAll(ctx context.Context, viewer *domain.Viewer) error
}

type AdminService interface {
	DeleteListing(ctx context.Context, viewer *domain.Viewer, id string) error
	ToggleBlock(ctx context.Context, viewer *domain.Viewer, userID string) (bool, error)
	ListAds(ctx context.Context, viewer *domain.Viewer) ([]*domain.ManagedAd, error)
	CreateAd(ctx context.Context, viewer *domain.Viewer, ad *domain.ManagedAd) (*domain.ManagedAd, error)
	UpdateAd(ctx context.Context, viewer *domain.Viewer, ad *domain.ManagedAd) (*domain.ManagedAd, error)
	DeleteAd(ctx context.Context, viewer *domain.Viewer, id string) error
	Donations(ctx context.Context, viewer *domain.Viewer) ([]*domain.DonationEntry, domain.DonationSummary, error)
	RunSweep(ctx context.Context, viewer *domain.Viewer) (usecase.SweepReport, error)
}

// Services bundles what the handlers call into.
type Services struct {
	Feed          FeedService
	Listings      ListingService
	Renewals      RenewalService
	Accounts      AccountService
	Notifications NotificationService
	Admin         AdminService
}

type Handler struct {
	svc      Services
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHandler(svc Services, log *logger.Logger) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log.Named("HTTPHandler"),
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func viewerOf(r *http.Request) *domain.Viewer {
	return middleware.ViewerFrom(r.Context())
}

// decode reads a JSON body and runs struct validation on it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return &requestError{msg: "body is not valid json: " + err.Error()}
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &requestError{msg: "field " + fe.Namespace() + " failed " + fe.Tag() + " validation"}
		}
		return &requestError{msg: err.Error()}
	}
	return nil
}

var errEmptyBody = &requestError{msg: "request body is empty"}

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// statusFor maps usecase errors onto HTTP statuses.
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotVerified), errors.Is(err, domain.ErrBlocked):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		msg = "internal error"
	} else {
		h.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}
