package handler

import (
	"fmt"
	"net/http"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	maxImageSize   = 10 << 20
	imageFormField = "image"
)

func (h *Handler) CreateListings(w http.ResponseWriter, r *http.Request) {
	var req createListingsRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	drafts := make([]domain.ListingDraft, len(req.Boards))
	for i, b := range req.Boards {
		drafts[i] = b.draft()
	}
	res, err := h.svc.Listings.Create(r.Context(), viewerOf(r), drafts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusCreated
	if res.Payment != nil {
		status = http.StatusAccepted
	}
	h.writeJSON(w, status, createListingsResponse{
		Listings: toListingResponses(res.Listings),
		Payment:  toPaymentResponse(res.Payment),
	})
}

func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	l, err := h.svc.Listings.Update(r.Context(), viewerOf(r), chi.URLParam(r, "id"), req.draft())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Listings.Delete(r.Context(), viewerOf(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RenewListing(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Renewals.Renew(r.Context(), viewerOf(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := renewResponse{Payment: toPaymentResponse(res.Payment)}
	if res.Listing != nil {
		l := toListingResponse(res.Listing)
		out.Listing = &l
	}
	status := http.StatusOK
	if res.Payment != nil {
		status = http.StatusAccepted
	}
	h.writeJSON(w, status, out)
}

func (h *Handler) RelistListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Renewals.Relist(r.Context(), viewerOf(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) MarkSold(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Renewals.MarkSold(r.Context(), viewerOf(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) Donate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.Listings.Donate(r.Context(), viewerOf(r), req.Board.draft(), req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, toPaymentResponse(p))
}

// UploadImage takes one multipart file in the "image" field.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(1<<20))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		h.writeError(w, r, &requestError{msg: fmt.Sprintf("image must be a multipart upload of at most %d MB", maxImageSize>>20)})
		return
	}
	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		h.writeError(w, r, &requestError{msg: "missing form file \"" + imageFormField + "\""})
		return
	}
	defer file.Close()

	url, err := h.svc.Listings.UploadImage(r.Context(), viewerOf(r), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Debug("image stored", zap.String("url", url), zap.Int64("size", header.Size))
	h.writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
