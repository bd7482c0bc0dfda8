package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AdminDeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Admin.DeleteListing(r.Context(), viewerOf(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blocked, err := h.svc.Admin.ToggleBlock(r.Context(), viewerOf(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"user_id": id, "blocked": blocked})
}

func (h *Handler) ListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.svc.Admin.ListAds(r.Context(), viewerOf(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]*adDTO, len(ads))
	for i, a := range ads {
		out[i] = toAdDTO(a)
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var req adRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	ad, err := h.svc.Admin.CreateAd(r.Context(), viewerOf(r), req.ad(""))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toAdDTO(ad))
}

func (h *Handler) UpdateAd(w http.ResponseWriter, r *http.Request) {
	var req adRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	ad, err := h.svc.Admin.UpdateAd(r.Context(), viewerOf(r), req.ad(chi.URLParam(r, "id")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAdDTO(ad))
}

func (h *Handler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Admin.DeleteAd(r.Context(), viewerOf(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Donations(w http.ResponseWriter, r *http.Request) {
	entries, summary, err := h.svc.Admin.Donations(r.Context(), viewerOf(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var out donationsResponse
	out.Entries = make([]donationEntryDTO, len(entries))
	for i, e := range entries {
		out.Entries[i] = donationEntryDTO{
			ID:        e.ID,
			UserID:    e.UserID,
			UserEmail: e.UserEmail,
			Entries:   e.Entries,
			Amount:    e.Amount,
			Date:      e.Date,
		}
	}
	out.Summary.TotalEntries = summary.TotalEntries
	out.Summary.TotalAmount = summary.TotalAmount
	out.Summary.Participants = summary.Participants
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) RunSweep(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Admin.RunSweep(r.Context(), viewerOf(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sweepResponse{
		Scanned: rep.Scanned,
		Expired: rep.Expired,
		Removed: rep.Removed,
		Skipped: rep.Skipped,
	})
}
