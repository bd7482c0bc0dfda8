package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Accounts.Me(r.Context(), viewerOf(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) SyncProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.svc.Accounts.SyncProfile(r.Context(), viewerOf(r), req.profile())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fav, err := h.svc.Accounts.ToggleFavorite(r.Context(), viewerOf(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"listing_id": id, "favorite": fav})
}

func (h *Handler) AddAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.svc.Accounts.AddAlert(r.Context(), viewerOf(r), req.Brand, req.Model)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, alertDTO{ID: a.ID, Brand: a.Brand, Model: a.Model})
}

func (h *Handler) SaveSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.svc.Accounts.SaveSearch(r.Context(), viewerOf(r), req.Keyword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, alertDTO{ID: a.ID, Brand: a.Brand, Model: a.Model})
}

func (h *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Accounts.DeleteAlert(r.Context(), viewerOf(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ns, err := h.svc.Notifications.List(r.Context(), viewerOf(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toNotificationDTOs(ns))
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Notifications.MarkRead(r.Context(), viewerOf(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Notifications.MarkAllRead(r.Context(), viewerOf(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Notifications.ClearAll(r.Context(), viewerOf(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
