package handler

import (
	"errors"
	"net/http"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/board/usecase"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Feed.GetListing(r.Context(), viewerOf(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := h.decode(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.writeError(w, r, err)
		return
	}
	var filters *domain.FilterState
	if req.Filters != nil {
		f := req.Filters.state(h.svc.Feed.Bounds())
		filters = &f
	}
	s, page, err := h.svc.Feed.OpenSession(r.Context(), viewerOf(r), domain.ViewMode(req.View), filters, domain.SortOrder(req.Sort))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toFeedResponse(s, page, h.svc.Feed.Bounds()))
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	s, page, err := h.svc.Feed.Page(r.Context(), viewerOf(r), chi.URLParam(r, "sid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toFeedResponse(s, page, h.svc.Feed.Bounds()))
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request, change usecase.SessionChange) {
	s, page, err := h.svc.Feed.Update(r.Context(), viewerOf(r), chi.URLParam(r, "sid"), change)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toFeedResponse(s, page, h.svc.Feed.Bounds()))
}

func (h *Handler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersDTO
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.updateSession(w, r, usecase.ApplyFilters(req.state(h.svc.Feed.Bounds())))
}

func (h *Handler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.updateSession(w, r, usecase.ClearFilters())
}

func (h *Handler) SwitchView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.updateSession(w, r, usecase.SwitchView(domain.ViewMode(req.View)))
}

func (h *Handler) ChangeSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.updateSession(w, r, usecase.ChangeSort(domain.SortOrder(req.Sort)))
}

func (h *Handler) ShowMore(w http.ResponseWriter, r *http.Request) {
	h.updateSession(w, r, usecase.ShowMore())
}
