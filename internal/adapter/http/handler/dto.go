package handler

import (
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/board/usecase"
)

type dimensionDTO struct {
	Length    float64 `json:"length" validate:"gt=0"`
	Width     float64 `json:"width" validate:"gt=0"`
	Thickness float64 `json:"thickness" validate:"gt=0"`
	Volume    float64 `json:"volume" validate:"gt=0"`
}

type listingRequest struct {
	Brand       string         `json:"brand" validate:"required,max=80"`
	Model       string         `json:"model" validate:"required,max=80"`
	Description string         `json:"description" validate:"max=4000"`
	Images      []string       `json:"images" validate:"required,min=1,max=12,dive,url"`
	Dimensions  []dimensionDTO `json:"dimensions" validate:"required,min=1,max=20,dive"`
	FinSystem   string         `json:"fin_system" validate:"required"`
	FinSetup    string         `json:"fin_setup" validate:"required"`
	Condition   string         `json:"condition" validate:"required,oneof=New Used"`
	Price       float64        `json:"price" validate:"gte=0"`
	Website     string         `json:"website" validate:"omitempty,url"`
}

func (r listingRequest) draft() domain.ListingDraft {
	dims := make([]domain.Dimension, len(r.Dimensions))
	for i, d := range r.Dimensions {
		dims[i] = domain.Dimension{Length: d.Length, Width: d.Width, Thickness: d.Thickness, Volume: d.Volume}
	}
	return domain.ListingDraft{
		Brand:       r.Brand,
		Model:       r.Model,
		Description: r.Description,
		Images:      r.Images,
		Dimensions:  dims,
		FinSystem:   domain.FinSystem(r.FinSystem),
		FinSetup:    domain.FinSetup(r.FinSetup),
		Condition:   domain.Condition(r.Condition),
		Price:       r.Price,
		Website:     r.Website,
	}
}

type createListingsRequest struct {
	Boards []listingRequest `json:"boards" validate:"required,min=1,max=20,dive"`
}

type donateRequest struct {
	Board  listingRequest `json:"board"`
	Amount float64        `json:"amount" validate:"gt=0"`
}

type listingResponse struct {
	ID          string         `json:"id"`
	SellerID    string         `json:"seller_id"`
	Brand       string         `json:"brand"`
	Model       string         `json:"model"`
	Description string         `json:"description,omitempty"`
	Images      []string       `json:"images"`
	Dimensions  []dimensionDTO `json:"dimensions"`
	FinSystem   string         `json:"fin_system"`
	FinSetup    string         `json:"fin_setup"`
	Condition   string         `json:"condition"`
	Price       float64        `json:"price"`
	Status      string         `json:"status"`
	ListedDate  time.Time      `json:"listed_date"`
	ExpiresAt   time.Time      `json:"expires_at"`
	ExpiredAt   *time.Time     `json:"expired_at,omitempty"`
	IsPaid      bool           `json:"is_paid"`
	Website     string         `json:"website,omitempty"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	dims := make([]dimensionDTO, len(l.Dimensions))
	for i, d := range l.Dimensions {
		dims[i] = dimensionDTO{Length: d.Length, Width: d.Width, Thickness: d.Thickness, Volume: d.Volume}
	}
	return listingResponse{
		ID:          l.ID,
		SellerID:    l.SellerID,
		Brand:       l.Brand,
		Model:       l.Model,
		Description: l.Description,
		Images:      l.Images,
		Dimensions:  dims,
		FinSystem:   string(l.FinSystem),
		FinSetup:    string(l.FinSetup),
		Condition:   string(l.Condition),
		Price:       l.Price,
		Status:      string(l.Status),
		ListedDate:  l.ListedDate,
		ExpiresAt:   l.ExpiresAt,
		ExpiredAt:   l.ExpiredAt,
		IsPaid:      l.IsPaid,
		Website:     l.Website,
	}
}

func toListingResponses(ls []*domain.Listing) []listingResponse {
	out := make([]listingResponse, len(ls))
	for i, l := range ls {
		out[i] = toListingResponse(l)
	}
	return out
}

type paymentResponse struct {
	ID         string   `json:"id"`
	Purpose    string   `json:"purpose"`
	Status     string   `json:"status"`
	Amount     float64  `json:"amount"`
	Currency   string   `json:"currency"`
	Symbol     string   `json:"symbol"`
	Quantity   int      `json:"quantity"`
	ListingIDs []string `json:"listing_ids,omitempty"`
}

func toPaymentResponse(p *domain.Payment) *paymentResponse {
	if p == nil {
		return nil
	}
	ids := append([]string(nil), p.ListingIDs...)
	for _, l := range p.Staged {
		ids = append(ids, l.ID)
	}
	return &paymentResponse{
		ID:         p.ID,
		Purpose:    string(p.Purpose),
		Status:     string(p.Status),
		Amount:     p.Charge.Amount,
		Currency:   p.Charge.Currency,
		Symbol:     p.Charge.Symbol,
		Quantity:   p.Charge.Quantity,
		ListingIDs: ids,
	}
}

type createListingsResponse struct {
	Listings []listingResponse `json:"listings"`
	Payment  *paymentResponse  `json:"payment,omitempty"`
}

type renewResponse struct {
	Listing *listingResponse `json:"listing,omitempty"`
	Payment *paymentResponse `json:"payment,omitempty"`
}

type rangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

func (r *rangeDTO) orDefault(bound domain.Range) domain.Range {
	if r == nil {
		return bound
	}
	return domain.Range{Min: r.Min, Max: r.Max}
}

func fromRange(r domain.Range) *rangeDTO {
	return &rangeDTO{Min: r.Min, Max: r.Max}
}

type filtersDTO struct {
	Keyword   string    `json:"keyword" validate:"max=200"`
	Country   string    `json:"country"`
	FinSystem string    `json:"fin_system"`
	FinSetup  string    `json:"fin_setup"`
	Length    *rangeDTO `json:"length,omitempty"`
	Width     *rangeDTO `json:"width,omitempty"`
	Thickness *rangeDTO `json:"thickness,omitempty"`
	Volume    *rangeDTO `json:"volume,omitempty"`
	SellerID  string    `json:"seller_id,omitempty"`
}

// state fills omitted fields from the defaults.
func (f filtersDTO) state(bounds domain.SliderBounds) domain.FilterState {
	s := domain.DefaultFilters(bounds)
	s.Keyword = f.Keyword
	if f.Country != "" {
		s.Country = f.Country
	}
	if f.FinSystem != "" {
		s.FinSystem = f.FinSystem
	}
	if f.FinSetup != "" {
		s.FinSetup = f.FinSetup
	}
	s.Length = f.Length.orDefault(bounds.Length)
	s.Width = f.Width.orDefault(bounds.Width)
	s.Thickness = f.Thickness.orDefault(bounds.Thickness)
	s.Volume = f.Volume.orDefault(bounds.Volume)
	s.SellerID = f.SellerID
	return s
}

func toFiltersDTO(s domain.FilterState) filtersDTO {
	return filtersDTO{
		Keyword:   s.Keyword,
		Country:   s.Country,
		FinSystem: s.FinSystem,
		FinSetup:  s.FinSetup,
		Length:    fromRange(s.Length),
		Width:     fromRange(s.Width),
		Thickness: fromRange(s.Thickness),
		Volume:    fromRange(s.Volume),
		SellerID:  s.SellerID,
	}
}

type openSessionRequest struct {
	View    string      `json:"view" validate:"omitempty,oneof=all favs myListings"`
	Filters *filtersDTO `json:"filters"`
	Sort    string      `json:"sort" validate:"omitempty,oneof=date_desc date_asc price_asc price_desc"`
}

type viewRequest struct {
	View string `json:"view" validate:"required,oneof=all favs myListings"`
}

type sortRequest struct {
	Sort string `json:"sort" validate:"required,oneof=date_desc date_asc price_asc price_desc"`
}

type sessionDTO struct {
	ID      string     `json:"id"`
	View    string     `json:"view"`
	Filters filtersDTO `json:"filters"`
	Sort    string     `json:"sort"`
	Visible int        `json:"visible"`
}

type adDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LinkURL  string `json:"link_url"`
	ImageURL string `json:"image_url"`
	IsActive bool   `json:"is_active"`
}

func toAdDTO(a *domain.ManagedAd) *adDTO {
	if a == nil {
		return nil
	}
	return &adDTO{ID: a.ID, Name: a.Name, LinkURL: a.LinkURL, ImageURL: a.ImageURL, IsActive: a.IsActive}
}

type adSlotDTO struct {
	SlotID string `json:"slot_id"`
	Ad     *adDTO `json:"ad,omitempty"`
}

type feedItemDTO struct {
	Kind    string           `json:"kind"`
	Listing *listingResponse `json:"listing,omitempty"`
	Slot    *adSlotDTO       `json:"slot,omitempty"`
}

type boundsDTO struct {
	Length    rangeDTO `json:"length"`
	Width     rangeDTO `json:"width"`
	Thickness rangeDTO `json:"thickness"`
	Volume    rangeDTO `json:"volume"`
}

type feedResponse struct {
	Session sessionDTO    `json:"session"`
	Items   []feedItemDTO `json:"items"`
	Total   int           `json:"total"`
	HasMore bool          `json:"has_more"`
	Bounds  boundsDTO     `json:"bounds"`
}

func toFeedResponse(s *domain.BrowseSession, page domain.FeedPage, b domain.SliderBounds) feedResponse {
	items := make([]feedItemDTO, 0, len(page.Items))
	for _, it := range page.Items {
		dto := feedItemDTO{Kind: string(it.Kind)}
		if it.Listing != nil {
			l := toListingResponse(it.Listing)
			dto.Listing = &l
		}
		if it.Slot != nil {
			dto.Slot = &adSlotDTO{SlotID: it.Slot.ID, Ad: toAdDTO(it.Slot.Ad)}
		}
		items = append(items, dto)
	}
	return feedResponse{
		Session: sessionDTO{
			ID:      s.ID,
			View:    string(s.View),
			Filters: toFiltersDTO(s.Filters),
			Sort:    string(s.Sort),
			Visible: s.Window.Visible,
		},
		Items:   items,
		Total:   page.Total,
		HasMore: page.HasMore,
		Bounds: boundsDTO{
			Length:    *fromRange(b.Length),
			Width:     *fromRange(b.Width),
			Thickness: *fromRange(b.Thickness),
			Volume:    *fromRange(b.Volume),
		},
	}
}

type profileRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email"`
	Location   string `json:"location" validate:"max=120"`
	Country    string `json:"country" validate:"required,len=2,alpha"`
	IsVerified bool   `json:"is_verified"`
}

func (r profileRequest) profile() usecase.Profile {
	return usecase.Profile{
		Name:       r.Name,
		Email:      r.Email,
		Location:   r.Location,
		Country:    r.Country,
		IsVerified: r.IsVerified,
	}
}

type alertDTO struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

type userResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Location   string     `json:"location,omitempty"`
	Country    string     `json:"country"`
	Favs       []string   `json:"favs"`
	Alerts     []alertDTO `json:"alerts"`
	IsVerified bool       `json:"is_verified"`
	IsBlocked  bool       `json:"is_blocked"`
	Role       string     `json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	alerts := make([]alertDTO, len(u.Alerts))
	for i, a := range u.Alerts {
		alerts[i] = alertDTO{ID: a.ID, Brand: a.Brand, Model: a.Model}
	}
	favs := u.Favs
	if favs == nil {
		favs = []string{}
	}
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Location:   u.Location,
		Country:    u.Country,
		Favs:       favs,
		Alerts:     alerts,
		IsVerified: u.IsVerified,
		IsBlocked:  u.IsBlocked,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
	}
}

type alertRequest struct {
	Brand string `json:"brand" validate:"required,max=80"`
	Model string `json:"model" validate:"max=80"`
}

type searchRequest struct {
	Keyword string `json:"keyword" validate:"required,max=200"`
}

type notificationDTO struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationDTOs(ns []domain.Notification) []notificationDTO {
	out := make([]notificationDTO, len(ns))
	for i, n := range ns {
		out[i] = notificationDTO{ID: n.ID, BoardID: n.BoardID, Message: n.Message, IsRead: n.IsRead, CreatedAt: n.CreatedAt}
	}
	return out
}

type adRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	LinkURL  string `json:"link_url" validate:"required,url"`
	ImageURL string `json:"image_url" validate:"required,url"`
	IsActive bool   `json:"is_active"`
}

func (r adRequest) ad(id string) *domain.ManagedAd {
	return &domain.ManagedAd{ID: id, Name: r.Name, LinkURL: r.LinkURL, ImageURL: r.ImageURL, IsActive: r.IsActive}
}

type donationEntryDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	Entries   int       `json:"entries"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
}

type donationsResponse struct {
	Entries []donationEntryDTO `json:"entries"`
	Summary struct {
		TotalEntries int     `json:"total_entries"`
		TotalAmount  float64 `json:"total_amount"`
		Participants int     `json:"participants"`
	} `json:"summary"`
}

type sweepResponse struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Removed int `json:"removed"`
	Skipped int `json:"skipped"`
}
