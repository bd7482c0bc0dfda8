package mongodb

import (
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
)

// Documents use the domain's string ids as _id. Listing ids are assigned
// before insert so a retried insert collides instead of duplicating.

type dimensionDocument struct {
	Length    float64 `bson:"length"`
	Width     float64 `bson:"width"`
	Thickness float64 `bson:"thickness"`
	Volume    float64 `bson:"volume"`
}

type listingDocument struct {
	ID          string              `bson:"_id"`
	SellerID    string              `bson:"seller_id"`
	Brand       string              `bson:"brand"`
	Model       string              `bson:"model"`
	Description string              `bson:"description,omitempty"`
	Images      []string            `bson:"images"`
	Dimensions  []dimensionDocument `bson:"dimensions"`
	FinSystem   string              `bson:"fin_system"`
	FinSetup    string              `bson:"fin_setup"`
	Condition   string              `bson:"condition"`
	Price       float64             `bson:"price"`
	Status      string              `bson:"status"`
	ListedDate  time.Time           `bson:"listed_date"`
	ExpiresAt   time.Time           `bson:"expires_at"`
	ExpiredAt   *time.Time          `bson:"expired_at,omitempty"`
	IsPaid      bool                `bson:"is_paid"`
	Website     string              `bson:"website,omitempty"`
}

func toListingDocument(l *domain.Listing) *listingDocument {
	dims := make([]dimensionDocument, len(l.Dimensions))
	for i, d := range l.Dimensions {
		dims[i] = dimensionDocument{Length: d.Length, Width: d.Width, Thickness: d.Thickness, Volume: d.Volume}
	}
	return &listingDocument{
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
		ListedDate:  l.ListedDate.UTC(),
		ExpiresAt:   l.ExpiresAt.UTC(),
		ExpiredAt:   l.ExpiredAt,
		IsPaid:      l.IsPaid,
		Website:     l.Website,
	}
}

func toDomainListing(d *listingDocument) *domain.Listing {
	dims := make([]domain.Dimension, len(d.Dimensions))
	for i, x := range d.Dimensions {
		dims[i] = domain.Dimension{Length: x.Length, Width: x.Width, Thickness: x.Thickness, Volume: x.Volume}
	}
	l := &domain.Listing{
		ID:          d.ID,
		SellerID:    d.SellerID,
		Brand:       d.Brand,
		Model:       d.Model,
		Description: d.Description,
		Images:      d.Images,
		Dimensions:  dims,
		FinSystem:   domain.FinSystem(d.FinSystem),
		FinSetup:    domain.FinSetup(d.FinSetup),
		Condition:   domain.Condition(d.Condition),
		Price:       d.Price,
		Status:      domain.ListingStatus(d.Status),
		ListedDate:  d.ListedDate.UTC(),
		ExpiresAt:   d.ExpiresAt.UTC(),
		IsPaid:      d.IsPaid,
		Website:     d.Website,
	}
	if d.ExpiredAt != nil {
		t := d.ExpiredAt.UTC()
		l.ExpiredAt = &t
	}
	return l
}

func toDomainListings(docs []listingDocument) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(docs))
	for i := range docs {
		out = append(out, toDomainListing(&docs[i]))
	}
	return out
}

type alertDocument struct {
	ID    string `bson:"id"`
	Brand string `bson:"brand"`
	Model string `bson:"model,omitempty"`
}

type userDocument struct {
	ID         string          `bson:"_id"`
	Name       string          `bson:"name"`
	Email      string          `bson:"email"`
	Location   string          `bson:"location,omitempty"`
	Country    string          `bson:"country"`
	Favs       []string        `bson:"favs"`
	Alerts     []alertDocument `bson:"alerts"`
	IsVerified bool            `bson:"is_verified"`
	IsBlocked  bool            `bson:"is_blocked"`
	Role       string          `bson:"role"`
	CreatedAt  time.Time       `bson:"created_at"`
}

func toAlertDocuments(alerts []domain.Alert) []alertDocument {
	out := make([]alertDocument, len(alerts))
	for i, a := range alerts {
		out[i] = alertDocument{ID: a.ID, Brand: a.Brand, Model: a.Model}
	}
	return out
}

func toUserDocument(u *domain.User) *userDocument {
	favs := u.Favs
	if favs == nil {
		favs = []string{}
	}
	return &userDocument{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Location:   u.Location,
		Country:    u.Country,
		Favs:       favs,
		Alerts:     toAlertDocuments(u.Alerts),
		IsVerified: u.IsVerified,
		IsBlocked:  u.IsBlocked,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt.UTC(),
	}
}

func toDomainUser(d *userDocument) *domain.User {
	alerts := make([]domain.Alert, len(d.Alerts))
	for i, a := range d.Alerts {
		alerts[i] = domain.Alert{ID: a.ID, Brand: a.Brand, Model: a.Model}
	}
	role := domain.Role(d.Role)
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Location:   d.Location,
		Country:    d.Country,
		Favs:       d.Favs,
		Alerts:     alerts,
		IsVerified: d.IsVerified,
		IsBlocked:  d.IsBlocked,
		Role:       role,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

type chargeDocument struct {
	Amount   float64 `bson:"amount"`
	Currency string  `bson:"currency"`
	Symbol   string  `bson:"symbol"`
	Quantity int     `bson:"quantity"`
}

type paymentDocument struct {
	ID         string            `bson:"_id"`
	UserID     string            `bson:"user_id"`
	UserEmail  string            `bson:"user_email"`
	Purpose    string            `bson:"purpose"`
	ListingIDs []string          `bson:"listing_ids,omitempty"`
	Staged     []listingDocument `bson:"staged,omitempty"`
	Charge     chargeDocument    `bson:"charge"`
	Status     string            `bson:"status"`
	CreatedAt  time.Time         `bson:"created_at"`
	ResolvedAt *time.Time        `bson:"resolved_at,omitempty"`
}

func toPaymentDocument(p *domain.Payment) *paymentDocument {
	staged := make([]listingDocument, 0, len(p.Staged))
	for _, l := range p.Staged {
		staged = append(staged, *toListingDocument(l))
	}
	return &paymentDocument{
		ID:         p.ID,
		UserID:     p.UserID,
		UserEmail:  p.UserEmail,
		Purpose:    string(p.Purpose),
		ListingIDs: p.ListingIDs,
		Staged:     staged,
		Charge: chargeDocument{
			Amount:   p.Charge.Amount,
			Currency: p.Charge.Currency,
			Symbol:   p.Charge.Symbol,
			Quantity: p.Charge.Quantity,
		},
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt.UTC(),
		ResolvedAt: p.ResolvedAt,
	}
}

func toDomainPayment(d *paymentDocument) *domain.Payment {
	p := &domain.Payment{
		ID:         d.ID,
		UserID:     d.UserID,
		UserEmail:  d.UserEmail,
		Purpose:    domain.PaymentPurpose(d.Purpose),
		ListingIDs: d.ListingIDs,
		Staged:     toDomainListings(d.Staged),
		Charge: domain.Charge{
			Amount:   d.Charge.Amount,
			Currency: d.Charge.Currency,
			Symbol:   d.Charge.Symbol,
			Quantity: d.Charge.Quantity,
		},
		Status:    domain.PaymentStatus(d.Status),
		CreatedAt: d.CreatedAt.UTC(),
	}
	if d.ResolvedAt != nil {
		t := d.ResolvedAt.UTC()
		p.ResolvedAt = &t
	}
	return p
}

type adDocument struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	LinkURL  string `bson:"link_url"`
	ImageURL string `bson:"image_url"`
	IsActive bool   `bson:"is_active"`
}

func toAdDocument(a *domain.ManagedAd) *adDocument {
	return &adDocument{ID: a.ID, Name: a.Name, LinkURL: a.LinkURL, ImageURL: a.ImageURL, IsActive: a.IsActive}
}

func toDomainAd(d *adDocument) *domain.ManagedAd {
	return &domain.ManagedAd{ID: d.ID, Name: d.Name, LinkURL: d.LinkURL, ImageURL: d.ImageURL, IsActive: d.IsActive}
}

type donationDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	UserEmail string    `bson:"user_email"`
	Entries   int       `bson:"entries"`
	Amount    float64   `bson:"amount"`
	Date      time.Time `bson:"date"`
}

func toDonationDocument(e *domain.DonationEntry) *donationDocument {
	return &donationDocument{ID: e.ID, UserID: e.UserID, UserEmail: e.UserEmail, Entries: e.Entries, Amount: e.Amount, Date: e.Date.UTC()}
}

func toDomainDonation(d *donationDocument) *domain.DonationEntry {
	return &domain.DonationEntry{ID: d.ID, UserID: d.UserID, UserEmail: d.UserEmail, Entries: d.Entries, Amount: d.Amount, Date: d.Date.UTC()}
}
