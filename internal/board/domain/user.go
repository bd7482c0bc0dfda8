package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Alert struct {
	ID    string
	Brand string
	Model string
}

type User struct {
	ID         string
	Name       string
	Email      string
	Location   string
	Country    string
	Favs       []string
	Alerts     []Alert
	IsVerified bool
	IsBlocked  bool
	Role       Role
	CreatedAt  time.Time
}

// Viewer is the resolved identity of the caller. A nil *Viewer is anonymous.
type Viewer struct {
	UserID string
	Role   Role
}

func (v *Viewer) ID() string {
	if v == nil {
		return ""
	}
	return v.UserID
}

func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Role == RoleAdmin
}

// CanTransact reports whether the user may list boards, favorite or save alerts.
func (u *User) CanTransact() error {
	if u.IsBlocked {
		return ErrBlocked
	}
	if !u.IsVerified {
		return ErrNotVerified
	}
	return nil
}

func (u *User) HasFavorite(listingID string) bool {
	for _, id := range u.Favs {
		if id == listingID {
			return true
		}
	}
	return false
}

// ToggleFavorite adds or removes listingID and reports whether it is now a favorite.
func (u *User) ToggleFavorite(listingID string) bool {
	for i, id := range u.Favs {
		if id == listingID {
			u.Favs = append(u.Favs[:i:i], u.Favs[i+1:]...)
			return false
		}
	}
	u.Favs = append(u.Favs, listingID)
	return true
}

// AddAlert appends an alert unless an alert with the same brand and model
// already exists, compared case-insensitively. newID is only called once
// the alert is accepted.
func (u *User) AddAlert(newID func() string, brand, model string) (Alert, error) {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	if brand == "" {
		return Alert{}, fmt.Errorf("%w: alert brand is required", ErrInvalidInput)
	}
	for _, a := range u.Alerts {
		if strings.EqualFold(a.Brand, brand) && strings.EqualFold(a.Model, model) {
			return Alert{}, fmt.Errorf("%w: alert for %s %s already exists", ErrConflict, brand, model)
		}
	}
	alert := Alert{ID: newID(), Brand: brand, Model: model}
	u.Alerts = append(u.Alerts, alert)
	return alert, nil
}

func (u *User) RemoveAlert(alertID string) error {
	for i, a := range u.Alerts {
		if a.ID == alertID {
			u.Alerts = append(u.Alerts[:i:i], u.Alerts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: alert %s", ErrNotFound, alertID)
}

// UserDirectory resolves sellers by id.
type UserDirectory map[string]*User

func NewUserDirectory(users []*User) UserDirectory {
	dir := make(UserDirectory, len(users))
	for _, u := range users {
		dir[u.ID] = u
	}
	return dir
}
