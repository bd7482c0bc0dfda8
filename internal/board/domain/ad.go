package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ManagedAd is an admin-curated sponsor shown in feed ad slots.
type ManagedAd struct {
	ID       string
	Name     string
	LinkURL  string
	ImageURL string
	IsActive bool
}

func (a *ManagedAd) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: ad name is required", ErrInvalidInput)
	}
	for _, raw := range []string{a.LinkURL, a.ImageURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q is not an absolute url", ErrInvalidInput, raw)
		}
	}
	return nil
}
