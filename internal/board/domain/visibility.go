package domain

import "strings"

// All is the "no restriction" value of the country and fin selectors.
const All = "All"

type ViewMode string

const (
	ViewAll        ViewMode = "all"
	ViewFavorites  ViewMode = "favs"
	ViewMyListings ViewMode = "myListings"
)

func (v ViewMode) IsValid() bool {
	return v == ViewAll || v == ViewFavorites || v == ViewMyListings
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64
	Max float64
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// narrows reports whether r is tighter than the full bounds.
func (r Range) narrows(bounds Range) bool {
	return r.Min > bounds.Min || r.Max < bounds.Max
}

// SliderBounds are the full ranges of the dimension sliders.
type SliderBounds struct {
	Length    Range
	Width     Range
	Thickness Range
	Volume    Range
}

var DefaultSliderBounds = SliderBounds{
	Length:    Range{Min: 4, Max: 12},
	Width:     Range{Min: 17, Max: 25},
	Thickness: Range{Min: 1.5, Max: 4},
	Volume:    Range{Min: 15, Max: 100},
}

type FilterState struct {
	// Keyword is whitespace-separated; every token must match.
	Keyword   string
	Country   string
	FinSystem string
	FinSetup  string
	Length    Range
	Width     Range
	Thickness Range
	Volume    Range
	// SellerID pins the results to one seller.
	SellerID string
}

// DefaultFilters is the cleared filter state for the given bounds.
func DefaultFilters(bounds SliderBounds) FilterState {
	return FilterState{
		Country:   All,
		FinSystem: All,
		FinSetup:  All,
		Length:    bounds.Length,
		Width:     bounds.Width,
		Thickness: bounds.Thickness,
		Volume:    bounds.Volume,
	}
}

// Cleared resets everything except the country selection.
func (f FilterState) Cleared(bounds SliderBounds) FilterState {
	c := DefaultFilters(bounds)
	if f.Country != "" {
		c.Country = f.Country
	}
	return c
}

func isAll(v string) bool {
	return v == "" || v == All
}

type dimensionMatcher struct {
	checks []func(Dimension) bool
}

func newDimensionMatcher(f FilterState, b SliderBounds) dimensionMatcher {
	var m dimensionMatcher
	add := func(r, bound Range, field func(Dimension) float64) {
		if r.narrows(bound) {
			m.checks = append(m.checks, func(d Dimension) bool { return r.contains(field(d)) })
		}
	}
	add(f.Length, b.Length, func(d Dimension) float64 { return d.Length })
	add(f.Width, b.Width, func(d Dimension) float64 { return d.Width })
	add(f.Thickness, b.Thickness, func(d Dimension) float64 { return d.Thickness })
	add(f.Volume, b.Volume, func(d Dimension) float64 { return d.Volume })
	return m
}

// match requires one dimension row to satisfy every active range at once.
func (m dimensionMatcher) match(dims []Dimension) bool {
	if len(m.checks) == 0 {
		return true
	}
	for _, d := range dims {
		ok := true
		for _, check := range m.checks {
			if !check(d) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func keywordTokens(keyword string) []string {
	return strings.Fields(strings.ToLower(keyword))
}

func matchesKeywords(l *Listing, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(l.Brand + " " + l.Model + " " + l.Description)
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

// VisibilityQuery is everything the visibility filter needs besides listings.
type VisibilityQuery struct {
	Viewer  *User
	View    ViewMode
	Filters FilterState
	Users   UserDirectory
	Bounds  SliderBounds
}

// FilterVisible returns the listings the viewer may see under the query.
// The input slice and its listings are not modified.
func FilterVisible(listings []*Listing, q VisibilityQuery) []*Listing {
	viewerID := ""
	var favs map[string]struct{}
	if q.Viewer != nil {
		viewerID = q.Viewer.ID
		favs = make(map[string]struct{}, len(q.Viewer.Favs))
		for _, id := range q.Viewer.Favs {
			favs[id] = struct{}{}
		}
	}
	f := q.Filters
	tokens := keywordTokens(f.Keyword)
	dims := newDimensionMatcher(f, q.Bounds)

	out := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if l == nil {
			continue
		}
		seller := q.Users[l.SellerID]
		if !isAll(f.Country) && (seller == nil || seller.Country != f.Country) {
			continue
		}
		if !inBaseSet(l, q.View, viewerID, favs) {
			continue
		}
		if seller == nil || seller.IsBlocked {
			continue
		}
		if f.SellerID != "" && l.SellerID != f.SellerID {
			continue
		}
		if !matchesKeywords(l, tokens) {
			continue
		}
		if !isAll(f.FinSystem) && string(l.FinSystem) != f.FinSystem {
			continue
		}
		if !isAll(f.FinSetup) && string(l.FinSetup) != f.FinSetup {
			continue
		}
		if !dims.match(l.Dimensions) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func inBaseSet(l *Listing, view ViewMode, viewerID string, favs map[string]struct{}) bool {
	switch {
	case view == ViewMyListings && viewerID != "":
		return l.SellerID == viewerID
	case view == ViewFavorites && viewerID != "":
		_, fav := favs[l.ID]
		return fav && l.Status == StatusLive
	default:
		return l.Status == StatusLive || (viewerID != "" && l.SellerID == viewerID)
	}
}
