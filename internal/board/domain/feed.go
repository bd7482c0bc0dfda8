package domain

import (
	"fmt"
	"sort"
)

type SortOrder string

const (
	SortDateDesc  SortOrder = "date_desc"
	SortDateAsc   SortOrder = "date_asc"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortDateDesc, SortDateAsc, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// SortListings returns a stably sorted copy. Unknown orders sort by newest first.
func SortListings(listings []*Listing, order SortOrder) []*Listing {
	out := append([]*Listing(nil), listings...)
	var less func(a, b *Listing) bool
	switch order {
	case SortPriceAsc:
		less = func(a, b *Listing) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *Listing) bool { return a.Price > b.Price }
	case SortDateAsc:
		less = func(a, b *Listing) bool { return a.ListedDate.Before(b.ListedDate) }
	default:
		less = func(a, b *Listing) bool { return a.ListedDate.After(b.ListedDate) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// PageSize is both the initial window and the "show more" increment.
const PageSize = 15

// Window is the growing pagination window over a sorted result.
type Window struct {
	Visible int
}

func NewWindow() Window { return Window{Visible: PageSize} }

func (w Window) More() Window { return Window{Visible: w.visible() + PageSize} }

func (w Window) visible() int {
	if w.Visible < PageSize {
		return PageSize
	}
	return w.Visible
}

// Slice returns the visible prefix and whether more results remain.
func (w Window) Slice(listings []*Listing) ([]*Listing, bool) {
	n := w.visible()
	if n >= len(listings) {
		return listings, false
	}
	return listings[:n], true
}

const (
	// AdInterval is the chunk size ads are placed in.
	AdInterval = 15
	// AdOffset is the position within a chunk that is followed by an ad.
	AdOffset = 5
	// FallbackAdIndex is where the single ad goes in a short feed.
	FallbackAdIndex = 2
	FallbackAdID    = "ad-fallback"
)

type ItemKind string

const (
	ItemBoard ItemKind = "board"
	ItemAd    ItemKind = "ad"
)

// AdSlot is a sponsored position in the feed. Ad is nil when the slot is
// left to the ad network.
type AdSlot struct {
	ID string
	Ad *ManagedAd
}

type FeedItem struct {
	Kind    ItemKind
	Listing *Listing
	Slot    *AdSlot
}

// InterleaveAds places an ad after every item whose 1-based position i has
// i mod 15 == 5. A non-empty feed that got no ad gets one at index 2, or at
// the end if shorter. An empty feed gets no ads.
func InterleaveAds(listings []*Listing) []FeedItem {
	items := make([]FeedItem, 0, len(listings)+len(listings)/AdInterval+1)
	inserted := false
	for i, l := range listings {
		items = append(items, FeedItem{Kind: ItemBoard, Listing: l})
		pos := i + 1
		if pos%AdInterval == AdOffset {
			items = append(items, FeedItem{Kind: ItemAd, Slot: &AdSlot{ID: fmt.Sprintf("ad-%d", i)}})
			inserted = true
		}
	}
	if !inserted && len(listings) > 0 {
		at := FallbackAdIndex
		if len(items) < at {
			at = len(items)
		}
		ad := FeedItem{Kind: ItemAd, Slot: &AdSlot{ID: FallbackAdID}}
		items = append(items[:at], append([]FeedItem{ad}, items[at:]...)...)
	}
	return items
}

// BoardsOnly wraps listings as feed items without ads.
func BoardsOnly(listings []*Listing) []FeedItem {
	items := make([]FeedItem, len(listings))
	for i, l := range listings {
		items[i] = FeedItem{Kind: ItemBoard, Listing: l}
	}
	return items
}

// FillAdSlots assigns active managed ads to slots round-robin in slot order.
// Slots are copied; the input items are not modified.
func FillAdSlots(items []FeedItem, ads []*ManagedAd) []FeedItem {
	var active []*ManagedAd
	for _, a := range ads {
		if a != nil && a.IsActive {
			active = append(active, a)
		}
	}
	out := append([]FeedItem(nil), items...)
	if len(active) == 0 {
		return out
	}
	n := 0
	for i := range out {
		if out[i].Kind != ItemAd || out[i].Slot == nil {
			continue
		}
		slot := *out[i].Slot
		slot.Ad = active[n%len(active)]
		out[i].Slot = &slot
		n++
	}
	return out
}

// BuildFeed runs filter, sort, paginate and ad placement over an already
// reconciled snapshot.
func BuildFeed(listings []*Listing, q VisibilityQuery, order SortOrder, w Window, ads []*ManagedAd) FeedPage {
	sorted := SortListings(FilterVisible(listings, q), order)
	page, more := w.Slice(sorted)
	var items []FeedItem
	if q.View == ViewAll || !q.View.IsValid() {
		items = FillAdSlots(InterleaveAds(page), ads)
	} else {
		items = BoardsOnly(page)
	}
	return FeedPage{Items: items, Total: len(sorted), HasMore: more}
}
