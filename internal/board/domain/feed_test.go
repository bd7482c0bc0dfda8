package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []*Listing {
	out := make([]*Listing, n)
	for i := range out {
		out[i] = liveListing(fmt.Sprintf("b%d", i), ConditionUsed, time.Duration(i)*time.Hour)
	}
	return out
}

// layout renders a feed as ids, "ad:<slot id>" for ads.
func layout(items []FeedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		if it.Kind == ItemAd {
			out[i] = "ad:" + it.Slot.ID
		} else {
			out[i] = it.Listing.ID
		}
	}
	return out
}

func adPositions(items []FeedItem) []int {
	var pos []int
	for i, it := range items {
		if it.Kind == ItemAd {
			pos = append(pos, i)
		}
	}
	return pos
}

func TestInterleaveAds(t *testing.T) {
	assert.Empty(t, InterleaveAds(nil))

	// The fifth item is followed by an ad, so the fallback never fires.
	five := InterleaveAds(numbered(5))
	assert.Equal(t, []int{5}, adPositions(five))
	if diff := cmp.Diff([]string{"b0", "b1", "b2", "b3", "b4", "ad:ad-4"}, layout(five)); diff != "" {
		t.Errorf("five item layout mismatch (-want +got):\n%s", diff)
	}

	four := InterleaveAds(numbered(4))
	if diff := cmp.Diff([]string{"b0", "b1", "ad:ad-fallback", "b2", "b3"}, layout(four)); diff != "" {
		t.Errorf("four item layout mismatch (-want +got):\n%s", diff)
	}

	one := InterleaveAds(numbered(1))
	if diff := cmp.Diff([]string{"b0", "ad:ad-fallback"}, layout(one)); diff != "" {
		t.Errorf("single item layout mismatch (-want +got):\n%s", diff)
	}

	twenty := InterleaveAds(numbered(20))
	assert.Equal(t, []int{5, 21}, adPositions(twenty))
	assert.Equal(t, "ad-4", twenty[5].Slot.ID)
	assert.Equal(t, "ad-19", twenty[21].Slot.ID)
	assert.Len(t, twenty, 22)

	// Positions 5, 20 and 35 are followed by ads.
	forty := InterleaveAds(numbered(40))
	assert.Equal(t, []int{5, 21, 37}, adPositions(forty))
	assert.Equal(t, "ad-19", forty[21].Slot.ID)
	assert.Equal(t, "ad-34", forty[37].Slot.ID)
}

func TestInterleaveAds_Deterministic(t *testing.T) {
	in := numbered(33)
	assert.Equal(t, layout(InterleaveAds(in)), layout(InterleaveAds(in)))
}

func TestFillAdSlots(t *testing.T) {
	items := InterleaveAds(numbered(40))
	ads := []*ManagedAd{
		{ID: "m1", IsActive: true},
		{ID: "off", IsActive: false},
		{ID: "m2", IsActive: true},
	}

	filled := FillAdSlots(items, ads)
	pos := adPositions(filled)
	require.Len(t, pos, 3)
	assert.Equal(t, "m1", filled[pos[0]].Slot.Ad.ID)
	assert.Equal(t, "m2", filled[pos[1]].Slot.Ad.ID)
	assert.Equal(t, "m1", filled[pos[2]].Slot.Ad.ID)
	assert.Nil(t, items[pos[0]].Slot.Ad, "source slots must stay empty")

	assert.Nil(t, FillAdSlots(items, nil)[pos[0]].Slot.Ad)
}

func TestSortListings_Stable(t *testing.T) {
	a := &Listing{ID: "a", Price: 300, ListedDate: testNow.Add(-3 * Day)}
	b := &Listing{ID: "b", Price: 100, ListedDate: testNow.Add(-1 * Day)}
	c := &Listing{ID: "c", Price: 300, ListedDate: testNow.Add(-2 * Day)}
	d := &Listing{ID: "d", Price: 100, ListedDate: testNow.Add(-1 * Day)}
	in := []*Listing{a, b, c, d}

	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(SortListings(in, SortDateDesc)))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(SortListings(in, SortDateAsc)))
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(SortListings(in, SortPriceAsc)))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(SortListings(in, SortPriceDesc)))
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(SortListings(in, "")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(in), "input order preserved")
}

func TestWindow(t *testing.T) {
	all := numbered(40)
	w := NewWindow()

	page, more := w.Slice(all)
	assert.Len(t, page, 15)
	assert.True(t, more)

	w = w.More().More()
	page, more = w.Slice(all)
	assert.Len(t, page, 40)
	assert.False(t, more)
	assert.Equal(t, 45, w.Visible)

	page, more = Window{}.Slice(all)
	assert.Len(t, page, 15)
	assert.True(t, more)
}

func TestBrowseSession_ResetsWindow(t *testing.T) {
	s := NewBrowseSession("sid", "alice", DefaultSliderBounds, testNow)
	s.ShowMore()
	s.ShowMore()
	require.Equal(t, 45, s.Window.Visible)

	s.ChangeSort(SortPriceAsc)
	assert.Equal(t, PageSize, s.Window.Visible)

	s.ShowMore()
	s.ChangeSort(SortPriceAsc)
	assert.Equal(t, 30, s.Window.Visible, "same sort is not a change")

	f := s.Filters
	f.Keyword = "quad"
	f.Country = "AU"
	s.ApplyFilters(f)
	assert.Equal(t, PageSize, s.Window.Visible)

	s.ShowMore()
	s.SwitchView(ViewMyListings, DefaultSliderBounds)
	assert.Equal(t, PageSize, s.Window.Visible)
	assert.Empty(t, s.Filters.Keyword)
	assert.Equal(t, "AU", s.Filters.Country, "switching views keeps the country")
}

func TestBuildFeed(t *testing.T) {
	users := NewUserDirectory([]*User{{ID: "seller-1", Country: "AU", Favs: []string{"b0", "b1"}}})
	listings := numbered(20)

	q := VisibilityQuery{View: ViewAll, Filters: DefaultFilters(DefaultSliderBounds), Users: users, Bounds: DefaultSliderBounds}
	page := BuildFeed(listings, q, SortDateDesc, NewWindow(), nil)
	assert.Equal(t, 20, page.Total)
	assert.True(t, page.HasMore)
	assert.Len(t, page.Items, 16)
	assert.Equal(t, []int{5}, adPositions(page.Items))
	assert.True(t, page.HasBoards())

	q.View = ViewFavorites
	q.Viewer = users["seller-1"]
	page = BuildFeed(listings, q, SortDateDesc, NewWindow(), nil)
	assert.Equal(t, []string{"b0", "b1"}, layout(page.Items))
	assert.False(t, page.HasMore)

	empty := BuildFeed(nil, VisibilityQuery{View: ViewAll, Users: users, Bounds: DefaultSliderBounds}, SortDateDesc, NewWindow(), nil)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasBoards())
}
