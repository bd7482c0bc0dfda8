package domain

import "time"

// BrowseSession keeps one viewer's feed state between requests.
type BrowseSession struct {
	ID        string
	ViewerID  string
	View      ViewMode
	Filters   FilterState
	Sort      SortOrder
	Window    Window
	UpdatedAt time.Time
}

func NewBrowseSession(id, viewerID string, bounds SliderBounds, now time.Time) *BrowseSession {
	return &BrowseSession{
		ID:        id,
		ViewerID:  viewerID,
		View:      ViewAll,
		Filters:   DefaultFilters(bounds),
		Sort:      SortDateDesc,
		Window:    NewWindow(),
		UpdatedAt: now,
	}
}

func (s *BrowseSession) ApplyFilters(f FilterState) {
	s.Filters = f
	s.Window = NewWindow()
}

func (s *BrowseSession) ClearFilters(bounds SliderBounds) {
	s.ApplyFilters(s.Filters.Cleared(bounds))
}

// SwitchView clears filters, keeping the country, and resets the window
// when the view actually changes.
func (s *BrowseSession) SwitchView(v ViewMode, bounds SliderBounds) {
	if v == s.View {
		return
	}
	s.View = v
	s.ClearFilters(bounds)
}

func (s *BrowseSession) ChangeSort(o SortOrder) {
	if o == s.Sort {
		return
	}
	s.Sort = o
	s.Window = NewWindow()
}

func (s *BrowseSession) ShowMore() {
	s.Window = s.Window.More()
}

// FeedPage is one rendering of a browse session.
type FeedPage struct {
	Items []FeedItem
	// Total is the number of listings matching before pagination.
	Total   int
	HasMore bool
}

// HasBoards reports whether the page holds any listing, as opposed to ads alone.
func (p FeedPage) HasBoards() bool {
	for _, it := range p.Items {
		if it.Kind == ItemBoard {
			return true
		}
	}
	return false
}
