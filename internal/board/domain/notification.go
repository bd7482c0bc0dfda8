package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ExpiryWarningDays is how close to expiry a reminder is issued.
const ExpiryWarningDays = 7

type Notification struct {
	ID        string
	BoardID   string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// DaysUntilExpiry rounds the remaining live time up to whole days.
func DaysUntilExpiry(l *Listing, now time.Time) int {
	remaining := l.ExpiryTime().Sub(now)
	return int(math.Ceil(float64(remaining) / float64(Day)))
}

func expiryMessage(l *Listing, days int) string {
	name := l.Brand + " " + l.Model
	if days == 0 {
		return fmt.Sprintf("Your listing for \"%s\" expires today.", name)
	}
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("Your listing for \"%s\" expires in %d %s.", name, days, unit)
}

// ExpiryNotificationID follows the notif-{boardId}-{unix millis} scheme.
func ExpiryNotificationID(boardID string, now time.Time) string {
	return fmt.Sprintf("notif-%s-%d", boardID, now.UnixMilli())
}

// DeriveExpiryNotifications issues a reminder for each of the viewer's live
// listings expiring within a week, skipping boards that already have a
// notification. It returns the merged set, newest first, and the new
// notifications on their own.
func DeriveExpiryNotifications(listings []*Listing, viewerID string, existing []Notification, now time.Time) (merged, created []Notification) {
	seen := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		seen[n.BoardID] = struct{}{}
	}
	for _, l := range listings {
		if l == nil || l.SellerID != viewerID || l.Status != StatusLive || l.ListedDate.IsZero() {
			continue
		}
		if _, ok := seen[l.ID]; ok {
			continue
		}
		days := DaysUntilExpiry(l, now)
		if days < 0 || days > ExpiryWarningDays {
			continue
		}
		created = append(created, Notification{
			ID:        ExpiryNotificationID(l.ID, now),
			BoardID:   l.ID,
			Message:   expiryMessage(l, days),
			CreatedAt: now,
		})
		seen[l.ID] = struct{}{}
	}
	merged = make([]Notification, 0, len(existing)+len(created))
	merged = append(merged, created...)
	merged = append(merged, existing...)
	SortNotifications(merged)
	return merged, created
}

// SortNotifications orders by CreatedAt, newest first.
func SortNotifications(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].CreatedAt.After(ns[j].CreatedAt) })
}

// MarkRead flags one notification as read and reports whether it was found.
func MarkRead(ns []Notification, id string) bool {
	for i := range ns {
		if ns[i].ID == id {
			ns[i].IsRead = true
			return true
		}
	}
	return false
}

func MarkAllRead(ns []Notification) {
	for i := range ns {
		ns[i].IsRead = true
	}
}
