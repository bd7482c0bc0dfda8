package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func liveListing(id string, c Condition, age time.Duration) *Listing {
	return &Listing{
		ID:         id,
		SellerID:   "seller-1",
		Brand:      "Channel Islands",
		Model:      "Fever",
		Condition:  c,
		Status:     StatusLive,
		ListedDate: testNow.Add(-age),
		Dimensions: []Dimension{{Length: 6, Width: 19, Thickness: 2.5, Volume: 30}},
	}
}

func TestEvaluate_ExpiryBoundary(t *testing.T) {
	tests := []struct {
		name string
		l    *Listing
		want Transition
	}{
		{"used just before limit", liveListing("a", ConditionUsed, 90*Day-time.Millisecond), NoChange},
		{"used exactly at limit", liveListing("b", ConditionUsed, 90*Day), NoChange},
		{"used just after limit", liveListing("c", ConditionUsed, 90*Day+time.Millisecond), Expire},
		{"new at 300 days", liveListing("d", ConditionNew, 300*Day), NoChange},
		{"new exactly at limit", liveListing("e", ConditionNew, 365*Day), NoChange},
		{"new after limit", liveListing("f", ConditionNew, 365*Day+time.Second), Expire},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.l, testNow))
		})
	}
}

func TestEvaluate_DeletionBoundary(t *testing.T) {
	expired := func(age time.Duration, expiredAt *time.Time) *Listing {
		l := liveListing("x", ConditionUsed, age)
		l.Status = StatusExpired
		l.ExpiredAt = expiredAt
		return l
	}
	at := func(d time.Duration) *time.Time {
		t := testNow.Add(-d)
		return &t
	}

	tests := []struct {
		name string
		l    *Listing
		want Transition
	}{
		{"just past retention", expired(120*Day+time.Millisecond, nil), Remove},
		{"exactly at retention", expired(120*Day, nil), NoChange},
		{"late stamp does not extend retention", expired(121*Day, at(26*Day)), Remove},
		{"recent stamp inside retention", expired(100*Day, at(time.Hour)), NoChange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.l, testNow))
		})
	}
}

func TestEvaluate_LiveBeyondRetentionIsRemoved(t *testing.T) {
	assert.Equal(t, Remove, Evaluate(liveListing("u", ConditionUsed, 125*Day), testNow))
	assert.Equal(t, Expire, Evaluate(liveListing("u", ConditionUsed, 120*Day), testNow))
	assert.Equal(t, Remove, Evaluate(liveListing("n", ConditionNew, 400*Day), testNow))
}

func TestEvaluate_StickyAndMalformed(t *testing.T) {
	sold := liveListing("s", ConditionUsed, 1000*Day)
	sold.Status = StatusSold
	assert.Equal(t, NoChange, Evaluate(sold, testNow))

	failed := liveListing("p", ConditionNew, 1000*Day)
	failed.Status = StatusPaymentFailed
	assert.Equal(t, NoChange, Evaluate(failed, testNow))

	undated := liveListing("u", ConditionUsed, 0)
	undated.ListedDate = time.Time{}
	assert.Equal(t, NoChange, Evaluate(undated, testNow))

	undated.Status = StatusExpired
	assert.Equal(t, NoChange, Evaluate(undated, testNow))
	assert.Equal(t, NoChange, Evaluate(nil, testNow))
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	stale := liveListing("stale", ConditionUsed, 91*Day)
	fresh := liveListing("fresh", ConditionUsed, 10*Day)

	r := Reconcile([]*Listing{stale, fresh}, testNow)

	require.Len(t, r.Expired, 1)
	assert.Equal(t, "stale", r.Expired[0].ID)
	assert.Equal(t, StatusExpired, r.Expired[0].Status)
	assert.Equal(t, StatusLive, stale.Status, "input listing must stay untouched")
	assert.Nil(t, stale.ExpiredAt)
	assert.Same(t, fresh, r.Listings[1], "unchanged listings pass through")
}

func TestReconcile_Idempotent(t *testing.T) {
	oldExpired := liveListing("gone", ConditionUsed, 200*Day)
	oldExpired.Status = StatusExpired
	listings := []*Listing{
		liveListing("a", ConditionUsed, 91*Day),
		liveListing("b", ConditionNew, 20*Day),
		oldExpired,
	}

	first := Reconcile(listings, testNow)
	require.True(t, first.Changed())
	assert.Len(t, first.Removed, 1)
	assert.Len(t, first.Listings, 2)

	second := Reconcile(first.Listings, testNow)
	assert.False(t, second.Changed())
	assert.Equal(t, first.Listings, second.Listings)
}

func TestReconcile_RetentionCountsFromExpiryTime(t *testing.T) {
	late := liveListing("late", ConditionUsed, 125*Day)
	recent := liveListing("recent", ConditionNew, 380*Day)

	r := Reconcile([]*Listing{late, recent}, testNow)

	require.Len(t, r.Removed, 1)
	assert.Same(t, late, r.Removed[0])
	assert.Equal(t, StatusLive, r.Removed[0].Status, "removed listings keep their stored status")
	require.Len(t, r.Expired, 1)
	assert.Equal(t, "recent", r.Expired[0].ID)
	require.NotNil(t, r.Expired[0].ExpiredAt)
	assert.Equal(t, testNow, *r.Expired[0].ExpiredAt)
	assert.Equal(t, recent.ExpiryTime(), r.Expired[0].ExpiresAt)

	// 380 days listed means 15 days into retention; 16 more days remove it.
	assert.Empty(t, Reconcile(r.Listings, testNow.Add(15*Day)).Removed)
	assert.Len(t, Reconcile(r.Listings, testNow.Add(15*Day+time.Second)).Removed, 1)
}
