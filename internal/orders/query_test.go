// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithinWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		ts     time.Time
		window string
		start  time.Time
		end    time.Time
		want   bool
	}{
		{name: "all accepts anything", ts: now.AddDate(-1, 0, 0), window: WindowAll, want: true},
		{name: "today accepts same day", ts: time.Date(2026, 8, 28, 0, 0, 1, 0, time.UTC), window: WindowToday, want: true},
		{name: "today rejects yesterday", ts: time.Date(2026, 8, 27, 23, 59, 0, 0, time.UTC), window: WindowToday, want: false},
		{name: "yesterday accepts yesterday", ts: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC), window: WindowYesterday, want: true},
		{name: "yesterday rejects today", ts: now, window: WindowYesterday, want: false},
		{name: "week accepts six days ago", ts: now.AddDate(0, 0, -6), window: WindowWeek, want: true},
		{name: "week rejects eight days ago", ts: now.AddDate(0, 0, -8), window: WindowWeek, want: false},
		{
			name: "custom includes full end day",
			ts:   time.Date(2026, 8, 20, 23, 45, 0, 0, time.UTC), window: WindowCustom,
			start: time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name: "custom rejects day after end",
			ts:   time.Date(2026, 8, 21, 0, 0, 1, 0, time.UTC), window: WindowCustom,
			start: time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name: "custom rejects before start",
			ts:   time.Date(2026, 8, 17, 23, 59, 0, 0, time.UTC), window: WindowCustom,
			start: time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			want:  false,
		},
		{name: "custom without dates accepts", ts: now, window: WindowCustom, want: true},
		{name: "unknown window accepts", ts: now, window: "fortnight", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := withinWindow(tc.ts, tc.window, tc.start, tc.end, now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsValidSortField(t *testing.T) {
	for _, f := range ValidSortFields {
		assert.True(t, IsValidSortField(f))
	}
	assert.False(t, IsValidSortField("subtotal"))
	assert.False(t, IsValidSortField(""))
}

func TestIsValidTimeWindow(t *testing.T) {
	for _, w := range ValidTimeWindows {
		assert.True(t, IsValidTimeWindow(w))
	}
	assert.False(t, IsValidTimeWindow("month"))
}

func TestPickingQueryForcesPendingAndUnpaginated(t *testing.T) {
	q := PickingQuery{WarehouseID: "w1", Search: "x", TimePeriod: WindowWeek}.orderQuery()

	assert.Equal(t, "pending", q.Status)
	assert.True(t, q.Unpaginated)
	assert.Equal(t, SortByDate, q.SortField)
	assert.Equal(t, "w1", q.WarehouseID)
}
