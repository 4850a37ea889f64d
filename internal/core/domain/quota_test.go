package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotaState_LimitReached(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		state    QuotaState
		expected bool
	}{
		{"fresh", NewQuotaState(now), false},
		{"two used", QuotaState{Count: 2, Date: now}, false},
		{"at limit", QuotaState{Count: DailyLimit, Date: now}, true},
		{"over limit", QuotaState{Count: DailyLimit + 4, Date: now}, true},
		{"premium over limit", QuotaState{Count: 10, Date: now, IsPremium: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.LimitReached())
		})
	}
}

func TestQuotaState_Remaining(t *testing.T) {
	assert.Equal(t, DailyLimit, QuotaState{}.Remaining())
	assert.Equal(t, 1, QuotaState{Count: 2}.Remaining())
	assert.Equal(t, 0, QuotaState{Count: 7}.Remaining())
	assert.Equal(t, Unlimited, QuotaState{IsPremium: true}.Remaining())
}

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	morning := time.Date(2026, 10, 17, 8, 0, 0, 0, loc)
	night := time.Date(2026, 10, 17, 23, 59, 0, 0, loc)
	tomorrow := time.Date(2026, 10, 18, 0, 1, 0, 0, loc)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, tomorrow))

	// 23:30 UTC on the 17th is already the 18th in SAST.
	lateUTC := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(lateUTC, tomorrow))
}

func TestQuotaState_InWindow(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	state := QuotaState{Count: 2, Date: now.Add(-24 * time.Hour)}

	assert.False(t, state.InWindow(now))
	assert.True(t, NewQuotaState(now).InWindow(now.Add(time.Hour)))
}
