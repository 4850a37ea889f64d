package domain

import "time"

// DailyLimit is the number of free searches allowed per calendar day.
const DailyLimit = 3

// Unlimited is reported as the remaining count for premium users.
const Unlimited = -1

// QuotaState is the daily usage ledger.
type QuotaState struct {
	// Count is the number of non-premium searches made in the current window.
	Count int `json:"count"`

	// Date marks when the current window started.
	Date time.Time `json:"date"`

	// IsPremium bypasses the limit; Count is never incremented while set.
	IsPremium bool `json:"isPremium"`
}

// NewQuotaState returns a fresh zero-count ledger starting at now.
func NewQuotaState(now time.Time) QuotaState {
	return QuotaState{Count: 0, Date: now, IsPremium: false}
}

// LimitReached returns true if a non-premium user has used the daily allowance.
func (q QuotaState) LimitReached() bool {
	return !q.IsPremium && q.Count >= DailyLimit
}

// Remaining returns the searches left today, or Unlimited for premium.
func (q QuotaState) Remaining() int {
	if q.IsPremium {
		return Unlimited
	}
	if r := DailyLimit - q.Count; r > 0 {
		return r
	}
	return 0
}

// InWindow reports whether the ledger window is the same calendar day as now,
// compared in now's location.
func (q QuotaState) InWindow(now time.Time) bool {
	return SameDay(q.Date, now)
}

// SameDay compares the calendar day of a and b in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
