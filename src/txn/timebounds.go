package txn

import "time"

// TimeBounds is the validity window of a transaction, in Unix seconds. Zero
// means the bound is not set.
type TimeBounds struct {
	MinTime int64
	MaxTime int64
}

// NewTimeBounds returns the window [from, from+d].
func NewTimeBounds(from time.Time, d time.Duration) *TimeBounds {
	return &TimeBounds{
		MinTime: from.Unix(),
		MaxTime: from.Add(d).Unix(),
	}
}

// IsInfinite reports whether the window has no upper bound.
func (tb *TimeBounds) IsInfinite() bool {
	return tb.MaxTime == 0
}

// Includes reports whether t lies in the window widened by grace on both
// sides. An unset bound is not checked.
func (tb *TimeBounds) Includes(t time.Time, grace time.Duration) bool {
	now := t.Unix()
	g := int64(grace / time.Second)
	if tb.MinTime != 0 && now < tb.MinTime-g {
		return false
	}
	if tb.MaxTime != 0 && now > tb.MaxTime+g {
		return false
	}
	return true
}
