package feedly

import "time"

// TimeInMillis returns t as epoch milliseconds, the unit Feedly uses for timestamps
func TimeInMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// NewerThan returns a StreamQuery.NewerThan value for t
func NewerThan(t time.Time) *int64 {
	ms := TimeInMillis(t)
	return &ms
}

// FromMillis converts Feedly epoch milliseconds back to a UTC time
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
