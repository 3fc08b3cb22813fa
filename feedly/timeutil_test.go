package feedly

import (
	"testing"
	"time"
)

func TestTimeInMillis(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int64
	}{
		{"epoch", time.Unix(0, 0), 0},
		{"whole seconds", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1704067200000},
		{"sub-second kept", time.Date(2024, 1, 1, 0, 0, 1, 250_999_999, time.UTC), 1704067201250},
		{"zone independent", time.Date(2024, 1, 1, 2, 0, 0, 0, time.FixedZone("EET", 2*3600)), 1704067200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeInMillis(tt.in); got != tt.want {
				t.Errorf("TimeInMillis() = %d, want %d", got, tt.want)
			}
			if got := TimeInMillis(tt.in); got != tt.in.UnixMilli() {
				t.Errorf("TimeInMillis() = %d, want UnixMilli %d", got, tt.in.UnixMilli())
			}
		})
	}
}

func TestNewerThan(t *testing.T) {
	ts := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewerThan(ts)
	if p == nil || *p != ts.UnixMilli() {
		t.Errorf("NewerThan() = %v, want %d", p, ts.UnixMilli())
	}
}

func TestFromMillis(t *testing.T) {
	ts := time.Date(2023, 6, 1, 12, 0, 0, int(500*time.Millisecond), time.UTC)
	if got := FromMillis(TimeInMillis(ts)); !got.Equal(ts) {
		t.Errorf("FromMillis() = %v, want %v", got, ts)
	}
}
