package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.June, 6, hour, min, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"back to back", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"back to back reversed", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"one minute overlap", at(10, 0), at(11, 0), at(10, 59), at(11, 59), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"containment", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestNormalizeCollapsesToUTCMinutes(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2026, time.June, 6, 13, 30, 45, 999, zone)

	got := Normalize(local)

	require.Equal(t, time.UTC, got.Location())
	assert.Equal(t, at(10, 30), got)
}

func TestAddMinutes(t *testing.T) {
	assert.Equal(t, at(11, 0), AddMinutes(at(10, 0), 60))
	assert.Equal(t, at(10, 45), AddMinutes(at(10, 0), 45))
}

func TestWindowForRecomputesEnd(t *testing.T) {
	w := WindowFor(at(10, 0), 90)
	assert.Equal(t, at(10, 0), w.Start)
	assert.Equal(t, at(11, 30), w.End)
	assert.True(t, w.Overlaps(WindowFor(at(11, 29), 60)))
	assert.False(t, w.Overlaps(WindowFor(at(11, 30), 60)))
}
