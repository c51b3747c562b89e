package scheduling

import "time"

// Every instant the engine compares goes through Normalize first: UTC,
// truncated to the minute. Local-time values may enter from the host but
// never participate in a comparison.

func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

func AddMinutes(t time.Time, minutes int) time.Time {
	return Normalize(t).Add(time.Duration(minutes) * time.Minute)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back matches sharing a boundary do
// not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// TimeWindow is the occupied interval of a placed match, carried on
// conflict payloads for display.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func WindowFor(start time.Time, minutes int) TimeWindow {
	s := Normalize(start)
	return TimeWindow{Start: s, End: AddMinutes(s, minutes)}
}

func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return Overlaps(w.Start, w.End, o.Start, o.End)
}
