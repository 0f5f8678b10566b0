package domain

import (
	"sort"
	"time"
)

// Interval half-open time interval [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsEmpty returns true if the interval contains no instant
func (i Interval) IsEmpty() bool {
	return !i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals share at least one instant.
// Touching intervals ([09:00,10:00) and [10:00,11:00)) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies entirely within i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Expand widens the interval by d on both sides
func (i Interval) Expand(d time.Duration) Interval {
	return Interval{Start: i.Start.Add(-d), End: i.End.Add(d)}
}

// MergeIntervals sorts intervals by start and merges overlapping or touching ones.
// The input slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, 0, len(intervals))
	for _, in := range intervals {
		if !in.IsEmpty() {
			sorted = append(sorted, in)
		}
	}
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start.Before(sorted[b].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	for _, in := range sorted {
		last := len(merged) - 1
		if last >= 0 && !in.Start.After(merged[last].End) {
			if in.End.After(merged[last].End) {
				merged[last].End = in.End
			}
			continue
		}
		merged = append(merged, in)
	}
	return merged
}

// SubtractIntervals returns the parts of candidates not covered by busy.
// busy is merged first; candidates are walked in start order with a single
// forward cursor over busy, so the cost is dominated by the sort.
func SubtractIntervals(candidates []Interval, busy []Interval) []Interval {
	merged := MergeIntervals(busy)

	sorted := append([]Interval(nil), candidates...)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start.Before(sorted[b].Start)
	})

	free := make([]Interval, 0, len(sorted))
	cursor := 0
	for _, c := range sorted {
		if c.IsEmpty() {
			continue
		}

		for cursor < len(merged) && !merged[cursor].End.After(c.Start) {
			cursor++
		}

		current := c.Start
		for k := cursor; k < len(merged) && merged[k].Start.Before(c.End); k++ {
			b := merged[k]
			if b.Start.After(current) {
				free = append(free, Interval{Start: current, End: b.Start})
			}
			if b.End.After(current) {
				current = b.End
			}
		}

		if current.Before(c.End) {
			free = append(free, Interval{Start: current, End: c.End})
		}
	}
	return free
}
