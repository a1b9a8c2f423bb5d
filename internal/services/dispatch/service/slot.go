package service

import (
	"sort"
	"time"
)

// NextSlot returns the first window hour strictly after now's hour on now's day in loc
// past the last window it rolls to the first window of the next day
func NextSlot(now time.Time, windows []int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	hours := normalizeWindows(windows)
	t := now.In(loc)
	y, m, d := t.Date()
	for _, h := range hours {
		if h > t.Hour() {
			return time.Date(y, m, d, h, 0, 0, 0, loc)
		}
	}
	return time.Date(y, m, d+1, hours[0], 0, 0, 0, loc)
}

// normalizeWindows sorts, dedupes and drops hours outside 0..23
func normalizeWindows(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]struct{}, len(in))
	for _, h := range in {
		if h < 0 || h > 23 {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	if len(out) == 0 {
		return []int{0}
	}
	sort.Ints(out)
	return out
}
