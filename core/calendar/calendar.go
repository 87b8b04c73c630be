// Package calendar converts between UTC instants and local wall-clock time
// and enumerates the cut points at which tariff activation can change: local
// midnights and restriction window edges. Local time is treated as monotonic
// through DST transitions, so the sum of split durations always equals the
// UTC duration of the input interval.
package calendar

import (
	"sort"
	"time"

	"ocpi-cost/core/types"
	"ocpi-cost/internal/errors"
)

// DefaultZone is used when no zone is configured and none can be detected.
const DefaultZone = "Europe/Amsterdam"

// LoadZone resolves an IANA zone identifier.
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.UnknownZone(name, err)
	}
	return loc, nil
}

// Interval is a half-open interval of UTC instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration is the exact UTC duration of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Hours is the interval duration as decimal hours.
func (iv Interval) Hours() types.HoursDecimal {
	return types.HoursFromDuration(iv.Duration())
}

// SplitAtLocalEdges subdivides [start, end) at every local midnight and at
// every occurrence of the given wall-clock edges, returning the maximal
// sub-intervals in order. Edges landing inside a DST gap resolve to the
// normalized instant the zone database yields for that wall-clock time.
func SplitAtLocalEdges(start, end time.Time, loc *time.Location, edges []types.OcpiTime) []Interval {
	if !start.Before(end) {
		return nil
	}

	cuts := collectCuts(start, end, loc, edges)

	intervals := make([]Interval, 0, len(cuts)+1)
	prev := start
	for _, cut := range cuts {
		intervals = append(intervals, Interval{Start: prev, End: cut})
		prev = cut
	}
	intervals = append(intervals, Interval{Start: prev, End: end})

	return intervals
}

// collectCuts walks each local day touched by [start, end) and materializes
// midnight plus every edge, keeping the instants strictly inside the
// interval.
func collectCuts(start, end time.Time, loc *time.Location, edges []types.OcpiTime) []time.Time {
	localStart := start.In(loc)
	localEnd := end.In(loc)

	var cuts []time.Time
	seen := make(map[int64]bool)

	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	lastDay := time.Date(localEnd.Year(), localEnd.Month(), localEnd.Day(), 0, 0, 0, 0, loc)

	for !day.After(lastDay) {
		for _, edge := range append([]types.OcpiTime{types.NewOcpiTime(0, 0)}, edges...) {
			instant := time.Date(day.Year(), day.Month(), day.Day(), edge.Hour(), edge.Minute(), 0, 0, loc)
			if instant.After(start) && instant.Before(end) && !seen[instant.UnixNano()] {
				seen[instant.UnixNano()] = true
				cuts = append(cuts, instant.UTC())
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Before(cuts[j]) })
	return cuts
}

// InTimeWindow reports whether the local time of instant lies inside the
// [startTime, endTime) wall-clock window. A window whose end precedes its
// start wraps past midnight. A nil bound is open.
func InTimeWindow(instant time.Time, loc *time.Location, startTime, endTime *types.OcpiTime) bool {
	local := instant.In(loc)
	minutes := local.Hour()*60 + local.Minute()

	switch {
	case startTime != nil && endTime != nil && endTime.Before(*startTime):
		// Wrapping window: 22:00-06:00 means 22:00-24:00 or 00:00-06:00.
		return minutes >= startTime.MinutesFromMidnight() || minutes < endTime.MinutesFromMidnight()
	default:
		if startTime != nil && minutes < startTime.MinutesFromMidnight() {
			return false
		}
		if endTime != nil && minutes >= endTime.MinutesFromMidnight() {
			return false
		}
		return true
	}
}

// LocalDate is the local calendar date of an instant.
func LocalDate(instant time.Time, loc *time.Location) types.OcpiDate {
	return types.DateOf(instant, loc)
}

// LocalWeekday is the local weekday of an instant.
func LocalWeekday(instant time.Time, loc *time.Location) time.Weekday {
	return instant.In(loc).Weekday()
}
