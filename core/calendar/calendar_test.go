package calendar

import (
	"testing"
	"time"

	"ocpi-cost/core/types"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := LoadZone(name)
	if err != nil {
		t.Fatalf("loading zone %s: %v", name, err)
	}
	return loc
}

func TestLoadZoneUnknown(t *testing.T) {
	if _, err := LoadZone("Mars/Olympus_Mons"); err == nil {
		t.Fatal("expected an error for an unknown zone")
	}
}

func TestSplitAtLocalMidnight(t *testing.T) {
	ams := mustZone(t, "Europe/Amsterdam")

	// 23:00 to 01:00 local on a winter night: one cut at local midnight.
	start := time.Date(2023, time.January, 16, 22, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.January, 17, 0, 0, 0, 0, time.UTC)

	intervals := SplitAtLocalEdges(start, end, ams, nil)
	if len(intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(intervals))
	}

	midnight := time.Date(2023, time.January, 16, 23, 0, 0, 0, time.UTC)
	if !intervals[0].End.Equal(midnight) {
		t.Errorf("cut at %s, want %s", intervals[0].End, midnight)
	}
}

func TestSplitAtWindowEdges(t *testing.T) {
	ams := mustZone(t, "Europe/Amsterdam")

	// 20:00 to 22:00 CET with an edge at 21:00: exactly one cut.
	start := time.Date(2023, time.January, 16, 19, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.January, 16, 21, 0, 0, 0, time.UTC)
	edges := []types.OcpiTime{types.NewOcpiTime(21, 0), types.NewOcpiTime(7, 0)}

	intervals := SplitAtLocalEdges(start, end, ams, edges)
	if len(intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(intervals))
	}

	cut := time.Date(2023, time.January, 16, 20, 0, 0, 0, time.UTC)
	if !intervals[0].End.Equal(cut) {
		t.Errorf("cut at %s, want %s", intervals[0].End, cut)
	}
	if intervals[0].Duration() != time.Hour || intervals[1].Duration() != time.Hour {
		t.Error("both halves should last one hour")
	}
}

func TestSplitDurationsSumThroughSpringForward(t *testing.T) {
	ams := mustZone(t, "Europe/Amsterdam")

	// The night of 2024-03-31 the clock jumps from 02:00 CET to 03:00
	// CEST. Local 01:00 to 04:00 spans only two real hours.
	start := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 2, 0, 0, 0, time.UTC)
	edges := []types.OcpiTime{types.NewOcpiTime(2, 30), types.NewOcpiTime(3, 30)}

	intervals := SplitAtLocalEdges(start, end, ams, edges)

	var sum time.Duration
	for _, iv := range intervals {
		if !iv.Start.Before(iv.End) {
			t.Errorf("empty or inverted interval %v", iv)
		}
		sum += iv.Duration()
	}
	if sum != end.Sub(start) {
		t.Errorf("sub-interval durations sum to %s, want %s", sum, end.Sub(start))
	}

	for i := 1; i < len(intervals); i++ {
		if !intervals[i-1].End.Equal(intervals[i].Start) {
			t.Error("intervals are not contiguous")
		}
	}
}

func TestSplitKeepsUnsplitInterval(t *testing.T) {
	ams := mustZone(t, "Europe/Amsterdam")

	start := time.Date(2023, time.June, 14, 9, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.June, 14, 10, 0, 0, 0, time.UTC)

	intervals := SplitAtLocalEdges(start, end, ams, nil)
	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(intervals))
	}
	if !intervals[0].Start.Equal(start) || !intervals[0].End.Equal(end) {
		t.Error("interval should be returned unchanged")
	}
}

func TestInTimeWindow(t *testing.T) {
	ams := mustZone(t, "Europe/Amsterdam")

	at := func(hour int) time.Time {
		// Winter day, CET = UTC+1.
		return time.Date(2023, time.January, 16, hour-1, 0, 0, 0, time.UTC)
	}

	window := func(s, e string) (*types.OcpiTime, *types.OcpiTime) {
		st, err := types.ParseOcpiTime(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		en, err := types.ParseOcpiTime(e)
		if err != nil {
			t.Fatalf("parse %s: %v", e, err)
		}
		return &st, &en
	}

	tests := []struct {
		name      string
		hour      int
		startTime string
		endTime   string
		want      bool
	}{
		{"inside plain window", 10, "09:00", "17:00", true},
		{"start bound inclusive", 9, "09:00", "17:00", true},
		{"end bound exclusive", 17, "09:00", "17:00", false},
		{"inside wrap before midnight", 23, "22:00", "06:00", true},
		{"inside wrap after midnight", 5, "22:00", "06:00", true},
		{"outside wrap window", 12, "22:00", "06:00", false},
		{"wrap end bound exclusive", 6, "22:00", "06:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, en := window(tt.startTime, tt.endTime)
			if got := InTimeWindow(at(tt.hour), ams, st, en); got != tt.want {
				t.Errorf("InTimeWindow(%02d:00, %s-%s) = %v, want %v",
					tt.hour, tt.startTime, tt.endTime, got, tt.want)
			}
		})
	}
}

func TestZoneFromCountry(t *testing.T) {
	zone, ok := ZoneFromCountry("NLD")
	if !ok || zone != "Europe/Amsterdam" {
		t.Errorf("NLD resolved to %q", zone)
	}

	if _, ok := ZoneFromCountry("USA"); ok {
		t.Error("multi-zone countries must not resolve")
	}
}
