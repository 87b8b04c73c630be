package types

import (
	"testing"
	"time"
)

func TestHoursDecimalConversions(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		hours   string
	}{
		{"zero minutes is zero hours", 0, "0"},
		{"thirty minutes is half an hour", 30, "0.5"},
		{"sixty minutes is one hour", 60, "1"},
		{"ninety minutes is one and a half hours", 90, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HoursFromDuration(time.Duration(tt.minutes) * time.Minute)
			if got := h.Hours(); !got.Equal(MustNumber(tt.hours)) {
				t.Errorf("%d minutes = %s hours, want %s", tt.minutes, got, tt.hours)
			}
		})
	}
}

func TestHoursFromNumberRoundTrip(t *testing.T) {
	h, err := HoursFromNumber(MustNumber("0.75"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Duration() != 45*time.Minute {
		t.Errorf("0.75 h = %s, want 45m", h.Duration())
	}
	if !h.Hours().Equal(MustNumber("0.75")) {
		t.Errorf("round trip = %s, want 0.75", h.Hours())
	}
}

func TestHoursFromSecondsNumber(t *testing.T) {
	h, err := HoursFromSecondsNumber(MustNumber("2700"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !h.Hours().Equal(MustNumber("0.75")) {
		t.Errorf("2700 s = %s h, want 0.75", h.Hours())
	}
}

func TestParseOcpiTime(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"13:30", 13, 30, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"noon", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOcpiTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error parsing %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Hour() != tt.hour || got.Minute() != tt.minute {
				t.Errorf("parsed %q = %s", tt.in, got)
			}
		})
	}
}

func TestOcpiDateOrdering(t *testing.T) {
	early := NewOcpiDate(2024, time.March, 30)
	late := NewOcpiDate(2024, time.March, 31)

	if !early.Before(late) {
		t.Error("2024-03-30 should precede 2024-03-31")
	}
	if late.Before(early) {
		t.Error("2024-03-31 should not precede 2024-03-30")
	}
	if !early.Equal(early) {
		t.Error("a date should equal itself")
	}
}

func TestDayOfWeekConversion(t *testing.T) {
	wd, err := Saturday.Weekday()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wd != time.Saturday {
		t.Errorf("SATURDAY = %s", wd)
	}

	if _, err := DayOfWeek("CALDAY").Weekday(); err == nil {
		t.Error("expected an error for an unknown weekday name")
	}
}
