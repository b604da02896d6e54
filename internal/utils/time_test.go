package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:30", 0, true},
		{"25:00", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		// ISO weeks: Jan 1 2024 is a Monday, week 1
		{"2024-01-01", "2024-W01"},
		{"2024-01-07", "2024-W01"},
		{"2024-01-08", "2024-W02"},
		// Dec 31 2024 belongs to week 1 of 2025
		{"2024-12-31", "2025-W01"},
		// Jan 1 2023 (a Sunday) belongs to the last week of 2022
		{"2023-01-01", "2022-W52"},
	}

	for _, tt := range tests {
		parsed, err := ParseDate(tt.date)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.date, err)
		}
		if got := WeekKey(parsed); got != tt.want {
			t.Errorf("WeekKey(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 3, 15, 18, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected midnight, got %v", got)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("expected same calendar day, got %v", got)
	}
}

func TestValidateDateFormat(t *testing.T) {
	if !ValidateDateFormat("2024-01-10") {
		t.Error("expected valid date to pass")
	}
	for _, bad := range []string{"01/10/2024", "2024-1-10", "not-a-date", ""} {
		if ValidateDateFormat(bad) {
			t.Errorf("expected %q to fail validation", bad)
		}
	}
}
