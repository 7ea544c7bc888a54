package units

import "testing"

func TestIsValidTimeUnit(t *testing.T) {
	for _, u := range ValidTimeUnits {
		if !IsValidTimeUnit(u) {
			t.Errorf("Expected %q to be valid", u)
		}
	}
	for _, u := range []string{"", "minutes", "Seconds", "ns"} {
		if IsValidTimeUnit(u) {
			t.Errorf("Expected %q to be invalid", u)
		}
	}
}

func TestScaleToSeconds(t *testing.T) {
	testCases := []struct {
		unit     string
		expected float64
	}{
		{Seconds, 1},
		{Milliseconds, 1e-3},
		{Microseconds, 1e-6},
		{Nanoseconds, 1e-9},
		{"unknown", 1},
	}
	for _, tc := range testCases {
		if got := ScaleToSeconds(tc.unit); got != tc.expected {
			t.Errorf("ScaleToSeconds(%q): expected %g, got %g", tc.unit, tc.expected, got)
		}
	}
}

func TestParseTimeUnits(t *testing.T) {
	testCases := []struct {
		name      string
		attr      string
		wantUnit  string
		wantEpoch string
		wantOK    bool
	}{
		{"seconds_epoch", "seconds since 1970-01-01T00:00:00Z", "seconds", "1970-01-01T00:00:00Z", true},
		{"nanoseconds", "nanoseconds since 2020-01-01", "nanoseconds", "2020-01-01", true},
		{"padded", "  milliseconds since 2020-06-01 ", "milliseconds", "2020-06-01", true},
		{"no_since", "seconds", "", "", false},
		{"bad_unit", "fortnights since 1970-01-01", "", "", false},
		{"empty_epoch", "seconds since ", "", "", false},
		{"plain_units", "degC", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			unit, epoch, ok := ParseTimeUnits(tc.attr)
			if ok != tc.wantOK {
				t.Fatalf("ok: expected %v, got %v", tc.wantOK, ok)
			}
			if unit != tc.wantUnit || epoch != tc.wantEpoch {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tc.wantUnit, tc.wantEpoch, unit, epoch)
			}
		})
	}
}

func TestIsTimeLike(t *testing.T) {
	if !IsTimeLike("seconds since 1970-01-01") {
		t.Errorf("Expected time-like attribute to be recognized")
	}
	if IsTimeLike("m/s") {
		t.Errorf("Expected plain units to not be time-like")
	}
}
