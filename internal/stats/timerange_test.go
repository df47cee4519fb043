package stats

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeRangeContains(t *testing.T) {
	tr := TimeRange{Start: date(2024, time.March, 1), End: date(2024, time.May, 31)}

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"before range", date(2024, time.February, 29), false},
		{"exactly on start", date(2024, time.March, 1), true},
		{"inside", date(2024, time.April, 15), true},
		{"exactly on end", date(2024, time.May, 31), true},
		{"after range", date(2024, time.June, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Contains(tt.d); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	t.Run("slash separated", func(t *testing.T) {
		got, err := ParseMonth("2024/05")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(date(2024, time.May, 1)) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("dash separated with day", func(t *testing.T) {
		got, err := ParseMonth("2023-12-04")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(date(2023, time.December, 1)) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("single digit month", func(t *testing.T) {
		got, err := ParseMonth("2025/1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(date(2025, time.January, 1)) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, s := range []string{"", "2024", "2024/13", "abcd/ef"} {
			if _, err := ParseMonth(s); err == nil {
				t.Errorf("ParseMonth(%q) succeeded, want error", s)
			}
		}
	})
}

func TestMonthsBetween(t *testing.T) {
	t.Run("crosses year boundary", func(t *testing.T) {
		months := MonthsBetween(date(2023, time.November, 12), date(2024, time.February, 3))
		want := []time.Time{
			date(2023, time.November, 1),
			date(2023, time.December, 1),
			date(2024, time.January, 1),
			date(2024, time.February, 1),
		}
		if len(months) != len(want) {
			t.Fatalf("got %d months, want %d", len(months), len(want))
		}
		for i := range want {
			if !months[i].Equal(want[i]) {
				t.Errorf("month %d = %v, want %v", i, months[i], want[i])
			}
		}
	})

	t.Run("single month", func(t *testing.T) {
		months := MonthsBetween(date(2024, time.May, 1), date(2024, time.May, 31))
		if len(months) != 1 || !months[0].Equal(date(2024, time.May, 1)) {
			t.Errorf("got %v", months)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		if months := MonthsBetween(date(2024, time.May, 1), date(2024, time.April, 1)); months != nil {
			t.Errorf("got %v, want nil", months)
		}
	})
}

func TestGraceStart(t *testing.T) {
	// Seven days back from July 3rd lands in June.
	got := GraceStart(date(2024, time.July, 3), 7)
	if !got.Equal(date(2024, time.June, 1)) {
		t.Errorf("got %v, want 2024-06-01", got)
	}

	// Mid-month stays in the same month.
	got = GraceStart(date(2024, time.July, 20), 7)
	if !got.Equal(date(2024, time.July, 1)) {
		t.Errorf("got %v, want 2024-07-01", got)
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth(date(2024, time.March, 1)); got != "2024/03" {
		t.Errorf("got %q, want \"2024/03\"", got)
	}
}
