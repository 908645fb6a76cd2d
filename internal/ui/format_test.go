package ui

import (
	"math"
	"testing"
	"time"

	"github.com/five82/ticktock/internal/life"
)

func TestFormatThousands(t *testing.T) {
	cases := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		123456.6:   "123,457",
		-1234567:   "-1,234,567",
		1000000000: "1,000,000,000",
	}
	for in, want := range cases {
		if got := formatThousands(in); got != want {
			t.Fatalf("formatThousands(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m 05s"},
		{2*time.Hour + 4*time.Minute, "2h 04m 00s"},
		{49*time.Hour + 30*time.Second, "2d 01h 00m 30s"},
	}
	for _, tc := range cases {
		if got := formatCountdown(tc.in); got != tc.want {
			t.Fatalf("formatCountdown(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGridHelpers(t *testing.T) {
	for _, tc := range []struct {
		expectancy    float64
		shown, hidden int
	}{
		{80.9, 81, 0},
		{0, 0, 0},
		{-3, 0, 0},
		{math.NaN(), 0, 0},
		{200, maxGridYears, 200 - maxGridYears},
		{3e6, maxGridYears, life.MaxYears - maxGridYears},
	} {
		shown, hidden := lifeYears(tc.expectancy)
		if shown != tc.shown || hidden != tc.hidden {
			t.Fatalf("lifeYears(%v) = %d, %d; want %d, %d", tc.expectancy, shown, hidden, tc.shown, tc.hidden)
		}
	}
	if got := gridColumns(200); got != 20 {
		t.Fatalf("gridColumns(200) = %d, want 20", got)
	}
	if got := gridColumns(0); got != 5 {
		t.Fatalf("gridColumns(0) = %d, want 5", got)
	}
	if got := clampPercent(140); got != 100 {
		t.Fatalf("clampPercent(140) = %v, want 100", got)
	}
}
