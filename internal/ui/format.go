package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/five82/ticktock/internal/life"
)

const (
	hoursPerWeek  = 168
	maxSavedShown = 5
	maxGridYears  = maxAge + 30
)

// lifeYears splits an expectancy into grid cells drawn and years left off
// the grid.
func lifeYears(expectancy float64) (shown, hidden int) {
	if math.IsNaN(expectancy) || expectancy <= 0 {
		return 0, 0
	}
	years := int(math.Ceil(math.Min(expectancy, life.MaxYears)))
	shown = min(years, maxGridYears)
	return shown, years - shown
}

// gridColumns fits two characters per cell, capped at 20 per row.
func gridColumns(width int) int {
	cols := (width - 6) / 2
	return min(max(cols, 5), 20)
}

func barWidth(width int) int {
	return min(max(width-8, 10), 60)
}

func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// formatThousands rounds v and groups digits with commas.
func formatThousands(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

// formatCountdown renders d as days, hours, minutes and seconds.
func formatCountdown(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	days := int(d / (24 * time.Hour))
	h := int(d.Hours()) % 24
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, h, m, s)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
