package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Filter keeps lines logged at minLevel or more severe.
func Filter(lines []string, minLevel logrus.Level) []string {
	f := NewLevelFilter(minLevel)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if f.Keep(line) {
			out = append(out, line)
		}
	}
	return out
}

// LevelFilter decides line by line whether to keep a log stream entry. Lines
// without a recognizable level inherit the verdict of the line before them,
// so multi-line entries stay together; leading unlevelled lines are kept.
type LevelFilter struct {
	min  logrus.Level
	keep bool
}

// NewLevelFilter returns a filter for entries at min or more severe.
func NewLevelFilter(min logrus.Level) *LevelFilter {
	return &LevelFilter{min: min, keep: true}
}

// Keep reports whether line passes the filter.
func (f *LevelFilter) Keep(line string) bool {
	if lvl, ok := LineLevel(line); ok {
		f.keep = lvl <= f.min
	}
	return f.keep
}

// LineLevel extracts the level from a logrus text (level=warning) or JSON
// ("level":"warning") line.
func LineLevel(line string) (logrus.Level, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		var entry struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(trimmed), &entry); err != nil || entry.Level == "" {
			return 0, false
		}
		return parseLevel(entry.Level)
	}

	for _, field := range strings.Fields(trimmed) {
		value, found := strings.CutPrefix(field, "level=")
		if !found {
			continue
		}
		return parseLevel(strings.Trim(value, `"`))
	}
	return 0, false
}

func parseLevel(s string) (logrus.Level, bool) {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return 0, false
	}
	return lvl, true
}
