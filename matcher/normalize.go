package matcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s*([aApP][mM]))?`)
	meridiemPattern = regexp.MustCompile(`(?i)^(\d{1,2})\s*(am|pm)`)
)

// Normalize converts "19:00", "7:00 PM" or "7pm" to 24-hour HH:MM.
// Anything it does not recognise is returned unchanged, so "noon" and
// "12:00" never compare equal.
func Normalize(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}

	if m := clockPattern.FindStringSubmatch(t); m != nil {
		h, _ := strconv.Atoi(m[1])
		mi, _ := strconv.Atoi(m[2])
		if m[3] != "" {
			h = to24(h, m[3])
		}
		return fmt.Sprintf("%02d:%02d", h, mi)
	}

	if m := meridiemPattern.FindStringSubmatch(t); m != nil {
		h, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:00", to24(h, m[2]))
	}

	return t
}

func to24(h int, suffix string) int {
	switch strings.ToLower(suffix) {
	case "pm":
		if h != 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}
	return h
}

// ParseTimeRange splits "19:00 - 21:00" or "7 PM – 9 PM" into normalized
// start and end. A string without a separator is all start.
func ParseTimeRange(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	for _, sep := range []string{"-", "–"} {
		if start, end, ok := strings.Cut(s, sep); ok {
			return Normalize(start), Normalize(end)
		}
	}

	return Normalize(s), ""
}
