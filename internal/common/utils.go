package common

import (
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`-?\d+(\.\d+)?`)

// HasAny returns true if s contains any of the substrings, ignoring case.
func HasAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// FirstNumber returns the first decimal number in s ("10 to 15 mph" -> 10).
func FirstNumber(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
