package utils

import (
	"strconv"
	"strings"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Page parses skip/limit query values. Missing or malformed values fall back to
// skip=0 and limit=DefaultLimit; limit is clamped to [1, MaxLimit].
func Page(skipRaw, limitRaw string) (skip, limit int) {
	skip, err := strconv.Atoi(strings.TrimSpace(skipRaw))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err = strconv.Atoi(strings.TrimSpace(limitRaw))
	if err != nil {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}

// SplitList splits "wifi, laundry,,ac" into trimmed non-empty items.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
