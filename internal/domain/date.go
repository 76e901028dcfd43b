package domain

import (
	"regexp"
	"strings"
	"time"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ToStorageDate converts a display date (DD-MM-YYYY, `/` tolerated as
// separator) to ISO (YYYY-MM-DD). Input already in ISO form is returned
// unchanged. Malformed input is returned unchanged with ok=false so the
// caller can log it; nothing here rejects the value. No calendar check is
// performed.
func ToStorageDate(input string) (string, bool) {
	if input == "" {
		return input, true
	}
	norm := strings.ReplaceAll(input, "/", "-")
	if isoDatePattern.MatchString(norm) {
		return norm, true
	}
	parts := strings.Split(norm, "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return input, false
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0], true
}

// ToDisplayDate converts an ISO date (YYYY-MM-DD) to display form
// (DD-MM-YYYY). The mirror of ToStorageDate: anything that does not split
// into three parts comes back unchanged with ok=false.
func ToDisplayDate(input string) (string, bool) {
	if input == "" {
		return input, true
	}
	norm := strings.ReplaceAll(input, "/", "-")
	if !isoDatePattern.MatchString(norm) {
		parts := strings.Split(norm, "-")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return input, false
		}
		// Already in DD-MM-YYYY shape
		return norm, true
	}
	parts := strings.SplitN(norm, "-", 3)
	return parts[2] + "-" + parts[1] + "-" + parts[0], true
}

// ParseDate parses a date in either display (DD-MM-YYYY) or ISO
// (YYYY-MM-DD) form. ok=false when the string is not a calendar date.
func ParseDate(input string) (time.Time, bool) {
	norm := strings.ReplaceAll(input, "/", "-")
	for _, layout := range []string{"02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, norm); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
