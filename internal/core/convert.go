package core

// convert.go provides the field-level conversions shared by the CSV codec
// and the edit prompts.
//
// There are two parsing modes and they must not be mixed up:
//   - Import parsing is forgiving: an unreadable optional cell falls back
//     to a documented default and the line survives.
//   - Prompt parsing is strict: an unreadable answer is rejected and the
//     record is never stored.

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the only date format the roster reads or writes.
// "2020/01/01" and friends intentionally do not parse.
const dateLayout = "2006-01-02"

// cleanCell removes common CSV artifacts from a cell value:
// - Strips a leading UTF-8 BOM
// - Replaces non-breaking spaces with regular spaces
// - Trims surrounding whitespace
func cleanCell(s string) string {
	s = strings.TrimPrefix(s, "﻿")
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(s)
}

// fieldAt returns the cleaned cell at index i, or "" when the row is too
// short to have one. Short rows are legal; missing trailing cells read as
// empty optional fields.
func fieldAt(parts []string, i int) string {
	if i < len(parts) {
		return cleanCell(parts[i])
	}
	return ""
}

// parseDate parses s against dateLayout. The caller decides the fallback
// for values that do not parse.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseFlag reads a boolean cell the way an import does: "true" in any
// casing is true, everything else (including garbage) is false.
func parseFlag(s string) bool {
	return strings.EqualFold(s, "true")
}

// parseAnswer reads a yes/no answer typed at a prompt.
// Accepts true/false, t/f, yes/no, y/n, 1/0 in any casing; an empty
// answer means no. Unlike parseFlag it reports whether the answer was
// recognisable at all, so the caller can reject instead of guessing.
func parseAnswer(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0", "":
		return false, true
	default:
		return false, false
	}
}

// ParseAnswer exposes the yes/no answer vocabulary to confirmation
// prompts outside this package.
func ParseAnswer(s string) (value, ok bool) {
	return parseAnswer(s)
}

// parseGPA parses a grade average cell. NaN and the infinities count as
// unparsable; they are never meaningful grade averages.
func parseGPA(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// clampGPA forces v into [MinGPA, MaxGPA] and reports whether it had to
// move the value.
func clampGPA(v float64) (float64, bool) {
	switch {
	case v < MinGPA:
		return MinGPA, true
	case v > MaxGPA:
		return MaxGPA, true
	}
	return v, false
}

// formatDate renders t in the roster's date layout.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// formatGPA renders a grade average with no trailing zeros, so 3.50
// round-trips as "3.5" and 4.0 as "4".
func formatGPA(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
