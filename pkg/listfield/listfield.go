// Package listfield parses the comma-joined multi-value strings delivered
// by upstream movie metadata APIs (genre, director, cast) into ordered
// lists. Keeping the parsing here keeps the scoring code free of string
// edge cases.
package listfield

import "strings"

// NotAvailable is the sentinel the upstream APIs use for a missing field.
const NotAvailable = "N/A"

// Split parses a comma-joined field into an ordered list of trimmed,
// non-empty values. An empty string or the "N/A" sentinel yields nil.
func Split(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == NotAvailable {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == NotAvailable {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FirstN returns at most the first n values of the list, preserving order.
func FirstN(values []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(values) <= n {
		return values
	}
	return values[:n]
}

// Join renders a list back into the upstream comma-joined form.
func Join(values []string) string {
	return strings.Join(values, ", ")
}

// Contains reports whether the list carries the given value.
func Contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
