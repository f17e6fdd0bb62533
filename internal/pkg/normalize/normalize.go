// Package normalize folds free-text labels (categories, tags, qualities)
// into a canonical comparable form: lowercase, no diacritics, no
// punctuation or whitespace. The output is what gets stored in the
// *Norm fields and what every filter matches against, so the exact
// transform is part of the storage contract.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text returns the canonical form of a raw label.
//
// Steps: trim, invariant lowercase, NFD decomposition, strip combining
// marks (Mn), drop whitespace and punctuation runes, NFC recompose.
// Total over all inputs; empty and all-whitespace strings map to "".
func Text(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// List maps Text over raw, drops entries that normalize to empty and
// removes exact duplicates while keeping first-occurrence order.
// Returns nil for empty input.
func List(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		n := Text(r)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
