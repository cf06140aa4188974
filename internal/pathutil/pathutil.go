// Package pathutil normalizes filesystem path strings and expands them into
// the alternate encodings used across bibliography exports and DEVONthink
// records.
package pathutil

import (
	"net/url"
	"strings"
)

// Canonicalize reduces a path-like string to the single normal form used
// for every comparison: trimmed, file:// URLs converted to plain paths,
// backslash separators replaced with forward slashes. A backslash before a
// space is a shell-style escape, not a separator, and survives unchanged.
func Canonicalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 7 && strings.EqualFold(s[:7], "file://") {
		// Ignore conversion failure and fall back to the raw trimmed string.
		if u, err := url.Parse(s); err == nil && u.Path != "" {
			s = u.Path
		}
	}
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && (i+1 >= len(s) || s[i+1] != ' ') {
			b.WriteByte('/')
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Variants expands one path into the set of encodings under which it may be
// stored: the slash-normalized form, DEVONthink-style volume forms for
// absolute paths, percent-encoded forms, a file URL, and space-escaped
// forms. Every member is canonicalized; duplicates are removed while
// preserving first-seen order.
func Variants(path string) []string {
	base := Canonicalize(path)

	// A query may arrive already percent-encoded while the export stores
	// the decoded path, so the decoded form seeds the set as well.
	seeds := []string{base}
	if decoded, err := url.PathUnescape(base); err == nil && decoded != base {
		seeds = append(seeds, decoded)
	}

	var raw []string
	for _, s := range seeds {
		raw = append(raw, s)
		if strings.HasPrefix(s, "/") {
			raw = append(raw, ":"+s, ":"+s+":")
		}
	}
	for _, r := range raw[:len(raw):len(raw)] {
		raw = append(raw, percentEncode(r))
	}
	fileURL := "file://" + percentEncode(base)
	raw = append(raw,
		fileURL,
		strings.TrimPrefix(fileURL, "file://"),
		strings.ReplaceAll(base, " ", `\ `),
		strings.ReplaceAll(base, " ", "%20"),
	)

	seen := make(map[string]bool, len(raw))
	variants := make([]string, 0, len(raw))
	for _, r := range raw {
		v := Canonicalize(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants
}

// Matches reports whether a stored value refers to any member of a variant
// set. The value matches on canonical equality, or when it contains a
// variant as a substring, which covers stored values carrying wrapper
// syntax (such as a volume qualifier) the variant set did not anticipate.
func Matches(value string, variants []string) bool {
	c := Canonicalize(value)
	for _, v := range variants {
		if c == v || strings.Contains(c, v) {
			return true
		}
	}
	return false
}

// percentEncode encodes a path the way a browser encodes a URL path:
// spaces and other reserved bytes become %XX escapes while slashes and
// colons survive.
func percentEncode(s string) string {
	u := url.URL{Path: s}
	return u.EscapedPath()
}
