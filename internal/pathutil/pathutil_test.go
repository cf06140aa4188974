package pathutil

import (
	"strings"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  /Users/me/paper.pdf  ", "/Users/me/paper.pdf"},
		{"file URL decoded", "file:///Users/me/a%20b.pdf", "/Users/me/a b.pdf"},
		{"file URL case-insensitive", "FILE:///tmp/x.pdf", "/tmp/x.pdf"},
		{"backslashes normalized", `C:\Papers\x.pdf`, "C:/Papers/x.pdf"},
		{"escaped space preserved", `/U/a\ b.pdf`, `/U/a\ b.pdf`},
		{"plain path unchanged", "/a/b/c.pdf", "/a/b/c.pdf"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.input); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVariantsAbsolutePath(t *testing.T) {
	variants := Variants("/U/Papers/a b.pdf")

	want := []string{
		"/U/Papers/a b.pdf",
		":/U/Papers/a b.pdf",
		":/U/Papers/a b.pdf:",
		"/U/Papers/a%20b.pdf",
		":/U/Papers/a%20b.pdf",
		":/U/Papers/a%20b.pdf:",
		`/U/Papers/a\ b.pdf`,
	}
	for _, w := range want {
		if !contains(variants, w) {
			t.Errorf("Variants() missing %q, got %v", w, variants)
		}
	}

	if variants[0] != "/U/Papers/a b.pdf" {
		t.Errorf("Variants() first member should be the canonical path, got %q", variants[0])
	}
}

func TestVariantsDeduplicates(t *testing.T) {
	variants := Variants("/U/plain.pdf")
	seen := make(map[string]bool)
	for _, v := range variants {
		if seen[v] {
			t.Errorf("Variants() contains duplicate %q", v)
		}
		seen[v] = true
	}
}

func TestVariantsEncodedInputSeedsDecodedForm(t *testing.T) {
	variants := Variants("/U/Papers/a%20b.pdf")
	if !contains(variants, "/U/Papers/a b.pdf") {
		t.Errorf("Variants() of encoded input should include decoded form, got %v", variants)
	}
}

func TestVariantsRelativePathHasNoVolumeForms(t *testing.T) {
	variants := Variants("notes.txt")
	for _, v := range variants {
		if strings.HasPrefix(v, ":") {
			t.Errorf("Variants() of relative path should not include volume form %q", v)
		}
	}
}

func TestMatches(t *testing.T) {
	variants := Variants("/U/Papers/a b.pdf")

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"exact", "/U/Papers/a b.pdf", true},
		{"file URL", "file:///U/Papers/a%20b.pdf", true},
		{"volume form", ":/U/Papers/a b.pdf:", true},
		{"backslashes", `\U\Papers\a b.pdf`, true},
		{"wrapped in qualifier", "db1:/U/Papers/a b.pdf:42", true},
		{"different file", "/U/Papers/other.pdf", false},
		{"unrelated", "hello world", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.value, variants); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// A longer stored value that merely contains a variant as a text fragment
// still matches. This pins down the known false-positive behavior of the
// containment rule.
func TestMatchesSubstringContainment(t *testing.T) {
	variants := Variants("/U/Papers/Smith2024.pdf")
	if !Matches("/U/Papers/Smith2024.pdf.bak", variants) {
		t.Error("Matches() should accept a stored value containing the variant as a substring")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
