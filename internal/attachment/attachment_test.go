package attachment

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsLikely(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		keyHint string
		want    bool
	}{
		{"web URL rejected", "https://example.com/paper.pdf", "", false},
		{"web URL rejected despite hint", "https://example.com/paper.pdf", "url", false},
		{"zotero link rejected", "zotero://select/library/items/ABCD1234", "uri", false},
		{"devonthink item link rejected", "x-devonthink-item://0A1B2C3D", "path", false},
		{"hint key accepts anything", "attachments/whatever.bin", "localPath", true},
		{"hint key case-insensitive", "attachments/whatever.bin", "RELATIVEPATH", true},
		{"absolute path", "/Users/me/no-extension", "", true},
		{"home-relative path", "~/Papers/x", "", true},
		{"volume-prefixed path", ":/Volumes/Data/x", "", true},
		{"drive letter", `C:\docs\a`, "", true},
		{"document extension", "paper.pdf", "", true},
		{"image extension", "figure.PNG", "", true},
		{"bare words", "hello world", "", false},
		{"empty", "", "path", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLikely(tt.value, tt.keyHint); got != tt.want {
				t.Errorf("IsLikely(%q, %q) = %v, want %v", tt.value, tt.keyHint, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"volume marker stripped", ":/U/x.pdf", "/U/x.pdf"},
		{"percent escapes decoded", "/U/a%20b.pdf", "/U/a b.pdf"},
		{"file URL converted", "file:///U/x.pdf", "/U/x.pdf"},
		{"malformed escape kept", "/U/100%zz.pdf", "/U/100%zz.pdf"},
		{"plain path unchanged", "/U/x.pdf", "/U/x.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.value)
			if !ok {
				t.Fatalf("Normalize(%q) reported empty result", tt.value)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, ok := Normalize("~/Papers/x.pdf")
	if !ok {
		t.Fatal("Normalize(~/Papers/x.pdf) reported empty result")
	}
	if want := filepath.Join(home, "Papers/x.pdf"); got != want {
		t.Errorf("Normalize(~/Papers/x.pdf) = %q, want %q", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if _, ok := Normalize("   "); ok {
		t.Error("Normalize of blank input should report empty result")
	}
}
