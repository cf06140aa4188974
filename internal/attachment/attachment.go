// Package attachment classifies and normalizes strings that may refer to
// local attachment files. Classification is a pure function of the value
// and an optional structural key hint so its behavior can be pinned down by
// direct unit tests.
package attachment

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/TomBener/devonthink-mcp/internal/pathutil"
)

// nonLocalScheme matches URI schemes that never point at a local file:
// web URLs, reference-manager internal links, and DEVONthink item pointers.
var nonLocalScheme = regexp.MustCompile(`(?i)^(https?|zotero|x-devonthink-item)://`)

// driveLetter matches Windows-style absolute path prefixes.
var driveLetter = regexp.MustCompile(`^[A-Za-z]:[/\\]`)

// hintKeys are structural key names associated with file locations. A value
// stored under one of these keys is treated as an attachment path without
// further inspection.
var hintKeys = map[string]bool{
	"path":         true,
	"localpath":    true,
	"file":         true,
	"uri":          true,
	"url":          true,
	"relativepath": true,
}

// docExtensions are file extensions that mark a bare string as a likely
// document or image attachment.
var docExtensions = map[string]bool{
	".pdf":  true,
	".epub": true,
	".djvu": true,
	".doc":  true,
	".docx": true,
	".rtf":  true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".gif":  true,
}

// IsHintKey reports whether a structural key name is associated with file
// locations. Comparison is case-insensitive.
func IsHintKey(key string) bool {
	return hintKeys[strings.ToLower(key)]
}

// IsLikely reports whether a string value, given an optional structural key
// hint, likely refers to a local attachment file. Non-local URI schemes are
// rejected before the hint is consulted.
func IsLikely(value, keyHint string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	if nonLocalScheme.MatchString(v) {
		return false
	}
	if IsHintKey(keyHint) {
		return true
	}

	c := pathutil.Canonicalize(v)
	if strings.HasPrefix(c, "/") || strings.HasPrefix(c, "~") || strings.HasPrefix(c, ":") {
		return true
	}
	if driveLetter.MatchString(c) {
		return true
	}
	return docExtensions[strings.ToLower(path.Ext(c))]
}

// Normalize converts an attachment-like value to a plain filesystem path:
// canonicalized, one leading volume colon stripped, percent escapes decoded
// (kept undecoded if malformed), and a leading ~/ expanded to the home
// directory. The second return value is false for an empty result.
func Normalize(value string) (string, bool) {
	c := pathutil.Canonicalize(value)
	c = strings.TrimPrefix(c, ":")
	if decoded, err := url.PathUnescape(c); err == nil {
		c = decoded
	}
	if strings.HasPrefix(c, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c = filepath.Join(home, c[2:])
		}
	}
	if c == "" {
		return "", false
	}
	return c, true
}
