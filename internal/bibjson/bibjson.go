// Package bibjson walks the structured (JSON) bibliography export. The
// export is held as a gjson.Result, a closed variant over
// null/bool/number/string/array/object that preserves document key order,
// so traversal is deterministic and the source tree is never mutated.
package bibjson

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/TomBener/devonthink-mcp/internal/attachment"
	"github.com/TomBener/devonthink-mcp/internal/pathutil"
)

// Entries extracts the entry list from a parsed export. A top-level array
// is the entry list; an object with an "items" array uses that array;
// anything else is treated as a single entry. Non-object entries are
// skipped.
func Entries(root gjson.Result) []gjson.Result {
	var list []gjson.Result
	switch {
	case root.IsArray():
		list = root.Array()
	case root.IsObject():
		if items := root.Get("items"); items.IsArray() {
			list = items.Array()
		} else {
			list = []gjson.Result{root}
		}
	default:
		list = []gjson.Result{root}
	}

	entries := make([]gjson.Result, 0, len(list))
	for _, e := range list {
		if e.IsObject() {
			entries = append(entries, e)
		}
	}
	return entries
}

// CollectAttachments gathers every attachment-like string in an entry tree
// in depth-first traversal order. Object values are tested with their own
// key as hint; array elements inherit the hint of their containing key.
// Results are normalized and deduplicated, retaining first-seen order.
func CollectAttachments(entry gjson.Result) []string {
	var out []string
	seen := make(map[string]bool)

	var walk func(v gjson.Result, hint string)
	walk = func(v gjson.Result, hint string) {
		switch {
		case v.IsObject():
			v.ForEach(func(key, child gjson.Result) bool {
				walk(child, key.Str)
				return true
			})
		case v.IsArray():
			v.ForEach(func(_, child gjson.Result) bool {
				walk(child, hint)
				return true
			})
		case v.Type == gjson.String:
			if !attachment.IsLikely(v.Str, hint) {
				return
			}
			if p, ok := attachment.Normalize(v.Str); ok && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}

	walk(entry, "")
	return out
}

// FindValue locates the first string in an entry tree whose canonical form
// matches the variant set, searching depth-first in pre-order (object keys
// in document order, array indices ascending). It returns the key/index
// path to the matched value.
func FindValue(entry gjson.Result, variants []string) (path []string, value string, ok bool) {
	var walk func(v gjson.Result, trail []string) bool
	walk = func(v gjson.Result, trail []string) bool {
		switch {
		case v.IsObject():
			found := false
			v.ForEach(func(key, child gjson.Result) bool {
				if walk(child, append(trail, key.Str)) {
					found = true
					return false
				}
				return true
			})
			return found
		case v.IsArray():
			found := false
			i := 0
			v.ForEach(func(_, child gjson.Result) bool {
				if walk(child, append(trail, strconv.Itoa(i))) {
					found = true
					return false
				}
				i++
				return true
			})
			return found
		case v.Type == gjson.String:
			if pathutil.Matches(v.Str, variants) {
				path = append([]string(nil), trail...)
				value = v.Str
				return true
			}
		}
		return false
	}

	ok = walk(entry, nil)
	return path, value, ok
}
