package bibliography

import (
	"fmt"
	"os"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"

	"github.com/TomBener/devonthink-mcp/internal/bibjson"
	"github.com/TomBener/devonthink-mcp/internal/bibtex"
	"github.com/TomBener/devonthink-mcp/internal/config"
	"github.com/TomBener/devonthink-mcp/internal/pathutil"
)

// Match types carried in a Result.
const (
	MatchTypePath        = "path"
	MatchTypeCitationKey = "citationKey"
)

// errNotConfigured is the single diagnostic returned when neither export
// is configured.
var errNotConfigured = fmt.Sprintf(
	"no bibliography source configured: set %s or %s", config.EnvJSONPath, config.EnvBibPath)

// errEmptyKey is the diagnostic for a blank citation-key query.
const errEmptyKey = "citation key must not be empty"

// Options overrides the export locations for a single lookup. Empty fields
// fall back to the environment and then the global config file.
type Options struct {
	JSONPath string `json:"json_path,omitempty"`
	BibPath  string `json:"bib_path,omitempty"`
}

// Result is the discriminated outcome of a lookup. On success the
// source-specific locator is populated: MatchPath for structured matches,
// RawEntry for text matches. On failure Errors holds one diagnostic per
// attempted source, in source-attempt order.
type Result struct {
	Success      bool        `json:"success"`
	Source       string      `json:"source,omitempty"`
	MatchType    string      `json:"matchType,omitempty"`
	MatchValue   string      `json:"matchValue,omitempty"`
	MatchedField string      `json:"matchedField,omitempty"`
	Descriptor   *Descriptor `json:"descriptor,omitempty"`
	MatchPath    []string    `json:"matchPath,omitempty"`
	RawEntry     string      `json:"rawEntry,omitempty"`
	Errors       []string    `json:"errors,omitempty"`
}

// Resolver coordinates the two metadata sources and memoizes parsed file
// contents. The cache is owned by the resolver instance rather than being
// process-global; a failed read or parse is never cached, so transient
// failures retry the filesystem on the next call.
type Resolver struct {
	cache *gocache.Cache
}

// NewResolver creates a resolver with an empty parse cache.
func NewResolver() *Resolver {
	return &Resolver{cache: gocache.New(gocache.NoExpiration, 0)}
}

// ClearCache drops all memoized parsed content for both export kinds.
// Callers invoke it when the underlying files may have changed; no file
// watching or mtime check is performed.
func (r *Resolver) ClearCache() {
	r.cache.Flush()
}

// LookupByPath finds the entry whose attachment matches a Finder-style
// path. The structured export is consulted first, then the text export.
func (r *Resolver) LookupByPath(finderPath string, opts Options) Result {
	jsonPath, bibPath := resolvePaths(opts)
	if jsonPath == "" && bibPath == "" {
		return Result{Errors: []string{errNotConfigured}}
	}

	variants := pathutil.Variants(finderPath)
	var errs []string

	if jsonPath != "" {
		root, err := r.loadJSON(jsonPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("JSON metadata file not found at %s", jsonPath))
		} else {
			for _, entry := range bibjson.Entries(root) {
				matchPath, _, ok := bibjson.FindValue(entry, variants)
				if !ok {
					continue
				}
				d := FromStructured(entry)
				matchedField := ""
				if len(matchPath) > 0 {
					matchedField = matchPath[len(matchPath)-1]
				}
				return Result{
					Success:      true,
					Source:       SourceStructured,
					MatchType:    MatchTypePath,
					MatchValue:   finderPath,
					MatchedField: matchedField,
					Descriptor:   &d,
					MatchPath:    matchPath,
				}
			}
			errs = append(errs, fmt.Sprintf("No matching entry found in JSON metadata at %s", jsonPath))
		}
	}

	if bibPath != "" {
		entries, err := r.loadBib(bibPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("BibTeX metadata file not found at %s", bibPath))
		} else {
			for _, e := range entries {
				field, ok := matchEntryField(e, variants)
				if !ok {
					continue
				}
				d := FromText(e)
				return Result{
					Success:      true,
					Source:       SourceText,
					MatchType:    MatchTypePath,
					MatchValue:   finderPath,
					MatchedField: field,
					Descriptor:   &d,
					RawEntry:     e.Raw,
				}
			}
			errs = append(errs, fmt.Sprintf("No matching entry found in BibTeX metadata at %s", bibPath))
		}
	}

	return Result{Errors: errs}
}

// LookupByCitationKey finds the entry with the given citation key.
// Matching is case-insensitive and whitespace-trimmed; an empty key is
// rejected before any file is touched.
func (r *Resolver) LookupByCitationKey(key string, opts Options) Result {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return Result{Errors: []string{errEmptyKey}}
	}

	jsonPath, bibPath := resolvePaths(opts)
	if jsonPath == "" && bibPath == "" {
		return Result{Errors: []string{errNotConfigured}}
	}

	var errs []string

	if jsonPath != "" {
		root, err := r.loadJSON(jsonPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("JSON metadata file not found at %s", jsonPath))
		} else {
			for _, entry := range bibjson.Entries(root) {
				field, candidate := firstField(entry, structuredCitekeyFields)
				if candidate == "" || !strings.EqualFold(candidate, trimmed) {
					continue
				}
				d := FromStructured(entry)
				return Result{
					Success:      true,
					Source:       SourceStructured,
					MatchType:    MatchTypeCitationKey,
					MatchValue:   trimmed,
					MatchedField: field,
					Descriptor:   &d,
				}
			}
			errs = append(errs, fmt.Sprintf("No entry with citation key '%s' in JSON metadata at %s", trimmed, jsonPath))
		}
	}

	if bibPath != "" {
		entries, err := r.loadBib(bibPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("BibTeX metadata file not found at %s", bibPath))
		} else {
			for _, e := range entries {
				field, ok := matchEntryCitekey(e, trimmed)
				if !ok {
					continue
				}
				d := FromText(e)
				return Result{
					Success:      true,
					Source:       SourceText,
					MatchType:    MatchTypeCitationKey,
					MatchValue:   trimmed,
					MatchedField: field,
					Descriptor:   &d,
					RawEntry:     e.Raw,
				}
			}
			errs = append(errs, fmt.Sprintf("No entry with citation key '%s' in BibTeX metadata at %s", trimmed, bibPath))
		}
	}

	return Result{Errors: errs}
}

// resolvePaths applies the option / environment / global-config fallback
// chain for both export locations.
func resolvePaths(o Options) (jsonPath, bibPath string) {
	jsonPath = o.JSONPath
	if jsonPath == "" {
		jsonPath = config.JSONPath()
	}
	bibPath = o.BibPath
	if bibPath == "" {
		bibPath = config.BibPath()
	}
	return jsonPath, bibPath
}

// matchEntryField scans a text entry's field values in parse order and
// returns the first field whose value matches the variant set.
func matchEntryField(e bibtex.Entry, variants []string) (string, bool) {
	for _, name := range e.Names {
		if pathutil.Matches(e.Fields[name], variants) {
			return name, true
		}
	}
	return "", false
}

// matchEntryCitekey tests a text entry's own key and then the fixed
// alternate fields, case-insensitively.
func matchEntryCitekey(e bibtex.Entry, key string) (string, bool) {
	if strings.EqualFold(e.Key, key) {
		return "key", true
	}
	for _, name := range textCitekeyAltFields {
		if v := e.Fields[name]; v != "" && strings.EqualFold(v, key) {
			return name, true
		}
	}
	return "", false
}

// loadJSON reads and parses the structured export, memoizing the parsed
// tree by absolute path.
func (r *Resolver) loadJSON(path string) (gjson.Result, error) {
	key := "json:" + path
	if v, ok := r.cache.Get(key); ok {
		return v.(gjson.Result), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("invalid JSON in %s", path)
	}

	root := gjson.ParseBytes(data)
	r.cache.Set(key, root, gocache.NoExpiration)
	return root, nil
}

// loadBib reads and parses the text export, memoizing the entry list by
// absolute path. Entries whose header does not parse are dropped.
func (r *Resolver) loadBib(path string) ([]bibtex.Entry, error) {
	key := "bib:" + path
	if v, ok := r.cache.Get(key); ok {
		return v.([]bibtex.Entry), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []bibtex.Entry
	for _, raw := range bibtex.SplitEntries(string(data)) {
		if e, ok := bibtex.ParseEntry(raw); ok {
			entries = append(entries, e)
		}
	}

	r.cache.Set(key, entries, gocache.NoExpiration)
	return entries, nil
}
