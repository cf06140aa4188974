package bibliography

import (
	"github.com/tidwall/gjson"

	"github.com/TomBener/devonthink-mcp/internal/attachment"
	"github.com/TomBener/devonthink-mcp/internal/bibjson"
	"github.com/TomBener/devonthink-mcp/internal/bibtex"
)

// Source values identifying which export a result came from.
const (
	SourceStructured = "structured"
	SourceText       = "text"
)

// Descriptor is the unified, source-agnostic summary of one entry's
// identity and attachments. It is derived, never stored: rebuilt from the
// owning entry on every query.
type Descriptor struct {
	Source          string   `json:"source"`
	CitationKey     string   `json:"citationKey,omitempty"`
	ExternalID      string   `json:"externalId,omitempty"`
	Title           string   `json:"title,omitempty"`
	AttachmentPaths []string `json:"attachmentPaths"`
}

// Field-name precedence lists for projecting entries into descriptors.
var (
	structuredCitekeyFields    = []string{"citationKey", "citationkey", "id"}
	structuredExternalIDFields = []string{"bibliographyId", "zotero_id", "key", "id"}
	textExternalIDFields       = []string{"zotero_id", "id", "citationkey"}
	textCitekeyAltFields       = []string{"citationkey", "id", "zotero_id"}
)

// FromStructured projects a structured entry into a descriptor.
func FromStructured(entry gjson.Result) Descriptor {
	_, citekey := firstField(entry, structuredCitekeyFields)
	_, externalID := firstField(entry, structuredExternalIDFields)

	d := Descriptor{
		Source:          SourceStructured,
		CitationKey:     citekey,
		ExternalID:      externalID,
		AttachmentPaths: bibjson.CollectAttachments(entry),
	}
	if title := entry.Get("title"); title.Type == gjson.String {
		d.Title = title.Str
	}
	return d
}

// FromText projects a parsed text entry into a descriptor. Attachments are
// the union of the decoded "file" field and any other path-hint field whose
// value looks like an attachment.
func FromText(e bibtex.Entry) Descriptor {
	d := Descriptor{
		Source:      SourceText,
		CitationKey: e.Key,
		Title:       e.Fields["title"],
	}
	for _, name := range textExternalIDFields {
		if v := e.Fields[name]; v != "" {
			d.ExternalID = v
			break
		}
	}

	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			d.AttachmentPaths = append(d.AttachmentPaths, p)
		}
	}

	for _, p := range bibtex.ParseFileField(e.Fields["file"]) {
		add(p)
	}
	for _, name := range e.Names {
		if name == "file" || !attachment.IsHintKey(name) {
			continue
		}
		value := e.Fields[name]
		if !attachment.IsLikely(value, name) {
			continue
		}
		if p, ok := attachment.Normalize(value); ok {
			add(p)
		}
	}

	return d
}

// firstField returns the name and string rendering of the first field in
// the precedence list that is present with a string or numeric value.
func firstField(entry gjson.Result, names []string) (string, string) {
	for _, name := range names {
		v := entry.Get(name)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.String || v.Type == gjson.Number {
			if s := v.String(); s != "" {
				return name, s
			}
		}
	}
	return "", ""
}
