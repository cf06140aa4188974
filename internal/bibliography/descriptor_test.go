package bibliography

import (
	"reflect"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/TomBener/devonthink-mcp/internal/bibtex"
)

func TestFromStructured(t *testing.T) {
	entry := gjson.Parse(`{
		"citationkey": "smith2024deep",
		"id": "ITEM-1",
		"zotero_id": "Z123",
		"title": "Deep Learning for Phylogenetics",
		"attachments": [{"localPath": "/U/Papers/Smith2024.pdf"}]
	}`)

	d := FromStructured(entry)

	if d.Source != SourceStructured {
		t.Errorf("Source = %q, want %q", d.Source, SourceStructured)
	}
	if d.CitationKey != "smith2024deep" {
		t.Errorf("CitationKey = %q, want smith2024deep", d.CitationKey)
	}
	if d.ExternalID != "Z123" {
		t.Errorf("ExternalID = %q, want Z123 (zotero_id precedes id)", d.ExternalID)
	}
	if d.Title != "Deep Learning for Phylogenetics" {
		t.Errorf("Title = %q", d.Title)
	}
	if want := []string{"/U/Papers/Smith2024.pdf"}; !reflect.DeepEqual(d.AttachmentPaths, want) {
		t.Errorf("AttachmentPaths = %v, want %v", d.AttachmentPaths, want)
	}
}

func TestFromStructuredFallsBackToID(t *testing.T) {
	entry := gjson.Parse(`{"id": 42, "title": "Untitled"}`)
	d := FromStructured(entry)

	if d.CitationKey != "42" {
		t.Errorf("CitationKey = %q, want numeric id rendered as string", d.CitationKey)
	}
	if d.ExternalID != "42" {
		t.Errorf("ExternalID = %q, want 42", d.ExternalID)
	}
}

func TestFromText(t *testing.T) {
	raw := `@inproceedings{garcia2021context,
  title = {Context Matters},
  zotero_id = {Z456},
  file = {application/pdf:/U/Papers/Garcia2021.pdf:PDF},
  path = {/U/Papers/Garcia2021-supp.pdf},
  url = {https://doi.org/10.1234/garcia},
}`
	e, ok := bibtex.ParseEntry(raw)
	if !ok {
		t.Fatal("ParseEntry() failed")
	}

	d := FromText(e)

	if d.Source != SourceText {
		t.Errorf("Source = %q, want %q", d.Source, SourceText)
	}
	if d.CitationKey != "garcia2021context" {
		t.Errorf("CitationKey = %q, want the entry key", d.CitationKey)
	}
	if d.ExternalID != "Z456" {
		t.Errorf("ExternalID = %q, want Z456", d.ExternalID)
	}
	if d.Title != "Context Matters" {
		t.Errorf("Title = %q", d.Title)
	}

	want := []string{"/U/Papers/Garcia2021.pdf", "/U/Papers/Garcia2021-supp.pdf"}
	if !reflect.DeepEqual(d.AttachmentPaths, want) {
		t.Errorf("AttachmentPaths = %v, want %v (file field first, hint fields after, web URL excluded)",
			d.AttachmentPaths, want)
	}
}
