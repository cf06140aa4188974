package docstore

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddAndCount(t *testing.T) {
	db := openTestDB(t)

	recs := []Record{
		{UUID: "A-1", Name: "Smith2024.pdf", Location: "/Papers", Path: "/U/Papers/Smith2024.pdf"},
		{UUID: "B-2", Name: "Garcia2021.pdf", Location: "/Papers", Path: "/U/Papers/Garcia2021.pdf"},
	}
	for _, rec := range recs {
		if err := db.Add(rec); err != nil {
			t.Fatalf("Add(%s) failed: %v", rec.UUID, err)
		}
	}

	n, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestAddUpsertsByUUID(t *testing.T) {
	db := openTestDB(t)

	if err := db.Add(Record{UUID: "A-1", Name: "old.pdf", Path: "/U/old.pdf"}); err != nil {
		t.Fatal(err)
	}
	if err := db.Add(Record{UUID: "A-1", Name: "new.pdf", Path: "/U/new.pdf"}); err != nil {
		t.Fatal(err)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("Count() = %d, want 1 after upsert", n)
	}

	recs, err := db.SearchByPath("/U/new.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Name != "new.pdf" {
		t.Errorf("SearchByPath() = %v, want the updated record", recs)
	}
}

func TestAddRejectsEmptyUUID(t *testing.T) {
	db := openTestDB(t)
	if err := db.Add(Record{Name: "x.pdf"}); err == nil {
		t.Error("Add() should reject an empty UUID")
	}
}

func TestSearchByPathVariants(t *testing.T) {
	db := openTestDB(t)
	if err := db.Add(Record{UUID: "A-1", Name: "Deep Dive.pdf", Location: "/Papers", Path: "/U/Papers/Deep Dive.pdf"}); err != nil {
		t.Fatal(err)
	}

	queries := map[string]string{
		"exact":           "/U/Papers/Deep Dive.pdf",
		"percent-encoded": "/U/Papers/Deep%20Dive.pdf",
		"file URL":        "file:///U/Papers/Deep%20Dive.pdf",
		"backslashes":     `\U\Papers\Deep Dive.pdf`,
	}
	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			recs, err := db.SearchByPath(query)
			if err != nil {
				t.Fatalf("SearchByPath(%q) failed: %v", query, err)
			}
			if len(recs) != 1 || recs[0].UUID != "A-1" {
				t.Errorf("SearchByPath(%q) = %v, want the single A-1 record", query, recs)
			}
		})
	}
}

func TestSearchByPathSubstring(t *testing.T) {
	db := openTestDB(t)
	if err := db.Add(Record{UUID: "A-1", Name: "Smith2024.pdf", Path: "/U/Papers/Archive/Smith2024.pdf"}); err != nil {
		t.Fatal(err)
	}

	recs, err := db.SearchByPath("Archive/Smith2024.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("SearchByPath() = %v, want a containment match", recs)
	}
}

func TestSearchByPathMergesByUUID(t *testing.T) {
	db := openTestDB(t)
	// One record matching on both path and location still appears once.
	if err := db.Add(Record{
		UUID:     "A-1",
		Name:     "Smith2024.pdf",
		Location: "/U/Papers/Smith2024.pdf",
		Path:     "/U/Papers/Smith2024.pdf",
	}); err != nil {
		t.Fatal(err)
	}

	recs, err := db.SearchByPath("/U/Papers/Smith2024.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("SearchByPath() returned %d records, want 1 after UUID merge", len(recs))
	}
}

func TestSearchByPathNoMatch(t *testing.T) {
	db := openTestDB(t)
	if err := db.Add(Record{UUID: "A-1", Name: "x.pdf", Path: "/U/x.pdf"}); err != nil {
		t.Fatal(err)
	}

	recs, err := db.SearchByPath("/elsewhere/y.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("SearchByPath() = %v, want no records", recs)
	}
}
