// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMetadata(t *testing.T) {
	tests := []struct {
		title string
		want  map[string]any
	}{
		{
			title: "Hand Note(Akib, 2018)",
			want:  map[string]any{"author": "Akib", "year": 2018, "contentType": "Hand Note"},
		},
		{
			title: "Questions(2012 - 18)",
			want:  map[string]any{"yearRange": "2012-2018", "contentType": "Questions"},
		},
		{
			title: "Questions(2012-2018)",
			want:  map[string]any{"yearRange": "2012-2018", "contentType": "Questions"},
		},
		{
			title: "All Department Routine(L1,1)(2020)",
			want:  map[string]any{"level": 1, "term": 1, "year": 2020, "contentType": "Routine"},
		},
		{
			title: "Report(AE-44)",
			want:  map[string]any{"batch": "AE-44", "department": "AE"},
		},
		{
			title: "Hand Note(Mustafiz Sir, BA Group, 2018)",
			want: map[string]any{
				"author": "Mustafiz Sir", "group": "BA Group", "year": 2018,
				"contentType": "Hand Note",
			},
		},
		{
			title: "Suggestion(New)",
			want:  map[string]any{"isNew": true, "contentType": "Suggestion"},
		},
		{
			title: "Array Hand Note(Akib, AE-44)",
			want: map[string]any{
				"author": "Akib", "batch": "AE-44", "department": "AE",
				"contentType": "Hand Note",
			},
		},
		{
			title: "Plain title without annotations",
			want:  map[string]any{},
		},
		{
			title: "Sheet",
			want:  map[string]any{"contentType": "Sheet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Metadata(tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Metadata(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestMetadataAuthorFirstPartOnly(t *testing.T) {
	// Only the first alphabetic part becomes the author; later ones are dropped.
	got := Metadata("Book(Grewal, Kreyszig, 2015)")
	if got["author"] != "Grewal" {
		t.Errorf("author = %v, want Grewal", got["author"])
	}
	if got["year"] != 2015 {
		t.Errorf("year = %v, want 2015", got["year"])
	}
}

func TestMetadataContentTypePriority(t *testing.T) {
	// "Hand Note" outranks "Book" even when both appear in the prefix.
	got := Metadata("Book Hand Note(2019)")
	if got["contentType"] != "Hand Note" {
		t.Errorf("contentType = %v, want Hand Note", got["contentType"])
	}
}

// Identical input must serialize identically: map keys are fixed and JSON
// encoding orders them, so two runs compare byte-equal.
func TestMetadataDeterministic(t *testing.T) {
	const title = "Hand Note(Mustafiz Sir, BA Group, AE-44, 2018, New)"
	a, err := json.Marshal(Metadata(title))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(Metadata(title))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("non-deterministic output: %s vs %s", a, b)
	}
}

func TestParseAndExtract(t *testing.T) {
	block, meta, ok := ParseAndExtract("🔷 Hand Note(Akib, 2018) -\n\nhttps://example.com/n")
	if !ok {
		t.Fatal("ok = false")
	}
	if block.Title != "Hand Note(Akib, 2018)" || block.URL != "https://example.com/n" {
		t.Errorf("block = %+v", block)
	}
	if meta["author"] != "Akib" || meta["year"] != 2018 {
		t.Errorf("meta = %v", meta)
	}

	if _, _, ok := ParseAndExtract("no url here"); ok {
		t.Error("expected ok=false for block without url")
	}
}
