package split

import (
	"strings"
	"testing"
)

func TestFilenameSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Introduction", "introduction"},
		{"Results & Discussion", "results-discussion"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Already-Hyphen--ated", "already-hyphen-ated"},
		{"Résumé Café", "resume-cafe"},
		{"100% Done!", "100-done"},
		{"___", ""},
		{"", ""},
	}
	for _, tc := range tests {
		r := Result{Title: tc.title}
		if got := r.FilenameSlug(); got != tc.want {
			t.Errorf("slug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestFilenameSlug_OutputAlphabet(t *testing.T) {
	r := Result{Title: "Ünïcode — with/strange\\chars\tand\nbreaks"}
	slug := r.FilenameSlug()
	for _, c := range slug {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
			t.Fatalf("slug %q contains %q outside [a-z0-9-]", slug, c)
		}
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		t.Errorf("slug %q has a leading or trailing hyphen", slug)
	}
}

func TestFilenameSlug_Bounded(t *testing.T) {
	r := Result{Title: strings.Repeat("very long title ", 20)}
	slug := r.FilenameSlug()
	if len(slug) > 100 {
		t.Errorf("slug length %d exceeds 100", len(slug))
	}
	if strings.HasSuffix(slug, "-") {
		t.Errorf("truncated slug %q ends with a hyphen", slug)
	}
}

func TestFilenameSlug_Deterministic(t *testing.T) {
	r := Result{Title: "Some Title"}
	if r.FilenameSlug() != r.FilenameSlug() {
		t.Error("slug must be a pure function of the title")
	}
}
