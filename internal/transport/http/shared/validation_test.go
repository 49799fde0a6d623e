package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestValidatorDateFormats(t *testing.T) {
	v := NewValidator()

	parsed, ok := v.Date("startDate", "2026-01-15")
	if !ok || !parsed.Equal(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected calendar date parsed, got %v ok=%v", parsed, ok)
	}
	parsed, ok = v.Date("startDate", "2026-01-15T09:30:00Z")
	if !ok || parsed.Hour() != 9 {
		t.Fatalf("expected RFC3339 parsed, got %v ok=%v", parsed, ok)
	}
	if v.HasIssues() {
		t.Fatalf("expected no issues, got %+v", v.Issues())
	}

	if _, ok := v.Date("startDate", "15/01/2026"); ok {
		t.Fatal("expected rejection of unknown format")
	}
	if _, ok := v.Date("endDate", ""); ok {
		t.Fatal("expected rejection of empty value")
	}
	if len(v.Issues()) != 2 {
		t.Fatalf("expected two issues, got %+v", v.Issues())
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 100},
		{"?limit=25", 25},
		{"?limit=9000", 500},
		{"?limit=-3", 100},
		{"?limit=abc", 100},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/changes"+tc.query, nil)
		if got := ParseLimit(r, 100, 500); got != tc.want {
			t.Fatalf("ParseLimit(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
