package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  time.Time
		valid bool
	}{
		{"date only", "2025-03-15", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"rfc3339", "2025-03-15T10:30:00Z", time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"empty is zero", "", time.Time{}, true},
		{"garbage", "15/03/2025", time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.raw)
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want Pagination
	}{
		{"defaults", "/x", Pagination{Page: 1, Limit: 10}},
		{"explicit", "/x?page=3&limit=25", Pagination{Page: 3, Limit: 25}},
		{"clamped to max", "/x?limit=500", Pagination{Page: 1, Limit: 100}},
		{"bad values fall back", "/x?page=zero&limit=-4", Pagination{Page: 1, Limit: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			got := ParsePagination(r, 10, 100)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "", "name is required")
	v.Required("email", "  ", "email is required")
	v.Enum("status", "archived", []string{"Pending", "Resolved"}, "unknown status")
	v.Enum("priority", "High", []string{"Low", "Medium", "High"}, "unknown priority")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("issues = %d, want 3", len(issues))
	}
	// Sorted by field name for stable payloads.
	if issues[0].Field != "email" || issues[1].Field != "name" || issues[2].Field != "status" {
		t.Errorf("unexpected order: %+v", issues)
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()

	if _, ok := v.Date("hireDate", "2025-01-31"); !ok {
		t.Error("valid date rejected")
	}
	if v.HasIssues() {
		t.Errorf("no issues expected yet: %+v", v.Issues())
	}

	if _, ok := v.Date("hireDate", "31-01-2025"); ok {
		t.Error("invalid date accepted")
	}
	if !v.HasIssues() {
		t.Error("expected an issue for the invalid date")
	}
}
