package metrics

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/healthz", "/healthz"},
		{"/api", "/api"},
		{"/api/query", "/api/query"},
		{"/api/cropyields", "/api/cropyields"},
		{"/api/cropyields/42", "/api/cropyields/:id"},
		{"/api/cropyields/42/", "/api/cropyields/:id"},
	}
	for _, tc := range cases {
		if got := canonicalPath(tc.in); got != tc.want {
			t.Fatalf("canonicalPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
