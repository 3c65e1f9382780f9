package expand

import "testing"

func TestExpand(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", ""},
		{"Data Structures", "data structures"},
		{"intro programming", "intro programming coding development software engineering"},
		{"AI and stats", "ai artificial intelligence machine learning and stats statistics probability data analysis"},
		{"programmings", "programmings"},
		{"  gender   history ", "gender gender studies gwst women studies history"},
	}
	for _, tc := range tests {
		if got := Expand(tc.query); got != tc.want {
			t.Errorf("Expand(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens(" Data  STRUCTURES ")
	if len(got) != 2 || got[0] != "data" || got[1] != "structures" {
		t.Errorf("unexpected tokens: %v", got)
	}
}
