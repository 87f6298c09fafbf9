package store

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase passthrough", "brand plan", "brand plan"},
		{"uppercase and punctuation", "Brand Plan, 1987!", "brand plan 1987"},
		{"abbreviation with spaces", "R. J. Reynolds", "rj reynolds"},
		{"abbreviation without spaces", "R.J. Reynolds", "rj reynolds"},
		{"collapse whitespace", "  memo\t\tto   staff ", "memo to staff"},
		{"digits kept", "Budget FY 1992", "budget fy 1992"},
		{"only punctuation", "***", ""},
		{"single letters merge per run", "A B testing C D", "ab testing cd"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTitle(tc.in); got != tc.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
