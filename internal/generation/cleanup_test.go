package generation

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "gm fam, shipping today", "gm fam, shipping today"},
		{"double quotes", `"gm fam, shipping today"`, "gm fam, shipping today"},
		{"single quotes", "'gm fam'", "gm fam"},
		{"curly quotes", "“gm fam”", "gm fam"},
		{"asymmetric quote kept", `"gm fam`, `"gm fam`},
		{"label", "Post: gm fam", "gm fam"},
		{"label case", "TWEET:   gm fam", "gm fam"},
		{"quoted label", `"Draft: gm fam"`, "gm fam"},
		{"whitespace", "  gm fam \n", "gm fam"},
		{"inner quotes kept", `she said "wagmi" today`, `she said "wagmi" today`},
		{"only quotes", `""`, ""},
		{"single quote char", `"`, `"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	for _, in := range []string{`"Post: gm fam"`, "gm fam", "“Tweet: hello there”"} {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
