package catalog

import "testing"

func TestValidHash(t *testing.T) {
	cases := []struct {
		hash string
		want bool
	}{
		{testHash("a"), true},
		{testHash("0"), true},
		{testHash("A"), false}, // uppercase
		{testHash("g"), false}, // non-hex
		{"abc", false},         // too short
		{testHash("a") + "a", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := validHash(tc.hash); got != tc.want {
			t.Errorf("validHash(%q) = %v, want %v", tc.hash, got, tc.want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"smith", "smith"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}

	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("  Artist X "); got != "Artist X" {
		t.Errorf("expected trimmed text, got %q", got)
	}

	// Decomposed e + combining acute composes to a single rune
	if got := normalizeText("Béla"); got != "Béla" {
		t.Errorf("expected NFC-composed text, got %q", got)
	}
}

func TestFindOrphansCleanCatalog(t *testing.T) {
	c := openTestCatalog(t)
	hashes := seedAudios(t, c, 2)

	if err := c.AddToPlaylist("Road Trip", hashes[0]); err != nil {
		t.Fatalf("failed to add to playlist: %v", err)
	}

	orphans, err := c.FindOrphans()
	if err != nil {
		t.Fatalf("failed to find orphans: %v", err)
	}
	if orphans.Locations != 0 || orphans.PlaylistEntries != 0 {
		t.Errorf("expected no orphans with foreign keys enforced, got %+v", orphans)
	}
}
