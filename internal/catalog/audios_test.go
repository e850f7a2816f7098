package catalog

import (
	"errors"
	"fmt"
	"testing"
)

func TestUpsertAndFindByHash(t *testing.T) {
	c := openTestCatalog(t)

	audio := sampleAudio(testHash("a"))
	if err := c.UpsertAudio(audio); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}
	if err := c.AddLocation(testHash("a"), "/music/a.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}

	track, err := c.FindByHash(testHash("a"))
	if err != nil {
		t.Fatalf("failed to find by hash: %v", err)
	}
	if track == nil {
		t.Fatal("expected to find track, got nil")
	}

	if track.Audio != *audio {
		t.Errorf("round-trip mismatch: got %+v, want %+v", track.Audio, *audio)
	}
	if track.AudioPath != "/music/a.mp3" {
		t.Errorf("expected audio_path /music/a.mp3, got %s", track.AudioPath)
	}
	if track.ImgPath != "" {
		t.Errorf("expected empty img_path, got %s", track.ImgPath)
	}
}

func TestFindByHashUnknown(t *testing.T) {
	c := openTestCatalog(t)

	track, err := c.FindByHash(testHash("f"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track != nil {
		t.Errorf("expected nil for unknown hash, got %+v", track)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	c := openTestCatalog(t)

	audio := sampleAudio(testHash("a"))
	if err := c.UpsertAudio(audio); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}

	// Second upsert with changed fields must replace, not duplicate
	audio.Title = "Song A (remaster)"
	audio.ReleaseYear = 2024
	if err := c.UpsertAudio(audio); err != nil {
		t.Fatalf("failed to re-upsert audio: %v", err)
	}

	counts, err := c.Counts()
	if err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if counts.Audios != 1 {
		t.Errorf("expected 1 audio row, got %d", counts.Audios)
	}

	if err := c.AddLocation(testHash("a"), "/music/a.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}
	track, err := c.FindByHash(testHash("a"))
	if err != nil {
		t.Fatalf("failed to find by hash: %v", err)
	}
	if track.Title != "Song A (remaster)" || track.ReleaseYear != 2024 {
		t.Errorf("expected latest field values to win, got %+v", track.Audio)
	}
}

func TestUpsertValidation(t *testing.T) {
	c := openTestCatalog(t)

	long := make([]byte, maxTextLen+1)
	for i := range long {
		long[i] = 'x'
	}

	cases := []struct {
		name  string
		audio *Audio
	}{
		{"short hash", &Audio{FileHash: "abc"}},
		{"uppercase hash", &Audio{FileHash: testHash("A")}},
		{"non-hex hash", &Audio{FileHash: testHash("g")}},
		{"long artist", &Audio{FileHash: testHash("a"), Artist: string(long)}},
		{"negative length", &Audio{FileHash: testHash("a"), LengthSeconds: -1}},
		{"track out of range", &Audio{FileHash: testHash("a"), TrackNum: 300}},
	}

	for _, tc := range cases {
		err := c.UpsertAudio(tc.audio)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	// Nothing may have reached storage
	counts, err := c.Counts()
	if err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if counts.Audios != 0 {
		t.Errorf("expected 0 audio rows after rejected inserts, got %d", counts.Audios)
	}
}

func TestUpsertNormalizesText(t *testing.T) {
	c := openTestCatalog(t)

	audio := sampleAudio(testHash("a"))
	audio.Artist = "  Artist X  "
	if err := c.UpsertAudio(audio); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}
	if err := c.AddLocation(testHash("a"), "/music/a.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}

	track, err := c.FindByHash(testHash("a"))
	if err != nil {
		t.Fatalf("failed to find by hash: %v", err)
	}
	if track.Artist != "Artist X" {
		t.Errorf("expected trimmed artist, got %q", track.Artist)
	}
}

func TestFindByArtistSubstring(t *testing.T) {
	c := openTestCatalog(t)

	artists := map[string]string{
		testHash("1"): "Smith",
		testHash("2"): "John Smith",
		testHash("3"): "Smithson",
		testHash("4"): "Jones",
	}
	for hash, artist := range artists {
		audio := sampleAudio(hash)
		audio.Artist = artist
		if err := c.UpsertAudio(audio); err != nil {
			t.Fatalf("failed to upsert %s: %v", artist, err)
		}
		if err := c.AddLocation(hash, fmt.Sprintf("/music/%s.mp3", artist), ""); err != nil {
			t.Fatalf("failed to add location for %s: %v", artist, err)
		}
	}

	// Containment match, case-insensitive under default LIKE collation
	track, err := c.FindByArtist("smith")
	if err != nil {
		t.Fatalf("failed to find by artist: %v", err)
	}
	if track == nil {
		t.Fatal("expected a match for 'smith', got nil")
	}

	// Deterministic tie-break: lowest hash wins
	if track.FileHash != testHash("1") {
		t.Errorf("expected lowest hash %s, got %s", testHash("1"), track.FileHash)
	}

	// No match is an empty result, not an error
	track, err = c.FindByArtist("zappa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track != nil {
		t.Errorf("expected nil for no match, got %+v", track)
	}
}

func TestFindByArtistEscapesWildcards(t *testing.T) {
	c := openTestCatalog(t)

	audio := sampleAudio(testHash("a"))
	audio.Artist = "Jones"
	if err := c.UpsertAudio(audio); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}
	if err := c.AddLocation(testHash("a"), "/music/jones.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}

	// A literal % in the substring must not act as a wildcard
	track, err := c.FindByArtist("%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track != nil {
		t.Errorf("expected literal wildcard to match nothing, got %+v", track)
	}
}

func TestSearchByArtistReturnsAllMatches(t *testing.T) {
	c := openTestCatalog(t)

	for i, artist := range []string{"Smith", "John Smith", "Jones"} {
		hash := testHash(fmt.Sprintf("%d", i+1))
		audio := sampleAudio(hash)
		audio.Artist = artist
		if err := c.UpsertAudio(audio); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}
		if err := c.AddLocation(hash, fmt.Sprintf("/music/%d.mp3", i+1), ""); err != nil {
			t.Fatalf("failed to add location: %v", err)
		}
	}

	tracks, err := c.SearchByArtist("Smith")
	if err != nil {
		t.Fatalf("failed to search by artist: %v", err)
	}
	if len(tracks) != 2 {
		t.Errorf("expected 2 matches, got %d", len(tracks))
	}
}

func TestSearchByAlbumAndTitle(t *testing.T) {
	c := openTestCatalog(t)

	audio := sampleAudio(testHash("a"))
	audio.Album = "Greatest Hits"
	audio.Title = "Opening Song"
	if err := c.UpsertAudio(audio); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}
	if err := c.AddLocation(testHash("a"), "/music/a.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}

	byAlbum, err := c.SearchByAlbum("Hits")
	if err != nil {
		t.Fatalf("failed to search by album: %v", err)
	}
	if len(byAlbum) != 1 {
		t.Errorf("expected 1 album match, got %d", len(byAlbum))
	}

	byTitle, err := c.SearchByTitle("Opening")
	if err != nil {
		t.Fatalf("failed to search by title: %v", err)
	}
	if len(byTitle) != 1 {
		t.Errorf("expected 1 title match, got %d", len(byTitle))
	}
}

func TestUpsertAudioBatch(t *testing.T) {
	c := openTestCatalog(t)

	// More than two chunks worth of records
	var audios []*Audio
	for i := 0; i < insertBatchSize*2+2; i++ {
		audio := sampleAudio("")
		audio.FileHash = fmt.Sprintf("%064x", i)
		audio.Title = fmt.Sprintf("Song %d", i)
		audios = append(audios, audio)
	}

	if err := c.UpsertAudioBatch(audios); err != nil {
		t.Fatalf("failed to batch upsert: %v", err)
	}

	counts, err := c.Counts()
	if err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if counts.Audios != len(audios) {
		t.Errorf("expected %d audio rows, got %d", len(audios), counts.Audios)
	}
}

func TestUpsertAudioBatchRejectsInvalidUpfront(t *testing.T) {
	c := openTestCatalog(t)

	audios := []*Audio{
		sampleAudio(testHash("a")),
		{FileHash: "bogus"},
	}

	err := c.UpsertAudioBatch(audios)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	counts, err := c.Counts()
	if err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if counts.Audios != 0 {
		t.Errorf("expected no rows written when batch validation fails, got %d", counts.Audios)
	}
}

func TestDeleteAudioCascades(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.UpsertAudio(sampleAudio(testHash("a"))); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}
	if err := c.AddLocation(testHash("a"), "/music/a.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}
	if err := c.AddToPlaylist("Road Trip", testHash("a")); err != nil {
		t.Fatalf("failed to add to playlist: %v", err)
	}

	if err := c.DeleteAudio(testHash("a")); err != nil {
		t.Fatalf("failed to delete audio: %v", err)
	}

	counts, err := c.Counts()
	if err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if counts.Audios != 0 || counts.Locations != 0 || counts.PlaylistEntries != 0 {
		t.Errorf("expected cascade delete to clear dependents, got %+v", counts)
	}
}
