package catalog

import (
	"errors"
	"testing"
)

func TestAddLocationRequiresAudio(t *testing.T) {
	c := openTestCatalog(t)

	err := c.AddLocation(testHash("a"), "/music/a.mp3", "")
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("expected constraint error for unknown hash, got %v", err)
	}
}

func TestAddLocationAccumulates(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.UpsertAudio(sampleAudio(testHash("a"))); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}

	// A new path per call adds a row
	paths := []string{"/music/a.mp3", "/backup/a.mp3", "/phone/a.mp3"}
	for i, path := range paths {
		if err := c.AddLocation(testHash("a"), path, ""); err != nil {
			t.Fatalf("failed to add location %s: %v", path, err)
		}

		locations, err := c.Locations(testHash("a"))
		if err != nil {
			t.Fatalf("failed to list locations: %v", err)
		}
		if len(locations) != i+1 {
			t.Errorf("expected %d locations, got %d", i+1, len(locations))
		}
	}
}

func TestAddLocationIdempotentReplace(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.UpsertAudio(sampleAudio(testHash("a"))); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}

	if err := c.AddLocation(testHash("a"), "/music/a.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}

	// Same (hash, path) pair again: no new row, cover art replaced
	if err := c.AddLocation(testHash("a"), "/music/a.mp3", "/music/cover.png"); err != nil {
		t.Fatalf("failed to re-add location: %v", err)
	}

	locations, err := c.Locations(testHash("a"))
	if err != nil {
		t.Fatalf("failed to list locations: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locations))
	}
	if locations[0].ImgPath != "/music/cover.png" {
		t.Errorf("expected replaced img_path, got %q", locations[0].ImgPath)
	}
}

func TestAddLocationValidation(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.UpsertAudio(sampleAudio(testHash("a"))); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}

	if err := c.AddLocation(testHash("a"), "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for empty path, got %v", err)
	}
	if err := c.AddLocation("nope", "/music/a.mp3", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for malformed hash, got %v", err)
	}
}

func TestRemoveLocation(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.UpsertAudio(sampleAudio(testHash("a"))); err != nil {
		t.Fatalf("failed to upsert audio: %v", err)
	}
	if err := c.AddLocation(testHash("a"), "/music/a.mp3", ""); err != nil {
		t.Fatalf("failed to add location: %v", err)
	}

	if err := c.RemoveLocation(testHash("a"), "/music/a.mp3"); err != nil {
		t.Fatalf("failed to remove location: %v", err)
	}

	locations, err := c.Locations(testHash("a"))
	if err != nil {
		t.Fatalf("failed to list locations: %v", err)
	}
	if len(locations) != 0 {
		t.Errorf("expected no locations after removal, got %d", len(locations))
	}

	// Removing an absent pair is a no-op
	if err := c.RemoveLocation(testHash("a"), "/music/a.mp3"); err != nil {
		t.Errorf("expected no-op removal to succeed, got %v", err)
	}
}
