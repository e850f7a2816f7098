package ingest

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dhowden/tag"
	"github.com/franz/audio-catalog/internal/catalog"
)

// trackPrefix matches a leading track number like "01 - " or "2."
var trackPrefix = regexp.MustCompile(`^\d{1,3}[ ._-]+`)

// readTags builds an audio record (minus the hash) from a file's embedded
// tags. Files with no readable tags fall back to a filename-derived title.
// Duration is not probed; it stays zero when the tags don't carry it.
func readTags(path string) *catalog.Audio {
	audio := &catalog.Audio{}

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if m, err := tag.ReadFrom(f); err == nil {
			audio.Title = m.Title()
			audio.Album = m.Album()
			audio.Artist = m.Artist()
			audio.TrackNum, _ = m.Track()
			audio.ReleaseYear = m.Year()
		}
	}

	if audio.Title == "" {
		audio.Title = titleFromFilename(path)
	}
	if audio.TrackNum < 0 || audio.TrackNum > 255 {
		audio.TrackNum = 0
	}
	if audio.ReleaseYear < 0 {
		audio.ReleaseYear = 0
	}

	return audio
}

// titleFromFilename derives a display title from the file name: extension
// and leading track number stripped, separators turned into spaces.
func titleFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = trackPrefix.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}
