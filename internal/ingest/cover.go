package ingest

import (
	"os"
	"path/filepath"
)

// coverNames are the artwork file names looked for next to an audio file,
// in preference order
var coverNames = []string{
	"cover.jpg",
	"cover.jpeg",
	"cover.png",
	"folder.jpg",
	"folder.png",
	"front.jpg",
}

// findCoverArt returns the path of an artwork file in the same directory
// as the audio file, or "" when there is none
func findCoverArt(audioPath string) string {
	dir := filepath.Dir(audioPath)

	for _, name := range coverNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}
