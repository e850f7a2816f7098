package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxTextLen is the longest text value the catalog stores (hex hashes
// excluded, which are fixed at 64)
const maxTextLen = 256

// normalizeText prepares a text field for storage: Unicode NFC so that the
// same name always compares equal, then trimmed. Matches what the LIKE
// lookups expect to find.
func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// validHash reports whether s is a 64-character lowercase hex digest
func validHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func validateHash(hash string) error {
	if !validHash(hash) {
		return fmt.Errorf("%w: file_hash must be a 64-char lowercase hex digest", ErrValidation)
	}
	return nil
}

func validateText(field, value string) error {
	if utf8.RuneCountInString(value) > maxTextLen {
		return fmt.Errorf("%w: %s longer than %d characters", ErrValidation, field, maxTextLen)
	}
	return nil
}

func validateName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}
	return validateText(field, value)
}

// normalize validates an audio record and returns a normalized copy ready
// for storage. The input is not modified.
func (a *Audio) normalize() (*Audio, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: audio record is nil", ErrValidation)
	}

	n := *a
	n.Title = normalizeText(n.Title)
	n.Album = normalizeText(n.Album)
	n.Artist = normalizeText(n.Artist)

	if err := validateHash(n.FileHash); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{
		"audio_title": n.Title,
		"album_name":  n.Album,
		"artist_name": n.Artist,
	} {
		if err := validateText(field, value); err != nil {
			return nil, err
		}
	}
	if n.TrackNum < 0 || n.TrackNum > 255 {
		return nil, fmt.Errorf("%w: track_num out of range: %d", ErrValidation, n.TrackNum)
	}
	if n.ReleaseYear < 0 {
		return nil, fmt.Errorf("%w: release_year must not be negative", ErrValidation)
	}
	if n.LengthSeconds < 0 {
		return nil, fmt.Errorf("%w: audio_length_seconds must not be negative", ErrValidation)
	}

	return &n, nil
}

// escapeLike escapes LIKE wildcards in a user-supplied substring so that
// containment matching treats it literally. Queries using it must specify
// ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
