package catalog

import (
	"database/sql"
)

// AddLocation records an on-disk copy of an audio asset. Re-adding an
// existing (hash, path) pair replaces its cover art path, so the call is
// idempotent. The hash must reference an existing audio record; otherwise
// a constraint error is returned.
func (c *Catalog) AddLocation(hash, audioPath, imgPath string) error {
	if err := validateHash(hash); err != nil {
		return err
	}
	if err := validateName("audio_path", audioPath); err != nil {
		return err
	}
	if err := validateText("img_path", imgPath); err != nil {
		return err
	}

	// Empty cover path is stored as NULL
	var img any
	if imgPath != "" {
		img = imgPath
	}

	_, err := c.db.Exec(`
		INSERT INTO audio_files (file_hash, audio_path, img_path)
		VALUES (:file_hash, :audio_path, :img_path)
		ON CONFLICT(file_hash, audio_path) DO UPDATE SET
			img_path = excluded.img_path
	`,
		sql.Named("file_hash", hash),
		sql.Named("audio_path", audioPath),
		sql.Named("img_path", img),
	)

	if err != nil {
		return classify("add location", err)
	}

	return nil
}

// Locations returns all on-disk copies recorded for a hash, ordered by
// path. Empty slice when the hash is unknown.
func (c *Catalog) Locations(hash string) ([]*Location, error) {
	rows, err := c.db.Query(`
		SELECT file_hash, audio_path, COALESCE(img_path, '')
		FROM audio_files
		WHERE file_hash = :file_hash
		ORDER BY audio_path
	`, sql.Named("file_hash", hash))

	if err != nil {
		return nil, classify("list locations", err)
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		l := &Location{}
		if err := rows.Scan(&l.FileHash, &l.AudioPath, &l.ImgPath); err != nil {
			return nil, classify("list locations", err)
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("list locations", err)
	}

	return locations, nil
}

// RemoveLocation deletes one (hash, path) pair. Removing a pair that does
// not exist is a no-op.
func (c *Catalog) RemoveLocation(hash, audioPath string) error {
	_, err := c.db.Exec(`
		DELETE FROM audio_files
		WHERE file_hash = :file_hash AND audio_path = :audio_path
	`,
		sql.Named("file_hash", hash),
		sql.Named("audio_path", audioPath),
	)

	if err != nil {
		return classify("remove location", err)
	}

	return nil
}
