package catalog

import (
	"database/sql"
	"fmt"
)

// AddToPlaylist adds hashes to a named playlist. Membership has set
// semantics: a hash already in the playlist stays there, duplicates in the
// input collapse to one row. Hashes are written in chunked transactions.
// Every hash must reference an existing audio record.
func (c *Catalog) AddToPlaylist(name string, hashes ...string) error {
	name = normalizeText(name)
	if err := validateName("playlist_name", name); err != nil {
		return err
	}
	for _, hash := range hashes {
		if err := validateHash(hash); err != nil {
			return err
		}
	}

	for start := 0; start < len(hashes); start += insertBatchSize {
		end := min(start+insertBatchSize, len(hashes))

		err := c.Transaction(func(tx *sql.Tx) error {
			stmt, err := tx.Prepare(`
				INSERT INTO playlists (playlist_name, file_hash)
				VALUES (:playlist_name, :file_hash)
				ON CONFLICT(playlist_name, file_hash) DO NOTHING
			`)
			if err != nil {
				return fmt.Errorf("failed to prepare statement: %w", err)
			}
			defer stmt.Close()

			for _, hash := range hashes[start:end] {
				_, err := stmt.Exec(
					sql.Named("playlist_name", name),
					sql.Named("file_hash", hash),
				)
				if err != nil {
					return classify(fmt.Sprintf("add %s to playlist", hash), err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// ListByPlaylist returns the joined rows for every audio in the named
// playlist, exact name match. Empty slice when the playlist is empty or
// unknown; that is not an error.
func (c *Catalog) ListByPlaylist(name string) ([]*Track, error) {
	rows, err := c.db.Query(trackSelect+`
		JOIN playlists p ON a.file_hash = p.file_hash
		WHERE p.playlist_name = :playlist_name
		ORDER BY a.artist_name, a.album_name, a.track_num, a.file_hash, f.audio_path
	`, sql.Named("playlist_name", normalizeText(name)))

	if err != nil {
		return nil, classify("list playlist", err)
	}
	defer rows.Close()

	return c.scanTracks("list playlist", rows)
}

// RemoveFromPlaylist removes one hash from a playlist. Removing an absent
// membership is a no-op.
func (c *Catalog) RemoveFromPlaylist(name, hash string) error {
	_, err := c.db.Exec(`
		DELETE FROM playlists
		WHERE playlist_name = :playlist_name AND file_hash = :file_hash
	`,
		sql.Named("playlist_name", normalizeText(name)),
		sql.Named("file_hash", hash),
	)

	if err != nil {
		return classify("remove from playlist", err)
	}

	return nil
}

// DeletePlaylist removes every membership row of the named playlist
func (c *Catalog) DeletePlaylist(name string) error {
	_, err := c.db.Exec(
		"DELETE FROM playlists WHERE playlist_name = :playlist_name",
		sql.Named("playlist_name", normalizeText(name)),
	)

	if err != nil {
		return classify("delete playlist", err)
	}

	return nil
}

// RenamePlaylist renames a playlist, merging memberships if the new name
// already exists
func (c *Catalog) RenamePlaylist(oldName, newName string) error {
	newName = normalizeText(newName)
	if err := validateName("playlist_name", newName); err != nil {
		return err
	}

	return c.Transaction(func(tx *sql.Tx) error {
		// Insert-ignore then delete, so renaming onto an existing
		// playlist merges the membership sets.
		_, err := tx.Exec(`
			INSERT INTO playlists (playlist_name, file_hash)
			SELECT :new_name, file_hash FROM playlists
			WHERE playlist_name = :old_name
			ON CONFLICT(playlist_name, file_hash) DO NOTHING
		`,
			sql.Named("new_name", newName),
			sql.Named("old_name", normalizeText(oldName)),
		)
		if err != nil {
			return classify("rename playlist", err)
		}

		_, err = tx.Exec(
			"DELETE FROM playlists WHERE playlist_name = :old_name",
			sql.Named("old_name", normalizeText(oldName)),
		)
		if err != nil {
			return classify("rename playlist", err)
		}

		return nil
	})
}

// ListPlaylists returns every playlist name with its member count
func (c *Catalog) ListPlaylists() ([]*PlaylistInfo, error) {
	rows, err := c.db.Query(`
		SELECT playlist_name, COUNT(file_hash)
		FROM playlists
		GROUP BY playlist_name
		ORDER BY playlist_name
	`)

	if err != nil {
		return nil, classify("list playlists", err)
	}
	defer rows.Close()

	var playlists []*PlaylistInfo
	for rows.Next() {
		p := &PlaylistInfo{}
		if err := rows.Scan(&p.Name, &p.Tracks); err != nil {
			return nil, classify("list playlists", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("list playlists", err)
	}

	return playlists, nil
}
