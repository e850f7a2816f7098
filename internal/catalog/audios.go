package catalog

import (
	"database/sql"
	"fmt"
)

// trackSelect is the joined (audio x location) projection every lookup
// returns. Column order matches scanTrack.
const trackSelect = `
	SELECT a.file_hash, a.audio_title, a.album_name, a.artist_name,
	       a.track_num, a.release_year, a.audio_length_seconds,
	       f.audio_path, COALESCE(f.img_path, '')
	FROM audios a
	JOIN audio_files f ON a.file_hash = f.file_hash
`

const upsertAudioSQL = `
	INSERT INTO audios (
		file_hash, audio_title, album_name, artist_name,
		track_num, release_year, audio_length_seconds
	) VALUES (
		:file_hash, :audio_title, :album_name, :artist_name,
		:track_num, :release_year, :audio_length_seconds
	)
	ON CONFLICT(file_hash) DO UPDATE SET
		audio_title = excluded.audio_title,
		album_name = excluded.album_name,
		artist_name = excluded.artist_name,
		track_num = excluded.track_num,
		release_year = excluded.release_year,
		audio_length_seconds = excluded.audio_length_seconds
`

func audioArgs(a *Audio) []any {
	return []any{
		sql.Named("file_hash", a.FileHash),
		sql.Named("audio_title", a.Title),
		sql.Named("album_name", a.Album),
		sql.Named("artist_name", a.Artist),
		sql.Named("track_num", a.TrackNum),
		sql.Named("release_year", a.ReleaseYear),
		sql.Named("audio_length_seconds", a.LengthSeconds),
	}
}

// UpsertAudio inserts or replaces an audio record keyed by its content
// hash. Replaying the same record is a no-op; a record with the same hash
// and different fields wins over the stored one.
func (c *Catalog) UpsertAudio(a *Audio) error {
	n, err := a.normalize()
	if err != nil {
		return err
	}

	if _, err := c.db.Exec(upsertAudioSQL, audioArgs(n)...); err != nil {
		return classify("upsert audio", err)
	}

	return nil
}

// UpsertAudioBatch inserts or replaces audio records in chunked
// transactions. All records are validated before anything is written.
func (c *Catalog) UpsertAudioBatch(audios []*Audio) error {
	if len(audios) == 0 {
		return nil
	}

	normalized := make([]*Audio, 0, len(audios))
	for _, a := range audios {
		n, err := a.normalize()
		if err != nil {
			return err
		}
		normalized = append(normalized, n)
	}

	for start := 0; start < len(normalized); start += insertBatchSize {
		end := min(start+insertBatchSize, len(normalized))

		err := c.Transaction(func(tx *sql.Tx) error {
			stmt, err := tx.Prepare(upsertAudioSQL)
			if err != nil {
				return fmt.Errorf("failed to prepare statement: %w", err)
			}
			defer stmt.Close()

			for _, a := range normalized[start:end] {
				if _, err := stmt.Exec(audioArgs(a)...); err != nil {
					return classify(fmt.Sprintf("upsert audio %s", a.FileHash), err)
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

// FindByHash returns the joined row for an exact hash match, or nil when
// the catalog has no such audio or no location for it. With several
// locations the lexically first audio_path is returned.
func (c *Catalog) FindByHash(hash string) (*Track, error) {
	row := c.db.QueryRow(trackSelect+`
		WHERE a.file_hash = :file_hash
		ORDER BY f.audio_path
		LIMIT 1
	`, sql.Named("file_hash", hash))

	return c.scanOneTrack("find by hash", row)
}

// FindByArtist returns one joined row whose artist name contains the given
// substring, or nil when nothing matches. Ties are broken by lowest hash,
// then lowest path, so repeated calls return the same row.
func (c *Catalog) FindByArtist(substring string) (*Track, error) {
	row := c.db.QueryRow(trackSelect+`
		WHERE a.artist_name LIKE '%' || :artist_name || '%' ESCAPE '\'
		ORDER BY a.file_hash, f.audio_path
		LIMIT 1
	`, sql.Named("artist_name", escapeLike(substring)))

	return c.scanOneTrack("find by artist", row)
}

// SearchByArtist returns all joined rows whose artist name contains the
// given substring
func (c *Catalog) SearchByArtist(substring string) ([]*Track, error) {
	return c.searchTracks("search by artist", `
		WHERE a.artist_name LIKE '%' || :name || '%' ESCAPE '\'
		ORDER BY a.artist_name, a.file_hash, f.audio_path
	`, substring)
}

// SearchByAlbum returns all joined rows whose album name contains the
// given substring
func (c *Catalog) SearchByAlbum(substring string) ([]*Track, error) {
	return c.searchTracks("search by album", `
		WHERE a.album_name LIKE '%' || :name || '%' ESCAPE '\'
		ORDER BY a.album_name, a.track_num, a.file_hash, f.audio_path
	`, substring)
}

// SearchByTitle returns all joined rows whose title contains the given
// substring
func (c *Catalog) SearchByTitle(substring string) ([]*Track, error) {
	return c.searchTracks("search by title", `
		WHERE a.audio_title LIKE '%' || :name || '%' ESCAPE '\'
		ORDER BY a.audio_title, a.file_hash, f.audio_path
	`, substring)
}

// DeleteAudio removes an audio record. Its locations and playlist entries
// go with it (ON DELETE CASCADE).
func (c *Catalog) DeleteAudio(hash string) error {
	_, err := c.db.Exec(
		"DELETE FROM audios WHERE file_hash = :file_hash",
		sql.Named("file_hash", hash),
	)
	if err != nil {
		return classify("delete audio", err)
	}
	return nil
}

func (c *Catalog) searchTracks(op, clause, substring string) ([]*Track, error) {
	rows, err := c.db.Query(trackSelect+clause, sql.Named("name", escapeLike(substring)))
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	return c.scanTracks(op, rows)
}

func (c *Catalog) scanOneTrack(op string, row *sql.Row) (*Track, error) {
	t := &Track{}
	err := row.Scan(
		&t.FileHash, &t.Title, &t.Album, &t.Artist,
		&t.TrackNum, &t.ReleaseYear, &t.LengthSeconds,
		&t.AudioPath, &t.ImgPath,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(op, err)
	}

	return t, nil
}

func (c *Catalog) scanTracks(op string, rows *sql.Rows) ([]*Track, error) {
	var tracks []*Track
	for rows.Next() {
		t := &Track{}
		err := rows.Scan(
			&t.FileHash, &t.Title, &t.Album, &t.Artist,
			&t.TrackNum, &t.ReleaseYear, &t.LengthSeconds,
			&t.AudioPath, &t.ImgPath,
		)
		if err != nil {
			return nil, classify(op, err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}

	return tracks, nil
}
