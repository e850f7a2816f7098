package catalog

// Orphans counts dependent rows whose parent audio record is missing.
// With foreign keys enforced both counts stay at zero; nonzero values
// point at a database written without enforcement.
type Orphans struct {
	Locations       int
	PlaylistEntries int
}

// FindOrphans scans for locations and playlist entries that reference a
// hash absent from audios
func (c *Catalog) FindOrphans() (*Orphans, error) {
	o := &Orphans{}
	err := c.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM audio_files f
			 LEFT JOIN audios a ON f.file_hash = a.file_hash
			 WHERE a.file_hash IS NULL),
			(SELECT COUNT(*) FROM playlists p
			 LEFT JOIN audios a ON p.file_hash = a.file_hash
			 WHERE a.file_hash IS NULL)
	`).Scan(&o.Locations, &o.PlaylistEntries)

	if err != nil {
		return nil, classify("find orphans", err)
	}

	return o, nil
}
