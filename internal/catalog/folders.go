package catalog

import (
	"database/sql"
)

// AddMediaFolder registers a folder for the ingest command to walk.
// Registering the same folder twice is a no-op.
func (c *Catalog) AddMediaFolder(path string) error {
	if err := validateName("folder_path", path); err != nil {
		return err
	}

	_, err := c.db.Exec(`
		INSERT INTO media_folders (folder_path)
		VALUES (:folder_path)
		ON CONFLICT(folder_path) DO NOTHING
	`, sql.Named("folder_path", path))

	if err != nil {
		return classify("add media folder", err)
	}

	return nil
}

// ListMediaFolders returns all registered folders, ordered by path
func (c *Catalog) ListMediaFolders() ([]string, error) {
	rows, err := c.db.Query("SELECT folder_path FROM media_folders ORDER BY folder_path")
	if err != nil {
		return nil, classify("list media folders", err)
	}
	defer rows.Close()

	var folders []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, classify("list media folders", err)
		}
		folders = append(folders, path)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("list media folders", err)
	}

	return folders, nil
}

// RemoveMediaFolder unregisters a folder. Removing an unknown folder is a
// no-op; the catalog rows ingested from it are kept.
func (c *Catalog) RemoveMediaFolder(path string) error {
	_, err := c.db.Exec(
		"DELETE FROM media_folders WHERE folder_path = :folder_path",
		sql.Named("folder_path", path),
	)

	if err != nil {
		return classify("remove media folder", err)
	}

	return nil
}
