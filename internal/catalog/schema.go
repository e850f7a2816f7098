package catalog

// Schema v1 - Initial catalog schema
// Tables are clustered by their natural keys (WITHOUT ROWID); the content
// hash is the sole identity for an audio asset.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per distinct audio asset, keyed by content hash
CREATE TABLE IF NOT EXISTS audios (
  file_hash TEXT NOT NULL PRIMARY KEY CHECK (length(file_hash) = 64),
  audio_title TEXT NOT NULL DEFAULT '',
  album_name TEXT NOT NULL DEFAULT '',
  artist_name TEXT NOT NULL DEFAULT '',
  track_num INTEGER NOT NULL DEFAULT 0,
  release_year INTEGER NOT NULL DEFAULT 0,
  audio_length_seconds INTEGER NOT NULL DEFAULT 0
) WITHOUT ROWID;

-- On-disk copies of an asset; one asset may live at several paths
CREATE TABLE IF NOT EXISTS audio_files (
  file_hash TEXT NOT NULL REFERENCES audios(file_hash) ON DELETE CASCADE,
  audio_path TEXT NOT NULL,
  img_path TEXT,
  PRIMARY KEY (file_hash, audio_path)
) WITHOUT ROWID;

-- Playlist membership: a named, unordered set of hashes
CREATE TABLE IF NOT EXISTS playlists (
  playlist_name TEXT NOT NULL,
  file_hash TEXT NOT NULL REFERENCES audios(file_hash) ON DELETE CASCADE,
  PRIMARY KEY (playlist_name, file_hash)
) WITHOUT ROWID;

-- Folders the ingest command watches for audio files
CREATE TABLE IF NOT EXISTS media_folders (
  folder_path TEXT NOT NULL PRIMARY KEY
) WITHOUT ROWID;
`

// Schema v2 - Search indexes
const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_audios_artist ON audios(artist_name);
CREATE INDEX IF NOT EXISTS idx_audios_album ON audios(album_name);
CREATE INDEX IF NOT EXISTS idx_audios_title ON audios(audio_title);
CREATE INDEX IF NOT EXISTS idx_playlists_file_hash ON playlists(file_hash);
`
