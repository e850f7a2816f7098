package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/franz/audio-catalog/internal/catalog"
	"github.com/franz/audio-catalog/internal/report"
	"github.com/franz/audio-catalog/internal/util"
	"github.com/schollz/progressbar/v3"
)

// AudioExtensions are the default supported audio file extensions
var AudioExtensions = []string{
	".mp3",
	".flac",
	".m4a",
	".aac",
	".ogg",
	".opus",
	".wav",
	".aiff",
	".aif",
	".wma",
	".ape",
	".wv",  // WavPack
	".mpc", // Musepack
}

// Ingester walks media folders and catalogs the audio files it finds:
// content hash, tags, location, and any cover art sitting next to the file.
type Ingester struct {
	catalog     *catalog.Catalog
	extensions  map[string]bool
	concurrency int
	logger      *report.EventLogger
}

// Config holds ingester configuration
type Config struct {
	Catalog        *catalog.Catalog
	AdditionalExts []string
	Concurrency    int
	Logger         *report.EventLogger
}

// New creates a new Ingester
func New(cfg *Config) *Ingester {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	extMap := make(map[string]bool)
	for _, ext := range AudioExtensions {
		extMap[strings.ToLower(ext)] = true
	}
	for _, ext := range cfg.AdditionalExts {
		extMap[strings.ToLower(ext)] = true
	}

	return &Ingester{
		catalog:     cfg.Catalog,
		extensions:  extMap,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}
}

// Result represents an ingest run
type Result struct {
	FilesFound int
	Ingested   int
	Failed     int
	Errors     []error
}

// item is one hashed and tagged file waiting for the batch writer
type item struct {
	audio     *catalog.Audio
	audioPath string
	imgPath   string
}

// Ingest walks the given roots, hashes and tags every audio file, and
// upserts records and locations in batches. Files that fail to hash are
// reported and skipped; the run continues.
func (in *Ingester) Ingest(ctx context.Context, roots []string) (*Result, error) {
	result := &Result{
		Errors: make([]error, 0),
	}

	var filesFound atomic.Int64
	var ingested atomic.Int64
	var failed atomic.Int64
	var errorsMu sync.Mutex

	addError := func(err error) {
		errorsMu.Lock()
		result.Errors = append(result.Errors, err)
		errorsMu.Unlock()
	}

	filePaths := make(chan string, 100)
	items := make(chan *item, 256)

	// Progress bar on a terminal, plain logs otherwise
	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Ingesting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files"),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	// Batch writer: collect items, flush audios first, then their
	// locations, so the foreign key always holds
	var writerWg sync.WaitGroup
	writerWg.Add(1)
	go func() {
		defer writerWg.Done()
		batch := make([]*item, 0, 64)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		flush := func() {
			if len(batch) == 0 {
				return
			}
			n, err := in.writeBatch(batch)
			ingested.Add(int64(n))
			if err != nil {
				failed.Add(int64(len(batch) - n))
				util.ErrorLog("Failed to write batch: %v", err)
				addError(err)
			}
			if bar != nil {
				bar.Set64(ingested.Load())
				bar.Describe(fmt.Sprintf("Ingesting | %d found | %d cataloged | %d failed",
					filesFound.Load(), ingested.Load(), failed.Load()))
			}
			batch = batch[:0]
		}

		for {
			select {
			case it, ok := <-items:
				if !ok {
					flush()
					return
				}
				batch = append(batch, it)
				if len(batch) >= 64 {
					flush()
				}
			case <-ticker.C:
				flush()
			case <-ctx.Done():
				flush()
				return
			}
		}
	}()

	// Worker pool: hash + tag each discovered file
	var wg sync.WaitGroup
	for i := 0; i < in.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range filePaths {
				select {
				case <-ctx.Done():
					return
				default:
				}

				it, err := in.processFile(path)
				if err != nil {
					failed.Add(1)
					util.ErrorLog("Failed to ingest %s: %v", path, err)
					in.logger.LogError(path, err)
					addError(fmt.Errorf("%s: %w", path, err))
					continue
				}

				select {
				case items <- it:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Walk every root
	var walkErr error
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				util.WarnLog("Error accessing path %s: %v", path, err)
				addError(fmt.Errorf("access error: %s: %w", path, err))
				return nil // Continue walking
			}

			if d.IsDir() {
				return nil
			}

			if !in.isAudioFile(path) {
				in.logger.LogSkip(path, "unsupported extension")
				return nil
			}

			filesFound.Add(1)
			select {
			case filePaths <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			walkErr = err
			break
		}
	}

	close(filePaths)
	wg.Wait()
	close(items)
	writerWg.Wait()

	if bar != nil {
		bar.Finish()
	}

	result.FilesFound = int(filesFound.Load())
	result.Ingested = int(ingested.Load())
	result.Failed = int(failed.Load())

	if walkErr != nil && walkErr != context.Canceled {
		return result, fmt.Errorf("walk error: %w", walkErr)
	}

	util.SuccessLog("Ingest complete: %d files found, %d cataloged, %d failed",
		result.FilesFound, result.Ingested, result.Failed)

	return result, nil
}

// processFile hashes and tags a single file
func (in *Ingester) processFile(path string) (*item, error) {
	hash, err := util.HashFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to hash file: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	audio := readTags(path)
	audio.FileHash = hash

	util.DebugLog("Ingested: %s (hash: %s)", path, hash[:8])

	return &item{
		audio:     audio,
		audioPath: absPath,
		imgPath:   findCoverArt(absPath),
	}, nil
}

// writeBatch upserts the audio records of a batch in one go, then adds
// their locations. Returns how many items were fully written.
func (in *Ingester) writeBatch(batch []*item) (int, error) {
	audios := make([]*catalog.Audio, 0, len(batch))
	for _, it := range batch {
		audios = append(audios, it.audio)
	}

	if err := in.catalog.UpsertAudioBatch(audios); err != nil {
		return 0, fmt.Errorf("failed to upsert audio batch: %w", err)
	}

	written := 0
	for _, it := range batch {
		if err := in.catalog.AddLocation(it.audio.FileHash, it.audioPath, it.imgPath); err != nil {
			return written, fmt.Errorf("failed to add location %s: %w", it.audioPath, err)
		}
		in.logger.LogIngest(it.audio.FileHash, it.audioPath, it.imgPath,
			it.audio.Artist, it.audio.Title)
		written++
	}

	return written, nil
}

// isAudioFile checks if a file has a supported audio extension
func (in *Ingester) isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return in.extensions[ext]
}
