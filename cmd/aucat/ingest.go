package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/franz/audio-catalog/internal/ingest"
	"github.com/franz/audio-catalog/internal/report"
	"github.com/franz/audio-catalog/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Scan folders and catalog their audio files",
	Long: `Walk a folder tree, hash every audio file, read its tags, and record
it in the catalog together with its on-disk location and any cover art
found next to it.

With a path argument only that tree is walked. Without one, every folder
registered with "aucat folder add" is walked.

Re-running ingest is safe: records are keyed by content hash, so files
already cataloged are simply refreshed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().IntP("concurrency", "c", 8, "number of files hashed in parallel")
	ingestCmd.Flags().StringSlice("ext", nil, "additional audio file extensions (e.g. .mka)")
	ingestCmd.Flags().String("events-dir", "artifacts", "directory for the JSONL ingest log")
	viper.BindPFlag("concurrency", ingestCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("events-dir", ingestCmd.Flags().Lookup("events-dir"))
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	c, err := openCatalog()
	if err != nil {
		return err
	}
	defer c.Close()

	// Roots: explicit path argument, or the registered media folders
	var roots []string
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", args[0])
		}
		roots = args[0:1]
	} else {
		roots, err = c.ListMediaFolders()
		if err != nil {
			return err
		}
		if len(roots) == 0 {
			return fmt.Errorf("no media folders registered (use \"aucat folder add\" or pass a path)")
		}
	}

	logLevel := report.LevelInfo
	if viper.GetBool("quiet") {
		logLevel = report.LevelWarning
	} else if viper.GetBool("verbose") {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger(viper.GetString("events-dir"), logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		logger = report.NullLogger()
	}
	defer logger.Close()

	if logger.Path() != "" {
		util.InfoLog("Event log: %s", logger.Path())
	}

	additionalExts, _ := cmd.Flags().GetStringSlice("ext")

	ingester := ingest.New(&ingest.Config{
		Catalog:        c,
		AdditionalExts: additionalExts,
		Concurrency:    viper.GetInt("concurrency"),
		Logger:         logger,
	})

	for _, root := range roots {
		util.InfoLog("Ingesting: %s", root)
	}

	start := time.Now()
	result, err := ingester.Ingest(ctx, roots)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	util.SuccessLog("Done in %v", time.Since(start).Round(time.Millisecond))
	util.InfoLog("  Files found: %d", result.FilesFound)
	util.InfoLog("  Cataloged: %d", result.Ingested)
	if result.Failed > 0 {
		util.WarnLog("  Failed: %d", result.Failed)
	}

	counts, err := c.Counts()
	if err != nil {
		return err
	}
	util.InfoLog("Catalog now holds %d audios at %d locations", counts.Audios, counts.Locations)

	return nil
}
