package main

import (
	"fmt"

	"github.com/franz/audio-catalog/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog totals",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	defer c.Close()

	counts, err := c.Counts()
	if err != nil {
		return err
	}

	fmt.Printf("Catalog: %s (SQLite %s)\n", viper.GetString("db"), catalog.SQLiteVersion())
	fmt.Printf("  audios:           %d\n", counts.Audios)
	fmt.Printf("  locations:        %d\n", counts.Locations)
	fmt.Printf("  playlists:        %d\n", counts.Playlists)
	fmt.Printf("  playlist entries: %d\n", counts.PlaylistEntries)
	fmt.Printf("  media folders:    %d\n", counts.MediaFolders)

	return nil
}
