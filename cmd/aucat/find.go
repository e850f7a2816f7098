package main

import (
	"fmt"
	"time"

	"github.com/franz/audio-catalog/internal/catalog"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Look up a single track by artist substring or exact hash",
	Long: `Look up one track in the catalog.

  aucat find --artist smith     first track whose artist name contains "smith"
  aucat find --hash <64-hex>    the track with exactly this content hash

The artist lookup breaks ties deterministically (lowest hash wins). When
nothing matches, find prints "not found" and exits cleanly - an empty
catalog is not an error.`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().String("artist", "", "artist name substring")
	findCmd.Flags().String("hash", "", "exact content hash (64-char hex)")
}

func runFind(cmd *cobra.Command, args []string) error {
	artist, _ := cmd.Flags().GetString("artist")
	hash, _ := cmd.Flags().GetString("hash")

	if (artist == "") == (hash == "") {
		return fmt.Errorf("exactly one of --artist or --hash is required")
	}

	c, err := openCatalog()
	if err != nil {
		return err
	}
	defer c.Close()

	var track *catalog.Track
	if hash != "" {
		track, err = c.FindByHash(hash)
	} else {
		track, err = c.FindByArtist(artist)
	}
	if err != nil {
		return err
	}

	if track == nil {
		fmt.Println("not found")
		return nil
	}

	printTrack(track)
	return nil
}

func printTrack(t *catalog.Track) {
	fmt.Printf("%s - %s\n", t.Artist, t.Title)
	fmt.Printf("  album:  %s (track %d, %d)\n", t.Album, t.TrackNum, t.ReleaseYear)
	fmt.Printf("  length: %s\n", (time.Duration(t.LengthSeconds) * time.Second).String())
	fmt.Printf("  hash:   %s\n", t.FileHash)
	fmt.Printf("  path:   %s\n", t.AudioPath)
	if t.ImgPath != "" {
		fmt.Printf("  cover:  %s\n", t.ImgPath)
	}
}
