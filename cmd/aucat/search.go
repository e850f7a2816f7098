package main

import (
	"fmt"

	"github.com/franz/audio-catalog/internal/catalog"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List all tracks matching an artist, album, or title substring",
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("artist", "", "artist name substring")
	searchCmd.Flags().String("album", "", "album name substring")
	searchCmd.Flags().String("title", "", "title substring")
}

func runSearch(cmd *cobra.Command, args []string) error {
	artist, _ := cmd.Flags().GetString("artist")
	album, _ := cmd.Flags().GetString("album")
	title, _ := cmd.Flags().GetString("title")

	set := 0
	for _, v := range []string{artist, album, title} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of --artist, --album or --title is required")
	}

	c, err := openCatalog()
	if err != nil {
		return err
	}
	defer c.Close()

	var tracks []*catalog.Track
	switch {
	case artist != "":
		tracks, err = c.SearchByArtist(artist)
	case album != "":
		tracks, err = c.SearchByAlbum(album)
	default:
		tracks, err = c.SearchByTitle(title)
	}
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		fmt.Println("no matches")
		return nil
	}

	printTrackList(tracks)
	return nil
}

func printTrackList(tracks []*catalog.Track) {
	for _, t := range tracks {
		fmt.Printf("%s  %s - %s [%s]\n", t.FileHash[:8], t.Artist, t.Title, t.Album)
		fmt.Printf("          %s\n", t.AudioPath)
	}
	fmt.Printf("%d track(s)\n", len(tracks))
}
