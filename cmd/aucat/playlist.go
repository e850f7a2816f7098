package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists (named, unordered sets of tracks)",
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <name> <hash>...",
	Short: "Add tracks to a playlist by content hash",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.AddToPlaylist(args[0], args[1:]...); err != nil {
			return err
		}
		fmt.Printf("added %d track(s) to %q\n", len(args)-1, args[0])
		return nil
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <name> <hash>",
	Short: "Remove one track from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		return c.RemoveFromPlaylist(args[0], args[1])
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a playlist (the tracks stay in the catalog)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		return c.DeletePlaylist(args[0])
	},
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a playlist, merging into the new name if it exists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		return c.RenamePlaylist(args[0], args[1])
	},
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "List the tracks of one playlist (exact name match)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		tracks, err := c.ListByPlaylist(args[0])
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			fmt.Printf("playlist %q is empty or does not exist\n", args[0])
			return nil
		}

		printTrackList(tracks)
		return nil
	},
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playlists with their track counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		playlists, err := c.ListPlaylists()
		if err != nil {
			return err
		}
		if len(playlists) == 0 {
			fmt.Println("no playlists")
			return nil
		}

		for _, p := range playlists {
			fmt.Printf("%-40s %d track(s)\n", p.Name, p.Tracks)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistCmd.AddCommand(playlistRenameCmd)
	playlistCmd.AddCommand(playlistShowCmd)
	playlistCmd.AddCommand(playlistListCmd)
}
