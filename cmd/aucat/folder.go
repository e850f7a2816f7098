package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage the media folders the ingest command walks",
}

var folderAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a media folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", abs, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", abs)
		}

		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.AddMediaFolder(abs); err != nil {
			return err
		}
		fmt.Printf("registered %s\n", abs)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered media folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		folders, err := c.ListMediaFolders()
		if err != nil {
			return err
		}
		if len(folders) == 0 {
			fmt.Println("no media folders registered")
			return nil
		}
		for _, folder := range folders {
			fmt.Println(folder)
		}
		return nil
	},
}

var folderRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Unregister a media folder (cataloged tracks are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		c, err := openCatalog()
		if err != nil {
			return err
		}
		defer c.Close()

		return c.RemoveMediaFolder(abs)
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderRemoveCmd)
}
