package main

import (
	"fmt"

	"github.com/franz/audio-catalog/internal/util"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check catalog health",
	Long: `Run SQLite's integrity check on the catalog file and scan for
dangling references: locations or playlist entries whose audio record is
missing. A healthy catalog reports zero findings.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	defer c.Close()

	util.InfoLog("Running integrity check...")
	if err := c.CheckIntegrity(); err != nil {
		return err
	}
	util.SuccessLog("Integrity check passed")

	orphans, err := c.FindOrphans()
	if err != nil {
		return err
	}

	if orphans.Locations == 0 && orphans.PlaylistEntries == 0 {
		util.SuccessLog("No dangling references")
		return nil
	}

	if orphans.Locations > 0 {
		util.WarnLog("%d location(s) reference a missing audio record", orphans.Locations)
	}
	if orphans.PlaylistEntries > 0 {
		util.WarnLog("%d playlist entries reference a missing audio record", orphans.PlaylistEntries)
	}

	return fmt.Errorf("catalog has dangling references")
}
