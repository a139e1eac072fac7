package main

import (
	"fmt"

	"github.com/albums1001/albums/internal/config"
	"github.com/spf13/cobra"
)

var rebuildKeepLayouts bool

func init() {
	rebuildCmd.Flags().BoolVar(&rebuildKeepLayouts, "keep-layouts", false, "Keep cached graph layouts")
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query layer from source data",
	Long: `Rebuild the SQLite query database from albums.jsonl.

Use this after editing albums.jsonl by hand, pulling changes from git, or if
the database becomes corrupted. Cached graph layouts are cleared unless
--keep-layouts is given; they are recomputed on the next network command.`,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status      string `json:"status"`
	Albums      int    `json:"albums"`
	LayoutsKept bool   `json:"layouts_kept"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.RebuildFromJSONL(config.AlbumsPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding albums database: %v", err)
	}

	if !rebuildKeepLayouts {
		if err := db.ClearLayouts(); err != nil {
			exitWithError(ExitError, "clearing layout cache: %v", err)
		}
	}

	logger.Debugw("rebuilt database", "albums", count, "layouts_kept", rebuildKeepLayouts)

	if humanOutput {
		fmt.Printf("Rebuilt query database with %d albums\n", count)
	} else {
		outputJSON(RebuildResult{
			Status:      "rebuilt",
			Albums:      count,
			LayoutsKept: rebuildKeepLayouts,
		})
	}
	return nil
}
