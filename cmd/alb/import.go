package main

import (
	"fmt"
	"os"

	"github.com/albums1001/albums/internal/config"
	"github.com/albums1001/albums/internal/importer"
	"github.com/albums1001/albums/internal/storage"
	"github.com/spf13/cobra"
)

var (
	importProgress string
	importDryRun   bool
)

func init() {
	importCmd.Flags().StringVarP(&importProgress, "progress", "p", "", "Listening progress export (personal_data.json)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <album_data.json>",
	Short: "Import albums from a catalog export",
	Long: `Import albums from a catalog spreadsheet exported as JSON records.

Each record has key, album_title, artist, release_date and total_time_s, and
may carry personnel and genres. A progress export with key, listened,
previous_listened and comments can be given with --progress.

Albums already in the library (matched by title) are updated; their personnel
and genres are kept when the import has none. New albums are appended.

Examples:
  alb import album_data.json
  alb import album_data.json --progress personal_data.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult is the response for the import command.
type ImportResult struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
	DryRun  bool     `json:"dry_run,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	catalog, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading catalog: %v", err)
	}
	var progress []byte
	if importProgress != "" {
		progress, err = os.ReadFile(importProgress)
		if err != nil {
			exitWithError(ExitError, "reading progress: %v", err)
		}
	}

	imported, errs := importer.ParseCatalog(catalog, progress)
	if len(imported) == 0 && len(errs) > 0 {
		exitWithError(ExitDataError, "%v", errs[0])
	}

	path := config.AlbumsPath(repoRoot)
	existing, err := storage.ReadAll(path)
	if err != nil {
		exitWithError(ExitDataError, "reading albums: %v", err)
	}

	merged, added, updated := importer.Merge(existing, imported)
	result := ImportResult{Added: added, Updated: updated, Skipped: len(errs), DryRun: importDryRun}
	for _, e := range errs {
		result.Errors = append(result.Errors, e.Error())
		logger.Debugw("skipped catalog entry", "error", e)
	}

	if !importDryRun {
		if err := storage.WriteAll(path, merged); err != nil {
			exitWithError(exitCodeFor(err), "writing albums: %v", err)
		}
		mustRefreshDatabase(repoRoot)
	}

	if humanOutput {
		verb := "Imported"
		if importDryRun {
			verb = "Would import"
		}
		fmt.Printf("%s: %d added, %d updated, %d skipped\n", verb, added, updated, len(errs))
		for _, e := range result.Errors {
			fmt.Printf("  skipped: %s\n", e)
		}
	} else {
		outputJSON(result)
	}
	return nil
}
