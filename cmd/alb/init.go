package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/albums1001/albums/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new album library",
	Long: `Create a new album library in the given directory (default: current directory).

This creates .albums/ with an empty albums.jsonl, a config.yml holding the
default network styling, and the cache directory for the query database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = config.ExpandPath(args[0])
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		exitWithError(ExitError, "resolving path: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "album library already exists at %s", root)
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", config.AlbumsDir, err)
	}

	f, err := os.OpenFile(config.AlbumsPath(root), os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		exitWithError(ExitError, "creating albums file: %v", err)
	}
	f.Close()

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	logger.Debugw("initialized library", "root", root)

	if humanOutput {
		fmt.Printf("Initialized album library in %s\n", config.AlbumsDirPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}
	return nil
}
