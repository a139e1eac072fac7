package main

import (
	"fmt"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/config"
	"github.com/albums1001/albums/internal/storage"
	"github.com/spf13/cobra"
)

var (
	addNumber    int
	addArtist    string
	addYear      int
	addMusicians []string
	addArrangers []string
	addWriters   []string
	addProducers []string
	addGenres    []string
	addSeconds   int
)

func init() {
	addCmd.Flags().IntVarP(&addNumber, "number", "n", 0, "Catalog number (1-1001)")
	addCmd.Flags().StringVarP(&addArtist, "artist", "a", "", "Artist (required)")
	addCmd.Flags().IntVarP(&addYear, "year", "y", 0, "Release year")
	addCmd.Flags().StringArrayVar(&addMusicians, "musician", nil, "Credited musician (repeatable)")
	addCmd.Flags().StringArrayVar(&addArrangers, "arranger", nil, "Credited arranger (repeatable)")
	addCmd.Flags().StringArrayVar(&addWriters, "writer", nil, "Credited writer (repeatable)")
	addCmd.Flags().StringArrayVar(&addProducers, "producer", nil, "Credited producer (repeatable)")
	addCmd.Flags().StringArrayVarP(&addGenres, "genre", "g", nil, "Genre tag (repeatable)")
	addCmd.Flags().IntVar(&addSeconds, "seconds", 0, "Total running time in seconds")
	addCmd.MarkFlagRequired("artist")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an album to the library",
	Long: `Append an album to albums.jsonl and refresh the query database.

Titles identify albums in the network and must be unique.

Example:
  alb add "Kind of Blue" -n 1 -a "Miles Davis" -y 1959 \
    --musician "Miles Davis" --musician "John Coltrane" \
    --producer "Teo Macero" -g Jazz -g "Modal Jazz"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	a := album.Album{
		Number:      addNumber,
		Title:       args[0],
		Artist:      addArtist,
		ReleaseYear: addYear,
		Personnel: album.Personnel{
			Musicians: addMusicians,
			Arrangers: addArrangers,
			Writers:   addWriters,
			Producers: addProducers,
		},
		Genres:     addGenres,
		TotalTimeS: addSeconds,
	}

	if err := storage.Append(config.AlbumsPath(repoRoot), a); err != nil {
		exitWithError(exitCodeFor(err), "adding album: %v", err)
	}

	mustRefreshDatabase(repoRoot)

	if humanOutput {
		fmt.Printf("Added %s (%s)\n", a.Title, a.Artist)
	} else {
		outputJSON(a)
	}
	return nil
}

// mustRefreshDatabase rebuilds the query database after albums.jsonl changed.
func mustRefreshDatabase(repoRoot string) {
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.RebuildFromJSONL(config.AlbumsPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding albums database: %v", err)
	}
	logger.Debugw("refreshed database", "albums", count)
}
