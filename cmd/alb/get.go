package main

import (
	"fmt"
	"strings"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/network"
	"github.com/albums1001/albums/internal/stats"
	"github.com/spf13/cobra"
)

var getKind string

func init() {
	getCmd.Flags().StringVar(&getKind, "kind", string(network.KindPersonnel), "Network used to find connected albums (personnel or genre)")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <title>",
	Short: "Get a single album by title",
	Long: `Get a single album by its exact title, together with the albums it is
connected to through shared personnel (or genres with --kind genre).

Example:
  alb get "Kind of Blue"
  alb get "Kind of Blue" --kind genre`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// AlbumDetail is the response for the get command.
type AlbumDetail struct {
	album.Album
	Kind      string   `json:"kind"`
	Connected []string `json:"connected_albums"`
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	title := args[0]
	a, err := db.GetByTitle(title)
	if err != nil {
		exitWithError(ExitError, "getting album: %v", err)
	}
	if a == nil {
		exitWithError(ExitNotFound, "%v: %s", album.ErrAlbumNotFound, title)
	}

	n := mustBuildNetwork(repoRoot, db, getKind)
	connected := network.Partners(n.Connections(), a.Title)
	if connected == nil {
		connected = []string{}
	}

	if humanOutput {
		printAlbumDetail(*a, n.Kind(), connected)
	} else {
		outputJSON(AlbumDetail{Album: *a, Kind: string(n.Kind()), Connected: connected})
	}
	return nil
}

func printAlbumDetail(a album.Album, kind network.Kind, connected []string) {
	fmt.Printf("#%d %s\n", a.Number, truncateString(a.Title, DetailTitleMaxLen))
	fmt.Println(strings.Repeat("═", DetailTitleMaxLen))
	fmt.Println()

	fmt.Printf("Artist:   %s\n", a.Artist)
	fmt.Printf("Year:     %d\n", a.ReleaseYear)
	if len(a.Genres) > 0 {
		fmt.Printf("Genres:   %s\n", wrapText(strings.Join(a.Genres, ", "), TextWrapWidth, "          "))
	}
	if a.TotalTimeS > 0 {
		fmt.Printf("Length:   %s\n", stats.FormatDuration(a.TotalTimeS))
	}

	status := stats.StatusUnlistened
	switch {
	case a.PreviousListened:
		status = stats.StatusPrevious
	case a.Listened:
		status = stats.StatusListened
	}
	fmt.Printf("Status:   %s\n", status)

	roles := []struct {
		label string
		names []string
	}{
		{"Musicians", a.Personnel.Musicians},
		{"Arrangers", a.Personnel.Arrangers},
		{"Writers", a.Personnel.Writers},
		{"Producers", a.Personnel.Producers},
	}
	printed := false
	for _, r := range roles {
		if len(r.names) == 0 {
			continue
		}
		if !printed {
			fmt.Println()
			printed = true
		}
		fmt.Printf("%-10s%s\n", r.label+":", wrapText(strings.Join(r.names, ", "), TextWrapWidth, "          "))
	}

	if a.Comments != "" {
		fmt.Println()
		fmt.Printf("Comments: %s\n", wrapText(a.Comments, TextWrapWidth, "          "))
	}

	fmt.Println()
	if len(connected) == 0 {
		fmt.Printf("No albums connected by %s\n", kind)
		return
	}
	fmt.Printf("Connected by %s (%d):\n", kind, len(connected))
	for _, title := range connected {
		fmt.Printf("  %s\n", truncateString(title, DetailTitleMaxLen))
	}
}
