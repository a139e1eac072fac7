package main

import (
	"fmt"
	"strconv"

	"github.com/albums1001/albums/internal/stats"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show listening progress through the catalog",
	Long: `Show listening progress: how many albums have been heard (before and
during the catalog run), total listening time, the next album to hear, and
breakdowns by release year and artist.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	Summary            stats.Summary      `json:"summary"`
	TotalByYear        []stats.YearCount  `json:"total_by_year"`
	ListenedByYear     []stats.YearCount  `json:"listened_by_year"`
	ListenedTimeByYear []stats.YearTime   `json:"listened_time_by_year"`
	StatusByYear       []stats.YearStatus `json:"status_by_year"`
	Artists            map[string]int     `json:"artists"`
}

func runStats(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	albums := mustLoadAlbums(db)

	resp := StatsResponse{
		Summary:            stats.Summarize(albums),
		TotalByYear:        stats.TotalByYear(albums),
		ListenedByYear:     stats.ListenedByYear(albums),
		ListenedTimeByYear: stats.ListenedTimeByYear(albums),
		StatusByYear:       stats.StatusByYear(albums),
		Artists:            stats.ArtistsHeard(albums),
	}

	if humanOutput {
		printStats(resp)
	} else {
		outputJSON(resp)
	}
	return nil
}

func printStats(r StatsResponse) {
	s := r.Summary
	fmt.Printf("Albums in library: %d of %d\n", s.Albums, s.Catalog)
	fmt.Printf("Heard:             %d (%s)\n", s.Heard, stats.FormatDuration(s.HeardSeconds))
	fmt.Printf("  Previously:      %d (%s)\n", s.Previous, stats.FormatDuration(s.PreviousSeconds))
	fmt.Printf("  New:             %d (%s)\n", s.New, stats.FormatDuration(s.NewSeconds))
	if s.Next != nil {
		fmt.Printf("Next up:           #%d %s (%s)\n", s.Next.Number, s.Next.Title, s.Next.Artist)
	} else {
		fmt.Println("Next up:           nothing left to hear")
	}
	fmt.Println()

	fmt.Printf("Artists: %d %s, %d %s, %d %s\n\n",
		r.Artists[stats.ArtistFinished], stats.ArtistFinished,
		r.Artists[stats.ArtistInProgress], stats.ArtistInProgress,
		r.Artists[stats.ArtistNotStarted], stats.ArtistNotStarted)

	rows := make([]barRow, 0, len(r.StatusByYear))
	for _, ys := range r.StatusByYear {
		total := ys.Unlistened + ys.Listened + ys.Previous
		rows = append(rows, barRow{
			Label: strconv.Itoa(ys.Year),
			Value: ys.Listened + ys.Previous,
			Note:  fmt.Sprintf("of %d", total),
		})
	}
	fmt.Print(renderBarChart("Heard by release year", rows))
}
