package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchLimit      int
	searchPerson     string
	searchGenre      string
	searchYear       string
	searchListened   bool
	searchUnlistened bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultListLimit, "Maximum results to return")
	searchCmd.Flags().StringVarP(&searchPerson, "person", "p", "", "Search by credited person (prefix match)")
	searchCmd.Flags().StringVarP(&searchGenre, "genre", "g", "", "Filter by genre (exact)")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Filter by release year: exact (1959), range (1965:1975), or open (1990: or :1960)")
	searchCmd.Flags().BoolVar(&searchListened, "listened", false, "Only albums already listened to")
	searchCmd.Flags().BoolVar(&searchUnlistened, "unlistened", false, "Only albums not yet listened to")
	searchCmd.MarkFlagsMutuallyExclusive("listened", "unlistened")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search albums by keyword, person, genre, or year",
	Long: `Search albums with flexible filtering options.

The positional query searches titles, artists, personnel and genres.

Person matching is a prefix match on each word, so "Her Han" matches
"Herbie Hancock".

Year syntax:
  --year 1959         - Exact year
  --year 1965:1975    - Range (inclusive)
  --year 1990:        - 1990 and later
  --year :1960        - 1960 and earlier

Examples:
  alb search "coltrane"
  alb search -p "Quincy Jones" --year 1970:
  alb search -g Jazz --unlistened`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	filters := storage.SearchFilters{
		Person: searchPerson,
		Genre:  searchGenre,
	}
	if len(args) == 1 {
		filters.Keyword = args[0]
	}
	if searchYear != "" {
		from, to, err := parseYearRange(searchYear)
		if err != nil {
			exitWithError(ExitError, "invalid year format: %v", err)
		}
		filters.YearFrom, filters.YearTo = from, to
	}
	switch {
	case searchListened:
		filters.Listened = &searchListened
	case searchUnlistened:
		listened := false
		filters.Listened = &listened
	}

	if filters == (storage.SearchFilters{}) {
		exitWithError(ExitError, "search requires a query or at least one filter")
	}

	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	albums, err := db.SearchWithFilters(filters, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}
	if albums == nil {
		albums = []album.Album{}
	}

	if humanOutput {
		printAlbumList(albums, "albums")
	} else {
		outputJSON(albums)
	}
	return nil
}

// parseYearRange parses year filter syntax:
// "1959" -> (1959, 1959)
// "1965:1975" -> (1965, 1975)
// "1990:" -> (1990, 0)
// ":1960" -> (0, 1960)
func parseYearRange(s string) (from, to int, err error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		year, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year: %s", s)
		}
		return year, year, nil
	}

	parts := strings.SplitN(s, ":", 2)
	if parts[0] != "" {
		from, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start year: %s", parts[0])
		}
	}
	if parts[1] != "" {
		to, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end year: %s", parts[1])
		}
	}
	if from == 0 && to == 0 {
		return 0, 0, fmt.Errorf("empty year range: %s", s)
	}
	if from != 0 && to != 0 && from > to {
		return 0, 0, fmt.Errorf("start year %d is after end year %d", from, to)
	}
	return from, to, nil
}
