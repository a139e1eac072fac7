package main

import (
	"fmt"
	"strconv"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/config"
	"github.com/albums1001/albums/internal/storage"
	"github.com/spf13/cobra"
)

var (
	markPrevious   bool
	markUnlistened bool
	markComment    string
)

func init() {
	markCmd.Flags().BoolVar(&markPrevious, "previous", false, "Mark as heard before starting the catalog")
	markCmd.Flags().BoolVar(&markUnlistened, "unlistened", false, "Clear the listened state")
	markCmd.Flags().StringVarP(&markComment, "comment", "c", "", "Replace the album's comments")
	markCmd.MarkFlagsMutuallyExclusive("previous", "unlistened")
	rootCmd.AddCommand(markCmd)
}

var markCmd = &cobra.Command{
	Use:   "mark <title|number>",
	Short: "Record listening progress for an album",
	Long: `Mark an album as listened. The album is found by exact title, or by
catalog number when no title matches.

Examples:
  alb mark "Kind of Blue"
  alb mark 12 --previous
  alb mark "Thriller" --unlistened
  alb mark 1 -c "Still the best"`,
	Args: cobra.ExactArgs(1),
	RunE: runMark,
}

func runMark(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	path := config.AlbumsPath(repoRoot)

	albums, err := storage.ReadAll(path)
	if err != nil {
		exitWithError(ExitDataError, "reading albums: %v", err)
	}

	idx, found := findAlbum(albums, args[0])
	if !found {
		exitWithError(ExitNotFound, "%v: %s", album.ErrAlbumNotFound, args[0])
	}

	a := &albums[idx]
	applyMark(a, markPrevious, markUnlistened)
	if cmd.Flags().Changed("comment") {
		a.Comments = markComment
	}

	if err := storage.WriteAll(path, albums); err != nil {
		exitWithError(exitCodeFor(err), "writing albums: %v", err)
	}

	mustRefreshDatabase(repoRoot)

	if humanOutput {
		fmt.Printf("Marked %s: listened=%t previously=%t\n", a.Title, a.Listened, a.PreviousListened)
	} else {
		outputJSON(a)
	}
	return nil
}

// findAlbum looks an album up by title, then by catalog number.
func findAlbum(albums []album.Album, ref string) (int, bool) {
	if idx, found := storage.FindByTitle(albums, ref); found {
		return idx, true
	}
	if n, err := strconv.Atoi(ref); err == nil {
		return storage.FindByNumber(albums, n)
	}
	return -1, false
}

// applyMark sets the listening flags. Previously heard albums count as listened.
func applyMark(a *album.Album, previous, unlistened bool) {
	switch {
	case unlistened:
		a.Listened = false
		a.PreviousListened = false
	case previous:
		a.Listened = true
		a.PreviousListened = true
	default:
		a.Listened = true
	}
}
