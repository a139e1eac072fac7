package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/config"
	"github.com/albums1001/albums/internal/conflict"
	"github.com/albums1001/albums/internal/storage"
	"github.com/spf13/cobra"
)

var (
	resolveDryRun bool
	resolvePrefer string
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveDryRun, "dry-run", false, "Show proposed resolution without modifying files")
	resolveCmd.Flags().StringVar(&resolvePrefer, "prefer", "", "Side that wins field conflicts: ours or theirs")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve git merge conflicts in albums.jsonl",
	Long: `Resolve git merge conflicts in albums.jsonl using what is known about albums.

Albums are matched by title, then by catalog number. For matched albums:
  - listened and previously-heard flags are combined (once heard, always heard)
  - personnel and genres are unioned
  - other fields take whichever side is set

When both sides set a field to different values the conflict is reported and
nothing is written unless --prefer picks a side.

Examples:
  alb resolve --dry-run
  alb resolve
  alb resolve --prefer theirs`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

// ResolveResult is the response for the resolve command.
type ResolveResult struct {
	Regions int             `json:"regions"`
	Albums  int             `json:"albums"`
	Plans   []conflict.Plan `json:"plans,omitempty"`
	Written bool            `json:"written"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	prefer := conflict.SideOurs
	switch resolvePrefer {
	case "", string(conflict.SideOurs):
	case string(conflict.SideTheirs):
		prefer = conflict.SideTheirs
	default:
		exitWithError(ExitError, "invalid --prefer %q: must be ours or theirs", resolvePrefer)
	}

	repoRoot := mustFindRepository()
	path := config.AlbumsPath(repoRoot)

	f, err := os.Open(path)
	if err != nil {
		exitWithError(ExitDataError, "opening albums file: %v", err)
	}
	parsed, err := conflict.Parse(f)
	f.Close()
	if err != nil {
		var perr conflict.ParseError
		if errors.As(err, &perr) {
			exitWithError(ExitDataError, "parsing albums.jsonl: %s", perr.Error())
		}
		exitWithError(ExitError, "parsing albums.jsonl: %v", err)
	}

	if !parsed.HasConflicts() {
		if humanOutput {
			fmt.Println("No conflicts detected in albums.jsonl.")
		} else {
			outputJSON(ResolveResult{Albums: len(parsed.CleanLines)})
		}
		return nil
	}

	result := ResolveResult{Regions: len(parsed.Regions)}
	resolved := make([][]album.Album, len(parsed.Regions))
	for i, region := range parsed.Regions {
		albums, plans := conflict.ResolveRegion(region, prefer)
		resolved[i] = albums
		result.Plans = append(result.Plans, plans...)
	}

	all, err := parsed.Assemble(resolved)
	if err != nil {
		exitWithError(ExitDataError, "assembling albums: %v", err)
	}
	result.Albums = len(all)

	blocked := conflict.HasConflict(result.Plans) && resolvePrefer == ""
	if !resolveDryRun && !blocked {
		if err := storage.WriteAll(path, all); err != nil {
			exitWithError(exitCodeFor(err), "writing albums: %v", err)
		}
		mustRefreshDatabase(repoRoot)
		result.Written = true
	}

	if humanOutput {
		printResolveResult(result, blocked)
	} else {
		outputJSON(result)
	}
	if blocked && !resolveDryRun {
		os.Exit(ExitDataError)
	}
	return nil
}

func printResolveResult(r ResolveResult, blocked bool) {
	if !r.Written {
		fmt.Println("No changes made")
		fmt.Println()
	}
	fmt.Printf("Conflict regions: %d\n", r.Regions)
	fmt.Printf("Albums after resolution: %d\n", r.Albums)
	for _, p := range r.Plans {
		fmt.Printf("  %-10s %s\n", p.Action, truncateString(p.Title, ListTitleMaxLen))
		for _, c := range p.Conflicts {
			fmt.Printf("             %s: ours=%q theirs=%q\n", c.Field,
				truncateString(c.Ours, 30), truncateString(c.Theirs, 30))
		}
	}
	if blocked {
		fmt.Fprintln(os.Stderr, "\nerror: conflicting fields need --prefer ours or --prefer theirs")
	}
}
