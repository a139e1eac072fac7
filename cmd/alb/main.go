// Package main provides the alb CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/config"
	"github.com/albums1001/albums/internal/network"
	"github.com/albums1001/albums/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging on stderr
var verbose bool

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop().Sugar()

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "alb",
	Short: "Explore who played on the 1001 albums",
	Long: `alb tracks listening progress through the 1001-album catalog and
explores how albums are connected through shared personnel and genres.

Albums are stored in git-versionable JSONL with an ephemeral SQLite
database for queries. All commands output JSON by default; pass --human
for readable tables and charts.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.Version = Version
}

// setup loads .env and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	// .env is optional; it can set ALB_LIBRARY
	_ = godotenv.Load()

	if !verbose {
		return nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l.Sugar()
	return nil
}

// mustFindRepository finds and validates the album library, exits on error.
// Returns the library root path.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.ResolveRoot(cwd)
	if err != nil {
		logger.Debugw("library lookup failed", "start", cwd, "error", err)
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadAlbums reads every album from the database, exits on error.
func mustLoadAlbums(db *storage.DB) []album.Album {
	albums, err := db.GetAllAlbums()
	if err != nil {
		exitWithError(ExitError, "loading albums: %v", err)
	}
	return albums
}

// mustBuildNetwork builds the relationship network of the given kind over
// every album in the library. Layouts are cached in the database.
func mustBuildNetwork(root string, db *storage.DB, kindName string) *network.Network {
	kind, err := network.ParseKind(kindName)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	cfg := mustLoadConfig(root)

	n := network.New(kind,
		network.WithPalette(cfg.Palette()),
		network.WithLayoutParams(cfg.LayoutParams()),
		network.WithLayouter(storage.NewLayoutCache(db, network.EadesLayout{}, logger)),
		network.WithLogger(logger),
	)
	if err := n.SetAlbums(mustLoadAlbums(db)); err != nil {
		exitWithError(exitCodeFor(err), "building network: %v", err)
	}
	return n
}
