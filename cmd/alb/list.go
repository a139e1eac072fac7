package main

import (
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum albums to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums in catalog order",
	Long: `List albums ordered by catalog number.

In --human mode each entry is marked "+" when listened and "*" when it had
been heard before starting the catalog.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	albums, err := db.ListAll(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing albums: %v", err)
	}

	if humanOutput {
		printAlbumList(albums, "albums")
	} else {
		outputJSON(albums)
	}
	return nil
}
