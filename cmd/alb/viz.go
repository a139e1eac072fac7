package main

import (
	"fmt"
	"os"

	"github.com/albums1001/albums/internal/network"
	"github.com/albums1001/albums/internal/viz"
	"github.com/spf13/cobra"
)

var (
	vizOutput string
	vizLayout string
	vizKind   string
	vizSelect string
	vizJSON   bool
)

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizLayout, "layout", "preset", "Layout: preset (computed positions), force, circle, or grid")
	vizCmd.Flags().StringVarP(&vizKind, "kind", "k", string(network.KindPersonnel), "Link albums by personnel or genre")
	vizCmd.Flags().StringVarP(&vizSelect, "select", "s", "", "Album to highlight in the rendered graph")
	vizCmd.Flags().BoolVar(&vizJSON, "json", false, "Write Cytoscape elements JSON instead of HTML")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate the album network visualization",
	Long: `Generate an interactive HTML visualization of the album network.

Albums are circles coloured by release year; people (or genres) are diamonds.
Edges are coloured by the role the person played on the album. Click an album
to highlight it and the albums it shares a person or genre with; click the
background to reset.

Examples:
  # Generate HTML to stdout
  alb viz > network.html

  # Genre network with an album pre-selected
  alb viz --kind genre --select "Kind of Blue" -o network.html

  # Let the browser lay the graph out instead
  alb viz --layout force -o network.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	n := mustBuildNetwork(repoRoot, db, vizKind)
	if vizSelect != "" {
		n.Select(vizSelect)
	}
	graph := viz.BuildGraphData(n)

	var out string
	if vizJSON {
		data, err := graph.ToCytoscapeJSON()
		if err != nil {
			return fmt.Errorf("encoding graph: %w", err)
		}
		out = data + "\n"
	} else {
		opts := viz.DefaultOptions()
		opts.Layout = vizLayout
		opts.Palette = mustLoadConfig(repoRoot).Palette()
		html, err := viz.GenerateHTML(graph, opts)
		if err != nil {
			return fmt.Errorf("generating HTML: %w", err)
		}
		out = html
	}

	if vizOutput == "" {
		fmt.Print(out)
		return nil
	}

	if err := os.WriteFile(vizOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		fmt.Printf("Visualization written to %s\n", vizOutput)
	} else {
		outputJSON(map[string]string{"output": vizOutput})
	}
	return nil
}
