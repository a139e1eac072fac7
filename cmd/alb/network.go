package main

import (
	"fmt"
	"strings"

	"github.com/albums1001/albums/internal/network"
	"github.com/spf13/cobra"
)

var (
	networkKind      string
	networkLimit     int
	networkAggregate bool
)

func init() {
	networkCmd.PersistentFlags().StringVarP(&networkKind, "kind", "k", string(network.KindPersonnel), "Link albums by personnel or genre")
	networkCmd.PersistentFlags().IntVar(&networkLimit, "limit", -1, "Maximum entries to show (default: top_n from config, 0 = all)")
	networkConnectionsCmd.Flags().BoolVar(&networkAggregate, "aggregate", false, "Sum connections per album pair")

	networkCmd.AddCommand(networkGroupsCmd)
	networkCmd.AddCommand(networkAlbumsCmd)
	networkCmd.AddCommand(networkConnectionsCmd)
	networkCmd.AddCommand(networkSelectCmd)
	rootCmd.AddCommand(networkCmd)
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Explore how albums are connected",
	Long: `Explore the album network.

Albums are linked through the people credited on them (--kind personnel) or
through their genre tags (--kind genre). People or genres appearing on exactly
the same albums in the same roles are merged into one group.`,
}

var networkGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Rank people or genres by how many albums they connect",
	Args:  cobra.NoArgs,
	RunE:  runNetworkGroups,
}

var networkAlbumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "Rank albums by how many other albums they connect to",
	Args:  cobra.NoArgs,
	RunE:  runNetworkAlbums,
}

var networkConnectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "List album-to-album connections",
	Long: `List album-to-album connections. A pair sharing several groups appears
once per shared group unless --aggregate is given.`,
	Args: cobra.NoArgs,
	RunE: runNetworkConnections,
}

var networkSelectCmd = &cobra.Command{
	Use:   "select <title>",
	Short: "Highlight an album and show what it connects to",
	Long: `Select an album and print the resulting render state: the selected
album, its directly connected albums, and the style of every node and edge.

An unknown title leaves nothing selected.`,
	Args: cobra.ExactArgs(1),
	RunE: runNetworkSelect,
}

// resolveLimit applies the configured top_n when --limit was not given.
func resolveLimit(limit, configured int) int {
	if limit >= 0 {
		return limit
	}
	return configured
}

func runNetworkGroups(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	n := mustBuildNetwork(repoRoot, db, networkKind)
	top := n.TopGroups(resolveLimit(networkLimit, mustLoadConfig(repoRoot).Network.TopN))
	if top == nil {
		top = []network.RankedGroup{}
	}

	if !humanOutput {
		outputJSON(top)
		return nil
	}

	rows := make([]barRow, 0, len(top))
	for _, g := range top {
		note := ""
		if len(g.Members) > 1 {
			note = fmt.Sprintf("%d members", len(g.Members))
		}
		rows = append(rows, barRow{Label: g.Name, Value: g.Connections, Note: note})
	}
	fmt.Print(renderBarChart(fmt.Sprintf("Most connected %s", groupNoun(n.Kind())), rows))
	return nil
}

func runNetworkAlbums(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	n := mustBuildNetwork(repoRoot, db, networkKind)
	top := n.TopAlbums(resolveLimit(networkLimit, mustLoadConfig(repoRoot).Network.TopN))
	if top == nil {
		top = []network.RankedAlbum{}
	}

	if !humanOutput {
		outputJSON(top)
		return nil
	}

	rows := make([]barRow, 0, len(top))
	for _, a := range top {
		rows = append(rows, barRow{Label: a.Title, Value: a.Connections})
	}
	fmt.Print(renderBarChart(fmt.Sprintf("Most connected albums by %s", n.Kind()), rows))
	return nil
}

func runNetworkConnections(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	n := mustBuildNetwork(repoRoot, db, networkKind)
	conns := n.Connections()
	if networkAggregate {
		conns = network.AggregateConnections(conns)
	}
	if conns == nil {
		conns = []network.Connection{}
	}

	if !humanOutput {
		outputJSON(conns)
		return nil
	}

	if len(conns) == 0 {
		fmt.Println("No connections found")
		return nil
	}
	for _, c := range conns {
		fmt.Printf("%-*s  %-*s  %d\n",
			ListTitleMaxLen, truncateString(c.Album, ListTitleMaxLen),
			ListTitleMaxLen, truncateString(c.Connected, ListTitleMaxLen),
			c.Count)
	}
	return nil
}

func runNetworkSelect(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	n := mustBuildNetwork(repoRoot, db, networkKind)
	direct := n.Select(args[0])
	state := n.State()

	if !humanOutput {
		outputJSON(state)
		return nil
	}

	if state.Selected == "" {
		fmt.Printf("%s is not in the %s network\n", args[0], n.Kind())
		return nil
	}
	fmt.Printf("Selected: %s\n\n", state.Selected)
	if len(direct) == 0 {
		fmt.Println("No directly connected albums")
		return nil
	}
	fmt.Printf("Directly connected (%d):\n", len(direct))
	for _, title := range direct {
		fmt.Printf("  %s\n", title)
	}

	var lit []string
	for _, g := range state.Groups {
		if g.Highlighted {
			lit = append(lit, g.Name)
		}
	}
	if len(lit) > 0 {
		fmt.Printf("\nThrough: %s\n", wrapText(strings.Join(lit, ", "), TextWrapWidth, "         "))
	}
	return nil
}

// groupNoun names what a group node stands for.
func groupNoun(kind network.Kind) string {
	if kind == network.KindGenre {
		return "genres"
	}
	return "people"
}
