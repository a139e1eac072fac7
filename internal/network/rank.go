package network

import "sort"

// DefaultTopN is how many entries the top-N charts show.
const DefaultTopN = 30

// RankedGroup is one entry of the most-connected groups chart.
type RankedGroup struct {
	Name        string         `json:"name"`
	Members     []string       `json:"members"`
	Connections int            `json:"connections"`
	Rows        []BreakdownRow `json:"rows"`
}

// RankedAlbum is one entry of the most-connected albums chart.
type RankedAlbum struct {
	Title            string   `json:"title"`
	Connections      int      `json:"connections"`
	ConnectingAlbums []string `json:"connecting_albums"`
}

// TopGroups returns up to n groups ordered by distinct connected albums,
// descending. Ties keep the grouping run order. n <= 0 means no limit.
func TopGroups(groups []*Group, n int) []RankedGroup {
	sorted := make([]*Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NumConnections() > sorted[j].NumConnections()
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]RankedGroup, len(sorted))
	for i, g := range sorted {
		out[i] = RankedGroup{
			Name:        g.Name(),
			Members:     g.MemberNames(),
			Connections: g.NumConnections(),
			Rows:        g.Breakdown(),
		}
	}
	return out
}

// TopAlbums returns up to n albums ordered by distinct connected albums,
// descending. Albums without connections are omitted. Ties keep graph order.
// n <= 0 means no limit.
func TopAlbums(g *Graph, conns []Connection, n int) []RankedAlbum {
	sets := partnerSets(conns)

	var out []RankedAlbum
	for _, a := range g.Albums {
		partners := sets[a.Label]
		if len(partners) == 0 {
			continue
		}
		out = append(out, RankedAlbum{
			Title:            a.Label,
			Connections:      len(partners),
			ConnectingAlbums: partners,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Connections > out[j].Connections
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
