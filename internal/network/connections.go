package network

import "sort"

// Connection records that the albums titled Album and Connected share one
// group. A pair sharing several groups appears once per group.
type Connection struct {
	Album     string `json:"album"`
	Connected string `json:"connecting_album"`
	Count     int    `json:"count"`
}

// DeriveConnections walks album -> group -> other album for every album node.
// Multiplicity is kept: each shared group yields its own Connection, in both
// directions.
func DeriveConnections(g *Graph) []Connection {
	var conns []Connection
	for _, a := range g.Albums {
		for _, groupID := range g.Neighbors(a.ID) {
			for _, other := range g.Neighbors(groupID) {
				if other == a.ID {
					continue
				}
				conns = append(conns, Connection{Album: a.Label, Connected: g.label(other), Count: 1})
			}
		}
	}
	return conns
}

// AggregateConnections sums counts per (album, connected) pair. Pairs keep
// their first-seen order.
func AggregateConnections(conns []Connection) []Connection {
	type pair struct{ a, b string }
	idx := make(map[pair]int)
	var out []Connection
	for _, c := range conns {
		p := pair{c.Album, c.Connected}
		if i, ok := idx[p]; ok {
			out[i].Count += c.Count
			continue
		}
		idx[p] = len(out)
		out = append(out, c)
	}
	return out
}

// Partners returns the distinct albums connected to title, sorted.
func Partners(conns []Connection, title string) []string {
	seen := make(map[string]bool)
	var partners []string
	for _, c := range conns {
		if c.Album != title || seen[c.Connected] {
			continue
		}
		seen[c.Connected] = true
		partners = append(partners, c.Connected)
	}
	sort.Strings(partners)
	return partners
}

// partnerSets returns the distinct partners of every album, sorted, in one
// pass over conns.
func partnerSets(conns []Connection) map[string][]string {
	seen := make(map[[2]string]bool)
	sets := make(map[string][]string)
	for _, c := range conns {
		k := [2]string{c.Album, c.Connected}
		if seen[k] {
			continue
		}
		seen[k] = true
		sets[c.Album] = append(sets[c.Album], c.Connected)
	}
	for _, partners := range sets {
		sort.Strings(partners)
	}
	return sets
}
