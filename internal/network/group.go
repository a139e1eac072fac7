package network

import (
	"fmt"
	"sort"

	"github.com/albums1001/albums/internal/album"
)

// MinGroupAlbums is the smallest album set a node or group needs to appear in
// the graph. A name on a single album links nothing.
const MinGroupAlbums = 2

// Group is a cluster of structurally equivalent LinkNodes, rendered as one node.
type Group struct {
	ID      int // 0 for single-member groups
	Members []*LinkNode
	Key     Key
}

// single returns the representative member; every member shares its links.
func (g *Group) single() *LinkNode {
	return g.Members[0]
}

// Name is the member name for single-member groups and "Group N" otherwise.
func (g *Group) Name() string {
	if len(g.Members) == 1 {
		return g.single().Name
	}
	return fmt.Sprintf("Group %d", g.ID)
}

// MemberNames returns the names of all members in run order.
func (g *Group) MemberNames() []string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.Name
	}
	return names
}

// Links returns the shared (album, role) pairs in title order.
func (g *Group) Links() []Link {
	return g.single().SortedLinks()
}

// Albums returns the shared albums in title order.
func (g *Group) Albums() []*album.Album {
	links := g.Links()
	albums := make([]*album.Album, len(links))
	for i, l := range links {
		albums[i] = l.Album
	}
	return albums
}

// HasAlbum reports whether the group touches the album with the given title.
func (g *Group) HasAlbum(title string) bool {
	for _, p := range g.Key {
		if p.Title == title {
			return true
		}
	}
	return false
}

// Role returns the shared role on the given album, or "" if the group does
// not touch it.
func (g *Group) Role(title string) album.Role {
	for _, p := range g.Key {
		if p.Title == title {
			return p.Role
		}
	}
	return ""
}

// NumConnections returns the number of distinct albums the group touches.
func (g *Group) NumConnections() int {
	return g.single().NumAlbums()
}

// BreakdownRow is one bar segment of a top-groups chart.
type BreakdownRow struct {
	Person string     `json:"person"`
	Album  string     `json:"album"`
	Role   album.Role `json:"role"`
	Count  int        `json:"count"`
}

// Breakdown returns one row per shared album. Genre groups report RoleUnknown
// so charts can colour every row.
func (g *Group) Breakdown() []BreakdownRow {
	links := g.Links()
	rows := make([]BreakdownRow, len(links))
	for i, l := range links {
		role := l.Role
		if role == "" {
			role = album.RoleUnknown
		}
		rows[i] = BreakdownRow{Person: g.Name(), Album: l.Album.Title, Role: role, Count: 1}
	}
	return rows
}

// GroupLinkNodes merges structurally equivalent nodes into groups.
//
// Nodes touching fewer than MinGroupAlbums albums are dropped first. The rest
// are stable-sorted by structural key and split into runs of equal keys; each
// run becomes one group. Runs of two or more members get ids 1, 2, ... in run
// order. Ids depend on input order, so callers wanting reproducible ids must
// pass nodes in a deterministic order.
func GroupLinkNodes(nodes []*LinkNode) []*Group {
	type keyed struct {
		node *LinkNode
		key  Key
	}

	eligible := make([]keyed, 0, len(nodes))
	for _, n := range nodes {
		if n.NumAlbums() < MinGroupAlbums {
			continue
		}
		eligible = append(eligible, keyed{node: n, key: n.Key()})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].key.Compare(eligible[j].key) < 0
	})

	var groups []*Group
	nextID := 1
	for i := 0; i < len(eligible); {
		j := i + 1
		for j < len(eligible) && eligible[j].key.Equal(eligible[i].key) {
			j++
		}

		g := &Group{Key: eligible[i].key}
		for _, k := range eligible[i:j] {
			g.Members = append(g.Members, k.node)
		}
		if len(g.Members) > 1 {
			g.ID = nextID
			nextID++
		}
		groups = append(groups, g)
		i = j
	}
	return groups
}
