package network

import (
	"github.com/albums1001/albums/internal/album"
)

// NodeType distinguishes album nodes from group nodes.
type NodeType string

const (
	NodeTypeAlbum NodeType = "album"
	NodeTypeGroup NodeType = "group"
)

// Node ID prefixes. Album titles and group names may coincide, so each kind
// gets its own namespace.
const (
	albumPrefix = "album:"
	groupPrefix = "group:"
)

// AlbumID returns the node ID of the album titled title.
func AlbumID(title string) string {
	return albumPrefix + title
}

// GroupID returns the node ID of the group named name.
func GroupID(name string) string {
	return groupPrefix + name
}

// Node is a graph node with its computed position.
type Node struct {
	ID       string // AlbumID or GroupID
	Label    string // album title or group name
	Type     NodeType
	Position Position

	Album *album.Album // set for album nodes
	Group *Group       // set for group nodes
}

// Edge connects a group to one of its albums.
type Edge struct {
	Group string     // group node ID
	Album string     // album node ID
	Role  album.Role // empty for genre graphs
}

// Graph is the undirected album/group graph. It is rebuilt from scratch,
// never updated in place.
type Graph struct {
	Albums []*Node // album nodes in input order
	Groups []*Node // group nodes in run order
	Edges  []Edge

	nodes map[string]*Node
	adj   map[string][]string
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// AlbumNode returns the album node titled title, or nil.
func (g *Graph) AlbumNode(title string) *Node {
	return g.nodes[AlbumID(title)]
}

// GroupNode returns the group node named name, or nil.
func (g *Graph) GroupNode(name string) *Node {
	return g.nodes[GroupID(name)]
}

// label returns the title or name behind a node ID.
func (g *Graph) label(id string) string {
	if n := g.nodes[id]; n != nil {
		return n.Label
	}
	return ""
}

// Neighbors returns the IDs adjacent to id, in edge order.
func (g *Graph) Neighbors(id string) []string {
	return g.adj[id]
}

// Degree returns the number of edges at id. For an album this is the number
// of groups it belongs to.
func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.nodes) == 0
}

// NodeIDs returns every node ID: albums first, then groups.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Albums)+len(g.Groups))
	for _, n := range g.Albums {
		ids = append(ids, n.ID)
	}
	for _, n := range g.Groups {
		ids = append(ids, n.ID)
	}
	return ids
}

// EdgeRefs returns the edges in the form layouts consume.
func (g *Graph) EdgeRefs() []EdgeRef {
	refs := make([]EdgeRef, len(g.Edges))
	for i, e := range g.Edges {
		refs[i] = EdgeRef{Source: e.Group, Target: e.Album}
	}
	return refs
}

// Build assembles the graph from albums and groups and lays it out.
//
// Albums with no attachment of the given kind are left out. Albums whose
// attachments are all ineligible stay in as isolated nodes. A nil layouter
// means EadesLayout.
func Build(albums []*album.Album, kind Kind, groups []*Group, layouter Layouter, params LayoutParams) *Graph {
	g := &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string][]string),
	}

	for _, a := range albums {
		if len(Extract(kind, a)) == 0 {
			continue
		}
		n := &Node{ID: AlbumID(a.Title), Label: a.Title, Type: NodeTypeAlbum, Album: a}
		g.Albums = append(g.Albums, n)
		g.nodes[n.ID] = n
	}

	for _, grp := range groups {
		n := &Node{ID: GroupID(grp.Name()), Label: grp.Name(), Type: NodeTypeGroup, Group: grp}
		g.Groups = append(g.Groups, n)
		g.nodes[n.ID] = n

		for _, l := range grp.Links() {
			albumID := AlbumID(l.Album.Title)
			if _, ok := g.nodes[albumID]; !ok {
				continue
			}
			g.Edges = append(g.Edges, Edge{Group: n.ID, Album: albumID, Role: l.Role})
			g.adj[n.ID] = append(g.adj[n.ID], albumID)
			g.adj[albumID] = append(g.adj[albumID], n.ID)
		}
	}

	if layouter == nil {
		layouter = EadesLayout{}
	}
	positions := layouter.Layout(g.NodeIDs(), g.EdgeRefs(), params)
	for id, p := range positions {
		if n, ok := g.nodes[id]; ok {
			n.Position = p
		}
	}

	return g
}
