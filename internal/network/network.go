// Package network builds the album relationship graph: albums linked through
// shared personnel or genres, with structurally identical linking nodes merged
// into groups, a 2-D layout, derived album-album connections and highlight
// state for interactive exploration.
package network

import (
	"fmt"
	"sort"

	"github.com/albums1001/albums/internal/album"
	"go.uber.org/zap"
)

// Network owns one album set and the structures derived from it. Groups, the
// graph and connections are computed on first use and cached until SetAlbums
// replaces the album set. Not safe for concurrent use.
type Network struct {
	kind     Kind
	layouter Layouter
	params   LayoutParams
	palette  Palette
	logger   *zap.SugaredLogger

	albums []*album.Album

	// caches, cleared by invalidate
	groups      []*Group
	graph       *Graph
	connections []Connection
	highlighter *Highlighter
}

// Option configures a Network.
type Option func(*Network)

// WithLayouter replaces the default EadesLayout.
func WithLayouter(l Layouter) Option {
	return func(n *Network) { n.layouter = l }
}

// WithLayoutParams sets the layout parameters.
func WithLayoutParams(p LayoutParams) Option {
	return func(n *Network) { n.params = p }
}

// WithPalette sets the highlight palette.
func WithPalette(p Palette) Option {
	return func(n *Network) { n.palette = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(n *Network) { n.logger = l }
}

// New returns an empty network of the given kind.
func New(kind Kind, opts ...Option) *Network {
	n := &Network{
		kind:     kind,
		layouter: EadesLayout{},
		params:   DefaultLayoutParams(),
		palette:  DefaultPalette(),
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.Named("network")
	return n
}

// Kind returns the network's link kind.
func (n *Network) Kind() Kind {
	return n.kind
}

// SetAlbums replaces the album set and drops every cached structure. Albums
// are copied and sorted by title so group ids are reproducible. Duplicate
// titles are rejected with album.ErrDuplicateTitle and leave the network
// unchanged.
func (n *Network) SetAlbums(albums []album.Album) error {
	if err := album.ValidateUniqueTitles(albums); err != nil {
		return fmt.Errorf("setting albums: %w", err)
	}

	owned := make([]*album.Album, len(albums))
	for i := range albums {
		a := albums[i]
		owned[i] = &a
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Title < owned[j].Title
	})

	n.albums = owned
	n.invalidate()
	n.logger.Debugw("album set replaced", "albums", len(owned), "kind", n.kind)
	return nil
}

func (n *Network) invalidate() {
	n.groups = nil
	n.graph = nil
	n.connections = nil
	n.highlighter = nil
}

// Albums returns the album set in title order.
func (n *Network) Albums() []*album.Album {
	return n.albums
}

// LinkNodes returns every linking node of the current album set, eligible or not.
func (n *Network) LinkNodes() []*LinkNode {
	return CollectLinkNodes(n.albums, n.kind)
}

// Groups returns the eligible groups.
func (n *Network) Groups() []*Group {
	if n.groups == nil {
		nodes := n.LinkNodes()
		n.groups = GroupLinkNodes(nodes)
		n.logger.Debugw("grouped link nodes", "link_nodes", len(nodes), "groups", len(n.groups))
	}
	return n.groups
}

// Graph returns the laid-out graph.
func (n *Network) Graph() *Graph {
	if n.graph == nil {
		n.graph = Build(n.albums, n.kind, n.Groups(), n.layouter, n.params)
		n.logger.Infow("built graph",
			"kind", n.kind,
			"albums", len(n.graph.Albums),
			"groups", len(n.graph.Groups),
			"edges", len(n.graph.Edges))
	}
	return n.graph
}

// Connections returns the album-album connections, with multiplicity.
func (n *Network) Connections() []Connection {
	if n.connections == nil {
		n.connections = DeriveConnections(n.Graph())
	}
	return n.connections
}

func (n *Network) highlight() *Highlighter {
	if n.highlighter == nil {
		n.highlighter = NewHighlighter(n.Graph(), n.Connections(), n.kind, n.palette)
	}
	return n.highlighter
}

// Select highlights the album with the given title and returns its directly
// connected albums. Unknown titles deselect.
func (n *Network) Select(title string) []string {
	direct := n.highlight().Select(title)
	if title != "" && n.highlight().Selected() == "" {
		n.logger.Debugw("selection not in graph, deselecting", "title", title)
	}
	return direct
}

// Deselect restores the default palette.
func (n *Network) Deselect() {
	n.highlight().Deselect()
}

// State returns the current render state.
func (n *Network) State() RenderState {
	return n.highlight().State()
}

// DefaultState returns the deselected render state without changing the
// current selection.
func (n *Network) DefaultState() RenderState {
	if n.highlight().Selected() == "" {
		return n.highlight().State()
	}
	return NewHighlighter(n.Graph(), n.Connections(), n.kind, n.palette).State()
}

// Palette returns the highlight palette.
func (n *Network) Palette() Palette {
	return n.palette
}

// TopGroups returns the n most connected groups.
func (n *Network) TopGroups(limit int) []RankedGroup {
	return TopGroups(n.Groups(), limit)
}

// TopAlbums returns the n most connected albums.
func (n *Network) TopAlbums(limit int) []RankedAlbum {
	return TopAlbums(n.Graph(), n.Connections(), limit)
}
