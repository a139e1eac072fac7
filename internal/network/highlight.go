package network

// Level is an album node's highlight level.
type Level string

const (
	LevelDefault   Level = "default"   // nothing selected
	LevelPrimary   Level = "primary"   // the selected album
	LevelSecondary Level = "secondary" // directly connected to the selected album
	LevelLowlight  Level = "lowlight"  // everything else while something is selected
)

// AlbumStyle is the render state of an album node.
type AlbumStyle struct {
	Title  string  `json:"title"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	Symbol string  `json:"symbol"`
	Level  Level   `json:"level"`
}

// GroupStyle is the render state of a group node.
type GroupStyle struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Size        float64 `json:"size"`
	Symbol      string  `json:"symbol"`
	Highlighted bool    `json:"highlighted"`
}

// EdgeStyle is the render state of a group-album edge.
type EdgeStyle struct {
	Group string  `json:"group"`
	Album string  `json:"album"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// RenderState is everything the presentation layer needs to style the graph.
// Slices are in graph order.
type RenderState struct {
	Selected          string       `json:"selected,omitempty"`
	DirectlyConnected []string     `json:"directly_connected,omitempty"`
	Albums            []AlbumStyle `json:"albums"`
	Groups            []GroupStyle `json:"groups"`
	Edges             []EdgeStyle  `json:"edges"`
}

// Highlighter computes render state for a graph and an optional selected
// album. It never modifies the graph.
type Highlighter struct {
	graph   *Graph
	conns   []Connection
	kind    Kind
	palette Palette

	minYear, maxYear int

	selected string
	state    RenderState
}

// NewHighlighter returns a highlighter in the deselected state.
func NewHighlighter(g *Graph, conns []Connection, kind Kind, palette Palette) *Highlighter {
	h := &Highlighter{graph: g, conns: conns, kind: kind, palette: palette}
	for i, n := range g.Albums {
		y := n.Album.ReleaseYear
		if i == 0 || y < h.minYear {
			h.minYear = y
		}
		if i == 0 || y > h.maxYear {
			h.maxYear = y
		}
	}
	h.Deselect()
	return h
}

// Selected returns the selected album title, or "" when nothing is selected.
func (h *Highlighter) Selected() string {
	return h.selected
}

// State returns the current render state.
func (h *Highlighter) State() RenderState {
	return h.state
}

// Select highlights title, the albums directly connected to it, the groups
// linking them and the edges between them. A title that isn't an album node
// is treated as Deselect. Returns the directly connected albums.
func (h *Highlighter) Select(title string) []string {
	if title == "" || h.graph.AlbumNode(title) == nil {
		h.Deselect()
		return nil
	}

	direct := Partners(h.conns, title)
	inDirect := make(map[string]bool, len(direct))
	for _, t := range direct {
		inDirect[t] = true
	}

	p := h.palette
	state := RenderState{
		Selected:          title,
		DirectlyConnected: direct,
		Albums:            make([]AlbumStyle, len(h.graph.Albums)),
		Groups:            make([]GroupStyle, len(h.graph.Groups)),
		Edges:             make([]EdgeStyle, len(h.graph.Edges)),
	}

	for i, n := range h.graph.Albums {
		s := AlbumStyle{Title: n.Label, Symbol: p.AlbumSymbol}
		switch {
		case n.Label == title:
			s.Color, s.Size, s.Level = p.AlbumHighlightColor, p.AlbumHighlightSize, LevelPrimary
		case inDirect[n.Label]:
			s.Color, s.Size, s.Level = p.AlbumHighlightConnectionColor, p.AlbumSize, LevelSecondary
		default:
			s.Color, s.Size, s.Level = p.AlbumLowlightColor, p.AlbumLowlightSize, LevelLowlight
		}
		state.Albums[i] = s
	}

	lit := make(map[string]bool)
	for i, n := range h.graph.Groups {
		s := GroupStyle{Name: n.Label, Symbol: p.GroupSymbol, Color: p.GroupColor, Size: p.GroupSize}
		if n.Group.HasAlbum(title) {
			lit[n.ID] = true
			s.Highlighted = true
			s.Size = p.GroupHighlightSize
			if h.kind == KindPersonnel {
				s.Color = p.RoleColor(n.Group.Role(title))
			} else {
				s.Color = p.AlbumHighlightColor
			}
		}
		state.Groups[i] = s
	}

	for i, e := range h.graph.Edges {
		albumTitle := h.graph.label(e.Album)
		s := EdgeStyle{Group: h.graph.label(e.Group), Album: albumTitle, Color: p.ConnectionLowlightColor, Width: p.EdgeWidth}
		if lit[e.Group] && (albumTitle == title || inDirect[albumTitle]) {
			s.Color = h.edgeColor(e)
			s.Width = p.EdgeHighlightWidth
		}
		state.Edges[i] = s
	}

	h.selected = title
	h.state = state
	return direct
}

// Deselect restores the default palette: albums coloured by release year,
// groups and edges in their neutral colours.
func (h *Highlighter) Deselect() {
	p := h.palette
	state := RenderState{
		Albums: make([]AlbumStyle, len(h.graph.Albums)),
		Groups: make([]GroupStyle, len(h.graph.Groups)),
		Edges:  make([]EdgeStyle, len(h.graph.Edges)),
	}
	for i, n := range h.graph.Albums {
		state.Albums[i] = AlbumStyle{
			Title:  n.Label,
			Color:  YearColor(n.Album.ReleaseYear, h.minYear, h.maxYear),
			Size:   p.AlbumSize,
			Symbol: p.AlbumSymbol,
			Level:  LevelDefault,
		}
	}
	for i, n := range h.graph.Groups {
		state.Groups[i] = GroupStyle{Name: n.Label, Color: p.GroupColor, Size: p.GroupSize, Symbol: p.GroupSymbol}
	}
	for i, e := range h.graph.Edges {
		state.Edges[i] = EdgeStyle{Group: h.graph.label(e.Group), Album: h.graph.label(e.Album), Color: p.ConnectionDefaultColor, Width: p.EdgeWidth}
	}

	h.selected = ""
	h.state = state
}

// edgeColor is the colour of a highlighted edge: its role colour in a
// personnel graph, the default connection colour in a genre graph.
func (h *Highlighter) edgeColor(e Edge) string {
	if h.kind == KindPersonnel {
		return h.palette.RoleColor(e.Role)
	}
	return h.palette.ConnectionDefaultColor
}
