package viz

import (
	"github.com/albums1001/albums/internal/network"
)

// PixelScale converts layout coordinates in [-1, 1] to screen pixels.
const PixelScale = 600

// shapes maps palette symbols to Cytoscape.js node shapes.
var shapes = map[string]string{
	"circle":  "ellipse",
	"diamond": "diamond",
	"square":  "rectangle",
}

// BuildGraphData constructs the visualization of a network in its current
// highlight state. Every element also carries its deselected style. Node
// positions come from the network's layout; the y axis is flipped so that up
// in the layout is up on screen.
func BuildGraphData(n *network.Network) *GraphData {
	g := n.Graph()
	state := n.State()
	defaults := n.DefaultState()

	data := &GraphData{
		Kind:     string(n.Kind()),
		Selected: state.Selected,
		Nodes:    make([]Node, 0, len(g.Albums)+len(g.Groups)),
		Edges:    make([]Edge, 0, len(g.Edges)),
	}

	for i, node := range g.Albums {
		v := newAlbumNode(g, node, state.Albums[i])
		v.DefaultColor, v.DefaultSize = defaults.Albums[i].Color, defaults.Albums[i].Size
		data.Nodes = append(data.Nodes, v)
	}
	for i, node := range g.Groups {
		v := newGroupNode(g, node, state.Groups[i])
		v.DefaultColor, v.DefaultSize = defaults.Groups[i].Color, defaults.Groups[i].Size
		data.Nodes = append(data.Nodes, v)
	}
	for i, e := range g.Edges {
		style := state.Edges[i]
		data.Edges = append(data.Edges, Edge{
			Source:       e.Group,
			Target:       e.Album,
			Role:         string(e.Role),
			Color:        style.Color,
			Width:        style.Width,
			DefaultColor: defaults.Edges[i].Color,
			DefaultWidth: defaults.Edges[i].Width,
		})
	}

	return data
}

// newAlbumNode creates a visualization node from an album node and its style.
func newAlbumNode(g *network.Graph, node *network.Node, style network.AlbumStyle) Node {
	return Node{
		ID:              node.ID,
		Type:            NodeTypeAlbum,
		Label:           node.Label,
		Hover:           g.AlbumLabel(node.ID),
		Color:           style.Color,
		Size:            style.Size,
		Shape:           shape(style.Symbol),
		Level:           string(style.Level),
		Active:          style.Level == network.LevelPrimary,
		Artist:          node.Album.Artist,
		Year:            node.Album.ReleaseYear,
		X:               node.Position.X * PixelScale,
		Y:               -node.Position.Y * PixelScale,
		ConnectionCount: g.Degree(node.ID),
	}
}

// newGroupNode creates a visualization node from a group node and its style.
func newGroupNode(g *network.Graph, node *network.Node, style network.GroupStyle) Node {
	return Node{
		ID:              node.ID,
		Type:            NodeTypeGroup,
		Label:           node.Label,
		Hover:           g.GroupLabel(node.ID),
		Color:           style.Color,
		Size:            style.Size,
		Shape:           shape(style.Symbol),
		Active:          style.Highlighted,
		X:               node.Position.X * PixelScale,
		Y:               -node.Position.Y * PixelScale,
		ConnectionCount: g.Degree(node.ID),
	}
}

func shape(symbol string) string {
	if s, ok := shapes[symbol]; ok {
		return s
	}
	return symbol
}
