// Package viz renders album relationship graphs as interactive HTML.
package viz

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Kind     string `json:"kind"`               // "personnel" or "genre"
	Selected string `json:"selected,omitempty"` // Selected album title, if any
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// Node represents an album or a group in the graph.
type Node struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "album" or "group"

	// Display
	Label  string   `json:"label"`
	Hover  []string `json:"hover"` // Tooltip lines
	Color  string   `json:"color"`
	Size   float64  `json:"size"`
	Shape  string   `json:"shape"`
	Level  string   `json:"level,omitempty"` // Album highlight level
	Active bool     `json:"active,omitempty"`

	// Deselected style, restored when the selection is cleared
	DefaultColor string  `json:"defaultColor"`
	DefaultSize  float64 `json:"defaultSize"`

	// Album-specific fields
	Artist string `json:"artist,omitempty"`
	Year   int    `json:"year,omitempty"`

	// Layout position in pixels
	X float64 `json:"-"`
	Y float64 `json:"-"`

	ConnectionCount int `json:"connectionCount"`
}

// Edge represents a group-album attachment.
type Edge struct {
	Source string  `json:"source"` // Group node ID
	Target string  `json:"target"` // Album node ID
	Role   string  `json:"role,omitempty"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`

	DefaultColor string  `json:"defaultColor"`
	DefaultWidth float64 `json:"defaultWidth"`
}

// Node types.
const (
	NodeTypeAlbum = "album"
	NodeTypeGroup = "group"
)

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
