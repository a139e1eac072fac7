package network

import (
	"github.com/albums1001/albums/internal/album"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds every colour, size and symbol the highlight engine assigns.
type Palette struct {
	AlbumSymbol                   string
	AlbumSize                     float64
	AlbumHighlightColor           string
	AlbumHighlightSize            float64
	AlbumHighlightConnectionColor string
	AlbumLowlightColor            string
	AlbumLowlightSize             float64

	GroupSymbol        string
	GroupColor         string
	GroupSize          float64
	GroupHighlightSize float64

	RoleColors              map[album.Role]string
	ConnectionDefaultColor  string
	ConnectionLowlightColor string
	EdgeWidth               float64
	EdgeHighlightWidth      float64
}

// DefaultPalette returns the stock colours and sizes.
func DefaultPalette() Palette {
	return Palette{
		AlbumSymbol:                   "circle",
		AlbumSize:                     10,
		AlbumHighlightColor:           "#ff0000",
		AlbumHighlightSize:            20,
		AlbumHighlightConnectionColor: "#ffa500",
		AlbumLowlightColor:            "#d3d3d3",
		AlbumLowlightSize:             6,

		GroupSymbol:        "diamond",
		GroupColor:         "#808080",
		GroupSize:          5,
		GroupHighlightSize: 12,

		RoleColors: map[album.Role]string{
			album.RoleMusician: "#1f77b4",
			album.RoleProducer: "#2ca02c",
			album.RoleArranger: "#9467bd",
			album.RoleWriter:   "#ff7f0e",
			album.RoleUnknown:  "#7f7f7f",
		},
		ConnectionDefaultColor:  "#888888",
		ConnectionLowlightColor: "#808080",
		EdgeWidth:               1,
		EdgeHighlightWidth:      2,
	}
}

// RoleColor returns the colour for role, falling back to the default
// connection colour for roles without an entry.
func (p Palette) RoleColor(role album.Role) string {
	if c, ok := p.RoleColors[role]; ok && c != "" {
		return c
	}
	return p.ConnectionDefaultColor
}

// yearScale is a red-to-blue diverging scale: early years are red, late
// years blue.
var yearScale = []colorful.Color{
	{R: 178 / 255.0, G: 10 / 255.0, B: 28 / 255.0},
	{R: 230 / 255.0, G: 145 / 255.0, B: 90 / 255.0},
	{R: 220 / 255.0, G: 170 / 255.0, B: 132 / 255.0},
	{R: 190 / 255.0, G: 190 / 255.0, B: 190 / 255.0},
	{R: 106 / 255.0, G: 137 / 255.0, B: 247 / 255.0},
	{R: 5 / 255.0, G: 10 / 255.0, B: 172 / 255.0},
}

// yearStops are the scale positions of yearScale's colours.
var yearStops = []float64{0, 0.3, 0.4, 0.5, 0.65, 1}

// YearColor maps year onto the release-year scale spanning [minYear, maxYear].
func YearColor(year, minYear, maxYear int) string {
	if maxYear <= minYear {
		return yearScale[len(yearScale)/2].Hex()
	}
	t := float64(year-minYear) / float64(maxYear-minYear)
	switch {
	case t <= 0:
		return yearScale[0].Hex()
	case t >= 1:
		return yearScale[len(yearScale)-1].Hex()
	}
	for i := 1; i < len(yearStops); i++ {
		if t <= yearStops[i] {
			span := yearStops[i] - yearStops[i-1]
			return yearScale[i-1].BlendLab(yearScale[i], (t-yearStops[i-1])/span).Clamped().Hex()
		}
	}
	return yearScale[len(yearScale)-1].Hex()
}
