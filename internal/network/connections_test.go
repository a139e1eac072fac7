package network

import (
	"math"
	"testing"

	"github.com/albums1001/albums/internal/album"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedTwiceAlbums links A and B through two different groups (X as
// musician, Y as producer) and B and C through one.
func sharedTwiceAlbums() []album.Album {
	return []album.Album{
		{Title: "A", Artist: "a", Personnel: album.Personnel{Musicians: []string{"X"}, Producers: []string{"Y"}}},
		{Title: "B", Artist: "b", Personnel: album.Personnel{Musicians: []string{"X", "Z"}, Producers: []string{"Y"}}},
		{Title: "C", Artist: "c", Personnel: album.Personnel{Musicians: []string{"Z"}}},
	}
}

func TestDeriveConnections_KeepsMultiplicity(t *testing.T) {
	n := newTestNetwork(t, KindPersonnel, sharedTwiceAlbums())
	conns := n.Connections()

	count := func(a, b string) int {
		total := 0
		for _, c := range conns {
			if c.Album == a && c.Connected == b {
				total += c.Count
			}
		}
		return total
	}
	assert.Equal(t, 2, count("A", "B"))
	assert.Equal(t, 1, count("B", "C"))
	assert.Zero(t, count("A", "C"))

	agg := AggregateConnections(conns)
	assert.Contains(t, agg, Connection{Album: "A", Connected: "B", Count: 2})
	assert.Contains(t, agg, Connection{Album: "B", Connected: "A", Count: 2})
	assert.Len(t, agg, 4)
}

func TestDeriveConnections_Symmetric(t *testing.T) {
	for name, albums := range map[string][]album.Album{
		"chain":        exampleAlbums(),
		"shared twice": sharedTwiceAlbums(),
	} {
		t.Run(name, func(t *testing.T) {
			n := newTestNetwork(t, KindPersonnel, albums)
			counts := make(map[[2]string]int)
			for _, c := range n.Connections() {
				counts[[2]string{c.Album, c.Connected}] += c.Count
			}
			for pair, c := range counts {
				assert.Equal(t, c, counts[[2]string{pair[1], pair[0]}], "pair %v", pair)
			}
		})
	}
}

func TestPartners(t *testing.T) {
	conns := []Connection{
		{Album: "B", Connected: "C", Count: 1},
		{Album: "B", Connected: "A", Count: 1},
		{Album: "B", Connected: "A", Count: 1},
		{Album: "A", Connected: "B", Count: 1},
	}
	assert.Equal(t, []string{"A", "C"}, Partners(conns, "B"))
	assert.Nil(t, Partners(conns, "Z"))
}

func TestPartnerSets(t *testing.T) {
	conns := []Connection{
		{Album: "B", Connected: "C", Count: 1},
		{Album: "B", Connected: "A", Count: 1},
		{Album: "B", Connected: "C", Count: 1},
		{Album: "A", Connected: "B", Count: 1},
	}
	sets := partnerSets(conns)
	assert.Equal(t, []string{"A", "C"}, sets["B"])
	assert.Equal(t, []string{"B"}, sets["A"])
	assert.Nil(t, sets["C"])
	assert.Equal(t, Partners(conns, "B"), sets["B"])
}

func TestTopAlbums(t *testing.T) {
	n := newTestNetwork(t, KindPersonnel, sharedTwiceAlbums())

	top := n.TopAlbums(DefaultTopN)
	require.Len(t, top, 3)
	assert.Equal(t, "B", top[0].Title)
	assert.Equal(t, 2, top[0].Connections, "distinct partners, not summed multiplicity")
	// A and C tie on one partner each and keep graph order.
	assert.Equal(t, "A", top[1].Title)
	assert.Equal(t, "C", top[2].Title)

	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Connections, top[i].Connections)
	}
	assert.Len(t, n.TopAlbums(2), 2)
	for _, r := range n.TopAlbums(2) {
		assert.NotNil(t, n.Graph().AlbumNode(r.Title))
	}
}

func TestTopGroups(t *testing.T) {
	albums := []album.Album{
		{Title: "A", Artist: "a", Genres: []string{"Pop", "Rock"}},
		{Title: "B", Artist: "b", Genres: []string{"Pop", "Rock", "Soul"}},
		{Title: "C", Artist: "c", Genres: []string{"Soul", "Rock"}},
	}
	n := newTestNetwork(t, KindGenre, albums)

	top := n.TopGroups(DefaultTopN)
	require.Len(t, top, 3)
	assert.Equal(t, "Rock", top[0].Name)
	assert.Equal(t, 3, top[0].Connections)
	assert.Len(t, top[0].Rows, 3)
	assert.Equal(t, "Pop", top[1].Name)
	assert.Equal(t, "Soul", top[2].Name)

	assert.Len(t, n.TopGroups(1), 1)
	assert.Len(t, TopGroups(nil, 5), 0)
}

func TestEadesLayout(t *testing.T) {
	nodes := []string{"A", "B", "C", "X", "Y"}
	edges := []EdgeRef{{"X", "A"}, {"X", "B"}, {"Y", "B"}, {"Y", "C"}}
	params := LayoutParams{K: 3, Iterations: 100, Seed: 7, Scale: 1}

	first := EadesLayout{}.Layout(nodes, edges, params)
	second := EadesLayout{}.Layout(nodes, edges, params)
	require.Len(t, first, len(nodes))
	assert.Equal(t, first, second, "same seed gives same layout")

	for id, p := range first {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "%s has NaN position", id)
		assert.LessOrEqual(t, math.Abs(p.X), 1+1e-9)
		assert.LessOrEqual(t, math.Abs(p.Y), 1+1e-9)
	}
}

func TestEadesLayout_Degenerate(t *testing.T) {
	assert.Empty(t, EadesLayout{}.Layout(nil, nil, DefaultLayoutParams()))

	one := EadesLayout{}.Layout([]string{"solo"}, nil, DefaultLayoutParams())
	assert.Equal(t, map[string]Position{"solo": {}}, one)

	still := EadesLayout{}.Layout([]string{"a", "b"}, nil, LayoutParams{Scale: 2})
	require.Len(t, still, 2)
	assert.InDelta(t, 2, still["a"].X, 1e-9)
	assert.InDelta(t, -2, still["b"].X, 1e-9)
}
