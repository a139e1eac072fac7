package stats

import (
	"testing"

	"github.com/albums1001/albums/internal/album"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []album.Album {
	return []album.Album{
		{Number: 3, Title: "C", Artist: "x", ReleaseYear: 1970, TotalTimeS: 1800},
		{Number: 1, Title: "A", Artist: "x", ReleaseYear: 1960, Listened: true, TotalTimeS: 2400},
		{Number: 2, Title: "B", Artist: "y", ReleaseYear: 1960, Listened: true, PreviousListened: true, TotalTimeS: 3000},
		{Number: 4, Title: "D", Artist: "z", ReleaseYear: 1970, PreviousListened: true, TotalTimeS: 600},
		{Number: 5, Title: "E", Artist: "w", ReleaseYear: 1980},
	}
}

func TestTotalByYear(t *testing.T) {
	assert.Equal(t, []YearCount{{1960, 2}, {1970, 2}, {1980, 1}}, TotalByYear(catalog()))
	assert.Empty(t, TotalByYear(nil))
}

func TestListenedByYear(t *testing.T) {
	assert.Equal(t, []YearCount{{1960, 2}, {1970, 0}, {1980, 0}}, ListenedByYear(catalog()))
}

func TestListenedTimeByYear(t *testing.T) {
	assert.Equal(t, []YearTime{{1960, 5400}}, ListenedTimeByYear(catalog()))
}

func TestStatusByYear(t *testing.T) {
	assert.Equal(t, []YearStatus{
		{Year: 1960, Listened: 1, Previous: 1},
		{Year: 1970, Unlistened: 1, Previous: 1},
		{Year: 1980, Unlistened: 1},
	}, StatusByYear(catalog()))
}

func TestArtistsHeard(t *testing.T) {
	assert.Equal(t, map[string]int{
		ArtistNotStarted: 1, // w
		ArtistInProgress: 1, // x
		ArtistFinished:   2, // y, z
	}, ArtistsHeard(catalog()))
}

func TestNextAlbum(t *testing.T) {
	next := NextAlbum(catalog())
	require.NotNil(t, next)
	assert.Equal(t, "C", next.Title)

	assert.Nil(t, NextAlbum([]album.Album{{Number: 1, Listened: true}}))
	assert.Nil(t, NextAlbum(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize(catalog())

	assert.Equal(t, CatalogSize, s.Catalog)
	assert.Equal(t, 5, s.Albums)
	assert.Equal(t, 2, s.Previous)
	assert.Equal(t, 1, s.New)
	assert.Equal(t, 3, s.Heard)
	assert.Equal(t, 3600, s.PreviousSeconds)
	assert.Equal(t, 2400, s.NewSeconds)
	assert.Equal(t, 6000, s.HeardSeconds)
	require.NotNil(t, s.Next)
	assert.Equal(t, 3, s.Next.Number)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{59, "0m"},
		{2757, "45m"},
		{3600, "1h 0m"},
		{90061, "1d 1h 1m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.secs), "FormatDuration(%d)", tt.secs)
	}
}
