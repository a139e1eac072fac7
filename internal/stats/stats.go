// Package stats computes listening progress figures over an album catalog.
package stats

import (
	"fmt"
	"sort"

	"github.com/albums1001/albums/internal/album"
)

// CatalogSize is the number of albums in the full catalog.
const CatalogSize = 1001

// Listening status labels.
const (
	StatusUnlistened = "Unlistened"
	StatusListened   = "Listened"
	StatusPrevious   = "Previously Heard"
)

// Artist progress labels.
const (
	ArtistNotStarted = "Not Started"
	ArtistInProgress = "In Progress"
	ArtistFinished   = "Finished"
)

// YearCount is a count for one release year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// YearTime is a listening time for one release year.
type YearTime struct {
	Year    int `json:"year"`
	Seconds int `json:"seconds"`
}

// YearStatus breaks one release year down by listening status.
type YearStatus struct {
	Year       int `json:"year"`
	Unlistened int `json:"unlistened"`
	Listened   int `json:"listened"`
	Previous   int `json:"previously_heard"`
}

// Summary is the overview shown on the front page.
type Summary struct {
	Catalog         int          `json:"catalog"`
	Albums          int          `json:"albums"`
	Previous        int          `json:"previously_listened"`
	New             int          `json:"newly_listened"`
	Heard           int          `json:"heard"`
	PreviousSeconds int          `json:"previous_seconds"`
	NewSeconds      int          `json:"new_seconds"`
	HeardSeconds    int          `json:"heard_seconds"`
	Next            *album.Album `json:"next,omitempty"`
}

// heardBefore reports whether a was heard before the current run through
// the catalog.
func heardBefore(a *album.Album) bool {
	return a.PreviousListened
}

// heardNew reports whether a was heard for the first time in this run.
func heardNew(a *album.Album) bool {
	return a.Listened && !a.PreviousListened
}

// TotalByYear counts albums per release year, ordered by year.
func TotalByYear(albums []album.Album) []YearCount {
	counts := make(map[int]int)
	for _, a := range albums {
		counts[a.ReleaseYear]++
	}
	return sortedCounts(counts)
}

// ListenedByYear counts listened albums per release year. Every year present
// in the catalog appears, with zero if nothing from it was listened to.
func ListenedByYear(albums []album.Album) []YearCount {
	counts := make(map[int]int)
	for _, a := range albums {
		if _, ok := counts[a.ReleaseYear]; !ok {
			counts[a.ReleaseYear] = 0
		}
		if a.Listened {
			counts[a.ReleaseYear]++
		}
	}
	return sortedCounts(counts)
}

// ListenedTimeByYear sums the running time of listened albums per release
// year. Years with nothing listened are omitted.
func ListenedTimeByYear(albums []album.Album) []YearTime {
	secs := make(map[int]int)
	for _, a := range albums {
		if a.Listened {
			secs[a.ReleaseYear] += a.TotalTimeS
		}
	}

	out := make([]YearTime, 0, len(secs))
	for year, s := range secs {
		out = append(out, YearTime{Year: year, Seconds: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// StatusByYear breaks each release year down by listening status. An album
// heard previously counts as previously heard even if listened again.
func StatusByYear(albums []album.Album) []YearStatus {
	byYear := make(map[int]*YearStatus)
	for i := range albums {
		a := &albums[i]
		s, ok := byYear[a.ReleaseYear]
		if !ok {
			s = &YearStatus{Year: a.ReleaseYear}
			byYear[a.ReleaseYear] = s
		}
		switch {
		case heardBefore(a):
			s.Previous++
		case a.Listened:
			s.Listened++
		default:
			s.Unlistened++
		}
	}

	out := make([]YearStatus, 0, len(byYear))
	for _, s := range byYear {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ArtistsHeard counts artists by how much of their catalog has been heard.
func ArtistsHeard(albums []album.Album) map[string]int {
	type progress struct{ heard, total int }
	byArtist := make(map[string]*progress)
	for i := range albums {
		a := &albums[i]
		p, ok := byArtist[a.Artist]
		if !ok {
			p = &progress{}
			byArtist[a.Artist] = p
		}
		p.total++
		if a.Listened || a.PreviousListened {
			p.heard++
		}
	}

	out := map[string]int{ArtistNotStarted: 0, ArtistInProgress: 0, ArtistFinished: 0}
	for _, p := range byArtist {
		switch {
		case p.heard == 0:
			out[ArtistNotStarted]++
		case p.heard == p.total:
			out[ArtistFinished]++
		default:
			out[ArtistInProgress]++
		}
	}
	return out
}

// NextAlbum returns the lowest-numbered album not yet listened to, or nil
// when everything has been heard.
func NextAlbum(albums []album.Album) *album.Album {
	var next *album.Album
	for i := range albums {
		a := &albums[i]
		if a.Listened {
			continue
		}
		if next == nil || a.Number < next.Number {
			next = a
		}
	}
	return next
}

// Summarize computes the overview figures.
func Summarize(albums []album.Album) Summary {
	s := Summary{Catalog: CatalogSize, Albums: len(albums)}
	for i := range albums {
		a := &albums[i]
		switch {
		case heardBefore(a):
			s.Previous++
			s.PreviousSeconds += a.TotalTimeS
		case heardNew(a):
			s.New++
			s.NewSeconds += a.TotalTimeS
		}
	}
	s.Heard = s.Previous + s.New
	s.HeardSeconds = s.PreviousSeconds + s.NewSeconds
	s.Next = NextAlbum(albums)
	return s
}

// FormatDuration renders seconds as days, hours and minutes, dropping
// leading zero units.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func sortedCounts(counts map[int]int) []YearCount {
	out := make([]YearCount, 0, len(counts))
	for year, c := range counts {
		out = append(out, YearCount{Year: year, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
