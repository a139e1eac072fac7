// Package importer provides functions to import albums from external formats.
package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/albums1001/albums/internal/album"
)

// FlexibleString can unmarshal from either string or number JSON values.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		*f = ""
		return nil
	}

	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	// Try number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// CatalogEntry is one record of a catalog export (album_data.json): a
// spreadsheet row written out as a JSON record.
type CatalogEntry struct {
	Key         int            `json:"key"` // zero-based row index
	Title       string         `json:"album_title"`
	Artist      string         `json:"artist"`
	ReleaseDate FlexibleString `json:"release_date"`
	TotalTimeS  FlexibleString `json:"total_time_s"`
	Genres      []string       `json:"genres"`
	Personnel   *struct {
		Musicians []string `json:"musicians"`
		Arrangers []string `json:"arrangers"`
		Writers   []string `json:"writers"`
		Producers []string `json:"producers"`
	} `json:"personnel"`
}

// PersonalEntry is one record of a listening progress export
// (personal_data.json), matched to a CatalogEntry by key.
type PersonalEntry struct {
	Key              int            `json:"key"`
	Listened         bool           `json:"listened"`
	PreviousListened bool           `json:"previous_listened"`
	Comments         FlexibleString `json:"comments"`
}

// ParseCatalog parses a catalog export and an optional progress export
// (nil to skip) and returns albums numbered key+1. Entries that fail to
// convert are reported and skipped.
func ParseCatalog(catalogData, personalData []byte) ([]album.Album, []error) {
	var entries []CatalogEntry
	if err := json.Unmarshal(catalogData, &entries); err != nil {
		return nil, []error{fmt.Errorf("parsing catalog JSON: %w", err)}
	}

	progress := make(map[int]PersonalEntry)
	if personalData != nil {
		var personal []PersonalEntry
		if err := json.Unmarshal(personalData, &personal); err != nil {
			return nil, []error{fmt.Errorf("parsing progress JSON: %w", err)}
		}
		for _, p := range personal {
			progress[p.Key] = p
		}
	}

	var albums []album.Album
	var errs []error

	for i, entry := range entries {
		a, err := catalogEntryToAlbum(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i+1, entry.Title, err))
			continue
		}
		if p, ok := progress[entry.Key]; ok {
			a.Listened = p.Listened
			a.PreviousListened = p.PreviousListened
			a.Comments = p.Comments.String()
		}
		albums = append(albums, a)
	}

	return albums, errs
}

// catalogEntryToAlbum converts a catalog entry to our Album type.
func catalogEntryToAlbum(entry CatalogEntry) (album.Album, error) {
	if entry.Title == "" {
		return album.Album{}, fmt.Errorf("missing required field 'album_title'")
	}
	if entry.Artist == "" {
		return album.Album{}, fmt.Errorf("missing required field 'artist'")
	}
	if entry.Key < 0 {
		return album.Album{}, fmt.Errorf("invalid key: %d", entry.Key)
	}

	year, err := parseReleaseYear(entry.ReleaseDate.String())
	if err != nil {
		return album.Album{}, err
	}

	a := album.Album{
		Number:      entry.Key + 1,
		Title:       strings.TrimSpace(entry.Title),
		Artist:      strings.TrimSpace(entry.Artist),
		ReleaseYear: year,
		Genres:      entry.Genres,
	}

	if s := entry.TotalTimeS.String(); s != "" {
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil || secs < 0 {
			return album.Album{}, fmt.Errorf("invalid total_time_s: %s", s)
		}
		a.TotalTimeS = int(secs)
	}

	if p := entry.Personnel; p != nil {
		a.Personnel = album.Personnel{
			Musicians: p.Musicians,
			Arrangers: p.Arrangers,
			Writers:   p.Writers,
			Producers: p.Producers,
		}
	}

	return a, nil
}

// parseReleaseYear accepts a bare year ("1959"), an ISO date
// ("1959-08-17" or "1959-08-17T00:00:00.000"), or epoch milliseconds as
// written by spreadsheet-to-JSON exports.
func parseReleaseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing required field 'release_date'")
	}

	if len(s) >= 10 && s[4] == '-' {
		t, err := time.Parse("2006-01-02", s[:10])
		if err != nil {
			return 0, fmt.Errorf("invalid release_date: %s", s)
		}
		return t.Year(), nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid release_date: %s", s)
	}
	if n >= 1000 && n <= 9999 {
		return int(n), nil
	}
	return time.UnixMilli(n).UTC().Year(), nil
}

// Merge folds imported albums into existing ones by title. Matching albums
// take the imported metadata and progress but keep existing personnel and
// genres when the import has none. New albums are appended in import order.
func Merge(existing, imported []album.Album) (merged []album.Album, added, updated int) {
	merged = make([]album.Album, len(existing), len(existing)+len(imported))
	copy(merged, existing)

	index := make(map[string]int, len(existing))
	for i, a := range merged {
		index[a.Title] = i
	}

	for _, a := range imported {
		i, ok := index[a.Title]
		if !ok {
			index[a.Title] = len(merged)
			merged = append(merged, a)
			added++
			continue
		}
		if !a.HasPersonnel() {
			a.Personnel = merged[i].Personnel
		}
		if len(a.Genres) == 0 {
			a.Genres = merged[i].Genres
		}
		merged[i] = a
		updated++
	}
	return merged, added, updated
}
