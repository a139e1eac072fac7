// Package album defines the core domain types for catalog albums.
package album

import (
	"errors"
	"fmt"
)

// Album represents one entry in the 1001-album catalog together with the
// listener's personal progress.
type Album struct {
	// Identity
	Number int    `json:"number"` // Position in the catalog (1-1001)
	Title  string `json:"title"`  // Unique; used as the graph identity

	// Metadata
	Artist      string    `json:"artist"`
	ReleaseYear int       `json:"release_year"`
	Personnel   Personnel `json:"personnel"`
	Genres      []string  `json:"genres,omitempty"`

	// Personal progress
	Listened         bool   `json:"listened"`
	PreviousListened bool   `json:"previous_listened"`
	Comments         string `json:"comments,omitempty"`
	TotalTimeS       int    `json:"total_time_s,omitempty"` // 0 if unknown
}

// Personnel lists the people credited on an album, grouped by role.
type Personnel struct {
	Musicians []string `json:"musicians,omitempty"`
	Arrangers []string `json:"arrangers,omitempty"`
	Writers   []string `json:"writers,omitempty"`
	Producers []string `json:"producers,omitempty"`
}

// Role classifies a person's relationship to an album.
type Role string

// Known roles. RoleUnknown is reported for names missing from every list.
const (
	RoleMusician Role = "musician"
	RoleArranger Role = "arranger"
	RoleWriter   Role = "writer"
	RoleProducer Role = "producer"
	RoleUnknown  Role = "unknown"
)

// Roles lists the roles in classification precedence order, followed by RoleUnknown.
var Roles = []Role{RoleMusician, RoleArranger, RoleWriter, RoleProducer, RoleUnknown}

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title is required")
	ErrEmptyArtist    = errors.New("artist is required")
	ErrDuplicateTitle = errors.New("album with this title already exists")
	ErrAlbumNotFound  = errors.New("album not found")
)

// ValidateForCreate validates an album for creation.
func (a *Album) ValidateForCreate() error {
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if a.Artist == "" {
		return ErrEmptyArtist
	}
	return nil
}

// ValidateUniqueTitles returns ErrDuplicateTitle (wrapped with the offending
// title) if two albums share a title.
func ValidateUniqueTitles(albums []Album) error {
	seen := make(map[string]bool, len(albums))
	for _, a := range albums {
		if seen[a.Title] {
			return fmt.Errorf("%w: %q", ErrDuplicateTitle, a.Title)
		}
		seen[a.Title] = true
	}
	return nil
}

// byRole returns the personnel lists in precedence order.
func (p Personnel) byRole() []struct {
	role  Role
	names []string
} {
	return []struct {
		role  Role
		names []string
	}{
		{RoleMusician, p.Musicians},
		{RoleArranger, p.Arrangers},
		{RoleWriter, p.Writers},
		{RoleProducer, p.Producers},
	}
}

// PersonnelRole returns the role of name on this album. A name that appears in
// several lists takes the first role in precedence order (musician, arranger,
// writer, producer). Names on no list are RoleUnknown.
func (a *Album) PersonnelRole(name string) Role {
	for _, list := range a.Personnel.byRole() {
		for _, n := range list.names {
			if n == name {
				return list.role
			}
		}
	}
	return RoleUnknown
}

// PersonnelNames returns every credited name once, in precedence-list order.
func (a *Album) PersonnelNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range a.Personnel.byRole() {
		for _, n := range list.names {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// HasPersonnel reports whether any person is credited on the album.
func (a *Album) HasPersonnel() bool {
	return len(a.PersonnelNames()) > 0
}

// TotalTimeHours returns the whole hours of the album's running time.
func (a *Album) TotalTimeHours() int {
	return a.TotalTimeS / 3600
}

// TotalTimeMinutes returns the minutes past TotalTimeHours.
func (a *Album) TotalTimeMinutes() int {
	return a.TotalTimeS/60 - 60*a.TotalTimeHours()
}
