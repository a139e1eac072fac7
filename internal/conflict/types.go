// Package conflict resolves git merge conflicts in albums.jsonl using what
// is known about albums: titles identify them and listening progress only
// moves forward.
package conflict

import (
	"fmt"

	"github.com/albums1001/albums/internal/album"
)

// Region is one git conflict region in a JSONL file.
type Region struct {
	StartLine int // line of the <<<<<<< marker, 1-indexed
	EndLine   int // line of the >>>>>>> marker

	Ours   []album.Album // HEAD side
	Theirs []album.Album

	OursRaw   string
	TheirsRaw string
}

// Match is an album present on both sides of a region.
type Match struct {
	Ours      album.Album
	Theirs    album.Album
	MatchedBy string // "title" or "number"
}

// FieldConflict is a field the two sides disagree on. Values are kept in
// full; callers truncate for display.
type FieldConflict struct {
	Field  string `json:"field"`
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
}

// Action says how a matched pair is resolved.
type Action string

const (
	ActionSame      Action = "same"       // both sides identical
	ActionMerge     Action = "merge"      // fields combined without disagreement
	ActionConflict  Action = "conflict"   // fields disagree; a side must be preferred
	ActionAddOurs   Action = "add_ours"   // album only in ours
	ActionAddTheirs Action = "add_theirs" // album only in theirs
)

// Plan describes the resolution of one album.
type Plan struct {
	Title     string          `json:"title"`
	Action    Action          `json:"action"`
	Conflicts []FieldConflict `json:"conflicts,omitempty"`
}

// ParseError is an error in conflict markers or JSONL content.
type ParseError struct {
	Line    int
	Message string
	Context string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult is a parsed, possibly conflicted, file.
type ParseResult struct {
	CleanLines []CleanLine
	Regions    []Region
}

// CleanLine is a line outside any conflict region.
type CleanLine struct {
	LineNum int
	Content string
}

// MatchResult pairs up the albums of one region.
type MatchResult struct {
	Matches    []Match
	OursOnly   []album.Album
	TheirsOnly []album.Album
}
