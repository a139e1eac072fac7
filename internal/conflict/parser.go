package conflict

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/storage"
)

type parserState int

const (
	stateNormal parserState = iota
	stateInOurs
	stateInTheirs
)

const (
	oursMarker      = "<<<<<<<"
	separatorMarker = "======="
	theirsMarker    = ">>>>>>>"
)

// Parse reads a possibly conflicted JSONL file into clean lines and
// conflict regions. Both sides of every region are decoded as albums.
func Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, storage.MaxJSONLLineCapacity)
	scanner.Buffer(buf, storage.MaxJSONLLineCapacity)

	result := &ParseResult{}
	state := stateNormal
	lineNum := 0
	var region Region
	var ours, theirs []string

	fail := func(msg, line string) (*ParseResult, error) {
		return nil, ParseError{Line: lineNum, Message: msg, Context: truncate(line, 50)}
	}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, oursMarker):
			if state != stateNormal {
				return fail("nested conflict markers not allowed", line)
			}
			region = Region{StartLine: lineNum}
			ours, theirs = nil, nil
			state = stateInOurs

		case strings.HasPrefix(line, separatorMarker):
			switch state {
			case stateNormal:
				return fail("unexpected separator marker outside conflict region", line)
			case stateInTheirs:
				return fail("duplicate separator marker in conflict region", line)
			}
			state = stateInTheirs

		case strings.HasPrefix(line, theirsMarker):
			switch state {
			case stateNormal:
				return fail("unexpected end marker outside conflict region", line)
			case stateInOurs:
				return fail("unexpected end marker before separator", line)
			}
			region.EndLine = lineNum
			region.OursRaw = strings.Join(ours, "\n")
			region.TheirsRaw = strings.Join(theirs, "\n")

			var err error
			if region.Ours, err = decodeAlbums(ours, region.StartLine+1); err != nil {
				return nil, err
			}
			if region.Theirs, err = decodeAlbums(theirs, region.StartLine+len(ours)+2); err != nil {
				return nil, err
			}
			result.Regions = append(result.Regions, region)
			state = stateNormal

		default:
			switch state {
			case stateInOurs:
				ours = append(ours, line)
			case stateInTheirs:
				theirs = append(theirs, line)
			default:
				result.CleanLines = append(result.CleanLines, CleanLine{LineNum: lineNum, Content: line})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if state != stateNormal {
		return nil, ParseError{Line: lineNum, Message: "unterminated conflict region at end of file"}
	}
	return result, nil
}

// ParseString parses from a string.
func ParseString(content string) (*ParseResult, error) {
	return Parse(strings.NewReader(content))
}

// HasConflicts reports whether any conflict region was found.
func (r *ParseResult) HasConflicts() bool {
	return len(r.Regions) > 0
}

// Assemble rebuilds the album list in file order, putting resolved[i] in
// place of region i.
func (r *ParseResult) Assemble(resolved [][]album.Album) ([]album.Album, error) {
	if len(resolved) != len(r.Regions) {
		return nil, ParseError{Message: "resolved regions do not match conflict regions"}
	}

	var out []album.Album
	clean := r.CleanLines
	emitCleanBefore := func(limit int) error {
		for len(clean) > 0 && clean[0].LineNum < limit {
			albums, err := decodeAlbums([]string{clean[0].Content}, clean[0].LineNum)
			if err != nil {
				return err
			}
			out = append(out, albums...)
			clean = clean[1:]
		}
		return nil
	}

	for i, region := range r.Regions {
		if err := emitCleanBefore(region.StartLine); err != nil {
			return nil, err
		}
		out = append(out, resolved[i]...)
	}
	if err := emitCleanBefore(int(^uint(0) >> 1)); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeAlbums decodes non-blank JSONL lines; firstLine numbers lines[0].
func decodeAlbums(lines []string, firstLine int) ([]album.Album, error) {
	var albums []album.Album
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var a album.Album
		if err := json.Unmarshal([]byte(line), &a); err != nil {
			return nil, ParseError{
				Line:    firstLine + i,
				Message: "invalid JSON: " + err.Error(),
				Context: truncate(line, 50),
			}
		}
		albums = append(albums, a)
	}
	return albums, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
