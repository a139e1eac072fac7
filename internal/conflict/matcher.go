package conflict

import "github.com/albums1001/albums/internal/album"

// MatchAlbums pairs the albums of a region by title, then by catalog number
// for albums whose title was edited on one side.
func MatchAlbums(region Region) MatchResult {
	var result MatchResult

	oursByTitle := make(map[string]int, len(region.Ours))
	oursByNumber := make(map[int]int, len(region.Ours))
	for i, a := range region.Ours {
		oursByTitle[a.Title] = i
		if a.Number > 0 {
			oursByNumber[a.Number] = i
		}
	}

	oursMatched := make(map[int]bool)
	theirsMatched := make(map[int]bool)

	pair := func(oi, ti int, by string) {
		result.Matches = append(result.Matches, Match{
			Ours:      region.Ours[oi],
			Theirs:    region.Theirs[ti],
			MatchedBy: by,
		})
		oursMatched[oi] = true
		theirsMatched[ti] = true
	}

	for ti, a := range region.Theirs {
		if oi, ok := oursByTitle[a.Title]; ok && !oursMatched[oi] {
			pair(oi, ti, "title")
		}
	}
	for ti, a := range region.Theirs {
		if theirsMatched[ti] || a.Number <= 0 {
			continue
		}
		if oi, ok := oursByNumber[a.Number]; ok && !oursMatched[oi] {
			pair(oi, ti, "number")
		}
	}

	result.OursOnly = unmatched(region.Ours, oursMatched)
	result.TheirsOnly = unmatched(region.Theirs, theirsMatched)
	return result
}

func unmatched(albums []album.Album, matched map[int]bool) []album.Album {
	var out []album.Album
	for i, a := range albums {
		if !matched[i] {
			out = append(out, a)
		}
	}
	return out
}
