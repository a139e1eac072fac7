package conflict

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/albums1001/albums/internal/album"
)

// Side picks which side wins a field conflict.
type Side string

const (
	SideOurs   Side = "ours"
	SideTheirs Side = "theirs"
)

// Resolve plans the resolution of a matched pair.
func Resolve(m Match) Plan {
	plan := Plan{Title: m.Ours.Title}
	if reflect.DeepEqual(m.Ours, m.Theirs) {
		plan.Action = ActionSame
		return plan
	}

	_, conflicts := Merge(m.Ours, m.Theirs, SideOurs)
	if len(conflicts) > 0 {
		plan.Action = ActionConflict
		plan.Conflicts = conflicts
		return plan
	}
	plan.Action = ActionMerge
	return plan
}

// Merge combines two versions of an album. Listening progress is OR-ed,
// since an album once heard stays heard. Personnel and genres are unioned.
// Other fields take whichever side is set; when both are set and differ the
// field is reported and prefer decides.
func Merge(ours, theirs album.Album, prefer Side) (album.Album, []FieldConflict) {
	var conflicts []FieldConflict
	pick := func(field, o, t string) string {
		switch {
		case o == t || t == "":
			return o
		case o == "":
			return t
		}
		conflicts = append(conflicts, FieldConflict{Field: field, Ours: o, Theirs: t})
		if prefer == SideTheirs {
			return t
		}
		return o
	}
	pickInt := func(field string, o, t int) int {
		v := pick(field, intString(o), intString(t))
		n, _ := strconv.Atoi(v)
		return n
	}

	merged := album.Album{
		Title:            pick("title", ours.Title, theirs.Title),
		Artist:           pick("artist", ours.Artist, theirs.Artist),
		Number:           pickInt("number", ours.Number, theirs.Number),
		ReleaseYear:      pickInt("release_year", ours.ReleaseYear, theirs.ReleaseYear),
		TotalTimeS:       pickInt("total_time_s", ours.TotalTimeS, theirs.TotalTimeS),
		Comments:         pick("comments", ours.Comments, theirs.Comments),
		Listened:         ours.Listened || theirs.Listened,
		PreviousListened: ours.PreviousListened || theirs.PreviousListened,
		Personnel: album.Personnel{
			Musicians: union(ours.Personnel.Musicians, theirs.Personnel.Musicians),
			Arrangers: union(ours.Personnel.Arrangers, theirs.Personnel.Arrangers),
			Writers:   union(ours.Personnel.Writers, theirs.Personnel.Writers),
			Producers: union(ours.Personnel.Producers, theirs.Personnel.Producers),
		},
		Genres: union(ours.Genres, theirs.Genres),
	}
	return merged, conflicts
}

// ResolveRegion resolves every album in a region. Albums on one side only
// are kept. Matched albums are merged in ours order, then albums only in
// theirs follow.
func ResolveRegion(region Region, prefer Side) ([]album.Album, []Plan) {
	match := MatchAlbums(region)

	var albums []album.Album
	var plans []Plan

	merged := make(map[string]album.Album, len(match.Matches))
	for _, m := range match.Matches {
		plans = append(plans, Resolve(m))
		a, _ := Merge(m.Ours, m.Theirs, prefer)
		merged[m.Ours.Title] = a
	}

	for _, a := range region.Ours {
		if m, ok := merged[a.Title]; ok {
			albums = append(albums, m)
			continue
		}
		albums = append(albums, a)
		plans = append(plans, Plan{Title: a.Title, Action: ActionAddOurs})
	}
	for _, a := range match.TheirsOnly {
		albums = append(albums, a)
		plans = append(plans, Plan{Title: a.Title, Action: ActionAddTheirs})
	}
	return albums, plans
}

// HasConflict reports whether any plan needs a side preference.
func HasConflict(plans []Plan) bool {
	for _, p := range plans {
		if p.Action == ActionConflict {
			return true
		}
	}
	return false
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// union returns the distinct values of a then b, keeping first-seen order.
// Names differing only in surrounding space are the same.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			key := strings.TrimSpace(s)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}
