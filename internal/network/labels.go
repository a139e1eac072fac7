package network

import "fmt"

// maxListedMembers is the largest group whose member names are listed in its label.
const maxListedMembers = 5

// AlbumLabel returns the hover text of an album node, one line per entry.
func (g *Graph) AlbumLabel(id string) []string {
	n := g.Node(id)
	if n == nil || n.Album == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("%s (%s)", n.Album.Title, n.Album.Artist),
		fmt.Sprintf("%d", n.Album.ReleaseYear),
		fmt.Sprintf("# of connections: %d", g.Degree(id)),
	}
}

// GroupLabel returns the hover text of a group node. Groups of up to five
// members list every member; each shared album follows, with its role in a
// personnel graph.
func (g *Graph) GroupLabel(id string) []string {
	n := g.Node(id)
	if n == nil || n.Group == nil {
		return nil
	}
	grp := n.Group

	head := grp.Name()
	if len(grp.Members) > 1 {
		head += fmt.Sprintf(" (%d people)", len(grp.Members))
	}
	lines := []string{head}
	if len(grp.Members) > 1 && len(grp.Members) <= maxListedMembers {
		lines = append(lines, grp.MemberNames()...)
	}
	for _, l := range grp.Links() {
		if l.Role != "" {
			lines = append(lines, fmt.Sprintf("%s: %s.", l.Album.Title, l.Role))
		} else {
			lines = append(lines, l.Album.Title+".")
		}
	}
	return lines
}
