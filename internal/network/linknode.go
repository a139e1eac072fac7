package network

import (
	"fmt"
	"sort"

	"github.com/albums1001/albums/internal/album"
)

// Kind selects which album attribute links albums together.
type Kind string

const (
	// KindPersonnel links albums through credited people, each with a role.
	KindPersonnel Kind = "personnel"
	// KindGenre links albums through genre tags. Genre links carry no role.
	KindGenre Kind = "genre"
)

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPersonnel, KindGenre:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid network kind %q: must be personnel or genre", s)
	}
}

// Attachment is one linking name on an album.
type Attachment struct {
	Name string
	Role album.Role // empty for genre links
}

// Extract returns the attachments of a single album for the given kind.
// Each name appears at most once.
func Extract(kind Kind, a *album.Album) []Attachment {
	switch kind {
	case KindGenre:
		seen := make(map[string]bool, len(a.Genres))
		out := make([]Attachment, 0, len(a.Genres))
		for _, g := range a.Genres {
			if g == "" || seen[g] {
				continue
			}
			seen[g] = true
			out = append(out, Attachment{Name: g})
		}
		return out
	default:
		names := a.PersonnelNames()
		out := make([]Attachment, 0, len(names))
		for _, n := range names {
			out = append(out, Attachment{Name: n, Role: a.PersonnelRole(n)})
		}
		return out
	}
}

// Link is one (album, role) pair owned by a LinkNode.
type Link struct {
	Album *album.Album
	Role  album.Role
}

// Title returns the linked album's title.
func (l Link) Title() string {
	return l.Album.Title
}

// LinkNode is a single contributor or genre and the albums it touches.
type LinkNode struct {
	Name  string
	Links []Link
}

// SortedLinks returns the node's links ordered by album title.
func (n *LinkNode) SortedLinks() []Link {
	links := make([]Link, len(n.Links))
	copy(links, n.Links)
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Album.Title < links[j].Album.Title
	})
	return links
}

// NumAlbums returns the number of distinct albums the node touches.
func (n *LinkNode) NumAlbums() int {
	seen := make(map[string]bool, len(n.Links))
	for _, l := range n.Links {
		seen[l.Album.Title] = true
	}
	return len(seen)
}

// Key returns the node's structural key.
func (n *LinkNode) Key() Key {
	links := n.SortedLinks()
	key := make(Key, len(links))
	for i, l := range links {
		key[i] = KeyPart{Title: l.Album.Title, Role: l.Role}
	}
	return key
}

// KeyPart is one (album title, role) tuple of a structural key.
type KeyPart struct {
	Title string
	Role  album.Role
}

// Key is the structural footprint of a LinkNode: its (title, role) pairs in
// title order. Two nodes with equal keys touch the same albums in the same roles.
type Key []KeyPart

// Compare orders keys lexicographically by (title, role) and then by length.
func (k Key) Compare(other Key) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		a, b := k[i], other[i]
		switch {
		case a.Title < b.Title:
			return -1
		case a.Title > b.Title:
			return 1
		case a.Role < b.Role:
			return -1
		case a.Role > b.Role:
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

// Equal reports whether two keys are identical.
func (k Key) Equal(other Key) bool {
	return k.Compare(other) == 0
}

// CollectLinkNodes builds the inverted index name -> links across all albums.
// Nodes are returned in first-seen order.
func CollectLinkNodes(albums []*album.Album, kind Kind) []*LinkNode {
	index := make(map[string]*LinkNode)
	var nodes []*LinkNode
	for _, a := range albums {
		for _, att := range Extract(kind, a) {
			node, ok := index[att.Name]
			if !ok {
				node = &LinkNode{Name: att.Name}
				index[att.Name] = node
				nodes = append(nodes, node)
			}
			node.Links = append(node.Links, Link{Album: a, Role: att.Role})
		}
	}
	return nodes
}
