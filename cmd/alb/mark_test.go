package main

import (
	"testing"

	"github.com/albums1001/albums/internal/album"
)

func TestFindAlbum(t *testing.T) {
	albums := []album.Album{
		{Number: 1, Title: "Kind of Blue", Artist: "Miles Davis"},
		{Number: 2, Title: "1999", Artist: "Prince"},
		{Number: 1999, Title: "Thriller", Artist: "Michael Jackson"},
	}

	tests := []struct {
		ref     string
		wantIdx int
		found   bool
	}{
		{"Kind of Blue", 0, true},
		{"1", 0, true},
		{"1999", 1, true}, // title wins over number
		{"2", 1, true},
		{"Bad", -1, false},
		{"42", -1, false},
	}

	for _, tt := range tests {
		idx, found := findAlbum(albums, tt.ref)
		if found != tt.found || idx != tt.wantIdx {
			t.Errorf("findAlbum(%q) = (%d, %v), want (%d, %v)", tt.ref, idx, found, tt.wantIdx, tt.found)
		}
	}
}

func TestApplyMark(t *testing.T) {
	tests := []struct {
		name                 string
		start                album.Album
		previous, unlistened bool
		wantListened         bool
		wantPrevious         bool
	}{
		{"listen", album.Album{}, false, false, true, false},
		{"previous", album.Album{}, true, false, true, true},
		{"unlisten", album.Album{Listened: true, PreviousListened: true}, false, true, false, false},
		{"listen keeps previous", album.Album{Listened: true, PreviousListened: true}, false, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.start
			applyMark(&a, tt.previous, tt.unlistened)
			if a.Listened != tt.wantListened || a.PreviousListened != tt.wantPrevious {
				t.Errorf("got listened=%v previous=%v, want %v %v", a.Listened, a.PreviousListened, tt.wantListened, tt.wantPrevious)
			}
		})
	}
}
