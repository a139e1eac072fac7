package album

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateForCreate(t *testing.T) {
	tests := []struct {
		name    string
		album   Album
		wantErr error
	}{
		{
			name:    "valid album",
			album:   Album{Title: "Blue", Artist: "Joni Mitchell", ReleaseYear: 1971},
			wantErr: nil,
		},
		{
			name:    "empty title",
			album:   Album{Artist: "Joni Mitchell"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "empty artist",
			album:   Album{Title: "Blue"},
			wantErr: ErrEmptyArtist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.album.ValidateForCreate()
			if err != tt.wantErr {
				t.Errorf("ValidateForCreate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateUniqueTitles(t *testing.T) {
	ok := []Album{{Title: "A"}, {Title: "B"}}
	if err := ValidateUniqueTitles(ok); err != nil {
		t.Errorf("ValidateUniqueTitles() unexpected error: %v", err)
	}

	dup := []Album{{Title: "A"}, {Title: "B"}, {Title: "A"}}
	err := ValidateUniqueTitles(dup)
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Errorf("ValidateUniqueTitles() = %v, want ErrDuplicateTitle", err)
	}
}

func TestPersonnelRole(t *testing.T) {
	a := Album{
		Title: "Pet Sounds",
		Personnel: Personnel{
			Musicians: []string{"Brian Wilson", "Carol Kaye"},
			Arrangers: []string{"Brian Wilson"},
			Writers:   []string{"Tony Asher", "Brian Wilson"},
			Producers: []string{"Brian Wilson", "Chuck Britz"},
		},
	}

	tests := []struct {
		name string
		want Role
	}{
		{"Brian Wilson", RoleMusician},
		{"Carol Kaye", RoleMusician},
		{"Tony Asher", RoleWriter},
		{"Chuck Britz", RoleProducer},
		{"Nobody", RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.PersonnelRole(tt.name); got != tt.want {
				t.Errorf("PersonnelRole(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestPersonnelRole_ArrangerBeforeWriter(t *testing.T) {
	a := Album{Personnel: Personnel{
		Writers:   []string{"X"},
		Arrangers: []string{"X"},
	}}
	if got := a.PersonnelRole("X"); got != RoleArranger {
		t.Errorf("PersonnelRole() = %q, want %q", got, RoleArranger)
	}
}

func TestPersonnelNames(t *testing.T) {
	a := Album{Personnel: Personnel{
		Musicians: []string{"A", "B"},
		Writers:   []string{"C", "A"},
		Producers: []string{"", "D"},
	}}

	got := a.PersonnelNames()
	want := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PersonnelNames() = %v, want %v", got, want)
	}
	if !a.HasPersonnel() {
		t.Error("HasPersonnel() = false, want true")
	}

	var empty Album
	if empty.HasPersonnel() {
		t.Error("HasPersonnel() on empty album = true, want false")
	}
}

func TestTotalTime(t *testing.T) {
	a := Album{TotalTimeS: 2*3600 + 15*60 + 42}
	if got := a.TotalTimeHours(); got != 2 {
		t.Errorf("TotalTimeHours() = %d, want 2", got)
	}
	if got := a.TotalTimeMinutes(); got != 15 {
		t.Errorf("TotalTimeMinutes() = %d, want 15", got)
	}
}
