package importer

import (
	"encoding/json"
	"testing"

	"github.com/albums1001/albums/internal/album"
)

func TestFlexibleString_String(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string year", `"1959"`, "1959"},
		{"number year", `1959`, "1959"},
		{"null value", `null`, ""},
		{"float number", `2460.0`, "2460.0"},
		{"epoch millis", `-327456000000`, "-327456000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if got := f.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexibleString_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[1,2,3]`},
		{"object", `{"key": "value"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleString
			if err := json.Unmarshal([]byte(tt.input), &f); err == nil {
				t.Errorf("UnmarshalJSON() expected error for input %s", tt.input)
			}
		})
	}
}

func TestParseCatalog_ValidEntries(t *testing.T) {
	catalog := []byte(`[
		{"key": 0, "album_title": "Kind of Blue", "artist": "Miles Davis", "release_date": -327456000000, "total_time_s": 2760.0,
		 "personnel": {"musicians": ["Miles Davis", "John Coltrane"], "producers": ["Teo Macero"]}, "genres": ["Jazz"]},
		{"key": 1, "album_title": "Thriller", "artist": "Michael Jackson", "release_date": "1982-11-30", "total_time_s": null}
	]`)
	personal := []byte(`[
		{"key": 0, "listened": true, "previous_listened": true, "comments": null},
		{"key": 1, "listened": true, "previous_listened": false, "comments": "Still great"}
	]`)

	albums, errs := ParseCatalog(catalog, personal)
	if len(errs) > 0 {
		t.Fatalf("ParseCatalog() returned errors: %v", errs)
	}
	if len(albums) != 2 {
		t.Fatalf("ParseCatalog() returned %d albums, want 2", len(albums))
	}

	kob := albums[0]
	if kob.Number != 1 {
		t.Errorf("Number = %d, want 1", kob.Number)
	}
	if kob.ReleaseYear != 1959 {
		t.Errorf("ReleaseYear = %d, want 1959", kob.ReleaseYear)
	}
	if kob.TotalTimeS != 2760 {
		t.Errorf("TotalTimeS = %d, want 2760", kob.TotalTimeS)
	}
	if kob.PersonnelRole("Teo Macero") != album.RoleProducer {
		t.Errorf("Teo Macero role = %v, want producer", kob.PersonnelRole("Teo Macero"))
	}
	if len(kob.Genres) != 1 || kob.Genres[0] != "Jazz" {
		t.Errorf("Genres = %v, want [Jazz]", kob.Genres)
	}
	if !kob.Listened || !kob.PreviousListened || kob.Comments != "" {
		t.Errorf("progress = %v/%v/%q, want true/true/empty", kob.Listened, kob.PreviousListened, kob.Comments)
	}

	thriller := albums[1]
	if thriller.Number != 2 || thriller.ReleaseYear != 1982 {
		t.Errorf("Thriller = #%d (%d), want #2 (1982)", thriller.Number, thriller.ReleaseYear)
	}
	if thriller.TotalTimeS != 0 {
		t.Errorf("TotalTimeS = %d, want 0 for null", thriller.TotalTimeS)
	}
	if thriller.PreviousListened || thriller.Comments != "Still great" {
		t.Errorf("progress = %v/%q, want false/Still great", thriller.PreviousListened, thriller.Comments)
	}
}

func TestParseCatalog_WithoutProgress(t *testing.T) {
	catalog := []byte(`[{"key": 4, "album_title": "Blue", "artist": "Joni Mitchell", "release_date": "1971"}]`)

	albums, errs := ParseCatalog(catalog, nil)
	if len(errs) > 0 {
		t.Fatalf("ParseCatalog() returned errors: %v", errs)
	}
	if albums[0].Number != 5 || albums[0].ReleaseYear != 1971 || albums[0].Listened {
		t.Errorf("album = %+v", albums[0])
	}
}

func TestParseCatalog_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing title",
			data: `[{"key": 0, "artist": "Miles Davis", "release_date": "1959"}]`,
		},
		{
			name: "missing artist",
			data: `[{"key": 0, "album_title": "Kind of Blue", "release_date": "1959"}]`,
		},
		{
			name: "missing release date",
			data: `[{"key": 0, "album_title": "Kind of Blue", "artist": "Miles Davis"}]`,
		},
		{
			name: "invalid release date",
			data: `[{"key": 0, "album_title": "Kind of Blue", "artist": "Miles Davis", "release_date": "late fifties"}]`,
		},
		{
			name: "negative running time",
			data: `[{"key": 0, "album_title": "Kind of Blue", "artist": "Miles Davis", "release_date": "1959", "total_time_s": -1}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			albums, errs := ParseCatalog([]byte(tt.data), nil)
			if len(errs) == 0 {
				t.Errorf("ParseCatalog() expected error for %s, got albums: %+v", tt.name, albums)
			}
		})
	}
}

func TestParseCatalog_SkipsBadEntries(t *testing.T) {
	catalog := []byte(`[
		{"key": 0, "album_title": "Kind of Blue", "artist": "Miles Davis", "release_date": "1959"},
		{"key": 1, "artist": "Nobody", "release_date": "1960"},
		{"key": 2, "album_title": "Blue", "artist": "Joni Mitchell", "release_date": "1971"}
	]`)

	albums, errs := ParseCatalog(catalog, nil)
	if len(errs) != 1 {
		t.Errorf("got %d errors, want 1: %v", len(errs), errs)
	}
	if len(albums) != 2 {
		t.Errorf("got %d albums, want 2", len(albums))
	}
}

func TestParseCatalog_InvalidJSON(t *testing.T) {
	if _, errs := ParseCatalog([]byte(`{not json`), nil); len(errs) != 1 {
		t.Errorf("expected one error for invalid catalog JSON, got %v", errs)
	}
	catalog := []byte(`[]`)
	if _, errs := ParseCatalog(catalog, []byte(`nope`)); len(errs) != 1 {
		t.Errorf("expected one error for invalid progress JSON, got %v", errs)
	}
}

func TestParseReleaseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1959", 1959, false},
		{"1959-08-17", 1959, false},
		{"1959-08-17T00:00:00.000", 1959, false},
		{"-327456000000", 1959, false},
		{"407462400000", 1982, false},
		{"", 0, true},
		{"1959-13-45", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		got, err := parseReleaseYear(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseReleaseYear(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseReleaseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	existing := []album.Album{
		{Number: 1, Title: "Kind of Blue", Artist: "Miles Davis",
			Personnel: album.Personnel{Musicians: []string{"Miles Davis"}}, Genres: []string{"Jazz"}},
		{Number: 2, Title: "Thriller", Artist: "Michael Jackson"},
	}
	imported := []album.Album{
		{Number: 1, Title: "Kind of Blue", Artist: "Miles Davis", ReleaseYear: 1959, Listened: true},
		{Number: 3, Title: "Blue", Artist: "Joni Mitchell", ReleaseYear: 1971},
	}

	merged, added, updated := Merge(existing, imported)
	if added != 1 || updated != 1 {
		t.Errorf("added=%d updated=%d, want 1 1", added, updated)
	}
	if len(merged) != 3 {
		t.Fatalf("merged has %d albums, want 3", len(merged))
	}

	kob := merged[0]
	if kob.ReleaseYear != 1959 || !kob.Listened {
		t.Errorf("Kind of Blue not updated: %+v", kob)
	}
	if len(kob.Personnel.Musicians) != 1 || len(kob.Genres) != 1 {
		t.Errorf("Kind of Blue lost personnel or genres: %+v", kob)
	}
	if merged[2].Title != "Blue" {
		t.Errorf("merged[2] = %s, want Blue", merged[2].Title)
	}

	// existing slice untouched
	if existing[0].Listened {
		t.Error("Merge modified its input")
	}
}
