package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/network"
	"go.uber.org/zap/zaptest"
)

func testAlbums() []album.Album {
	return []album.Album{
		{
			Number: 1, Title: "Kind of Blue", Artist: "Miles Davis", ReleaseYear: 1959,
			Personnel: album.Personnel{
				Musicians: []string{"Miles Davis", "Bill Evans", "John Coltrane"},
				Producers: []string{"Teo Macero"},
			},
			Genres:   []string{"Jazz", "Modal"},
			Listened: true, TotalTimeS: 2757,
		},
		{
			Number: 2, Title: "Bitches Brew", Artist: "Miles Davis", ReleaseYear: 1970,
			Personnel: album.Personnel{
				Musicians: []string{"Miles Davis", "Wayne Shorter"},
				Producers: []string{"Teo Macero"},
			},
			Genres:   []string{"Jazz", "Fusion"},
			Comments: "long",
		},
		{
			Number: 3, Title: "Thriller", Artist: "Michael Jackson", ReleaseYear: 1982,
			Personnel: album.Personnel{
				Writers:   []string{"Rod Temperton"},
				Producers: []string{"Quincy Jones"},
			},
			Genres:           []string{"Pop"},
			PreviousListened: true,
		},
	}
}

// setupTestDB creates a test database rebuilt from a JSONL file of testAlbums.
func setupTestDB(t *testing.T) (*DB, string) {
	t.Helper()

	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "albums.jsonl")
	if err := WriteAll(jsonlPath, testAlbums()); err != nil {
		t.Fatalf("Failed to write test JSONL: %v", err)
	}

	db, err := OpenDB(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.RebuildFromJSONL(jsonlPath); err != nil {
		t.Fatalf("Failed to rebuild DB: %v", err)
	}
	return db, tmpDir
}

func TestOpenDB_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("OpenDB() did not create database file")
	}
}

func TestDB_RebuildFromJSONL(t *testing.T) {
	db, tmpDir := setupTestDB(t)

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	jsonlPath := filepath.Join(tmpDir, "albums.jsonl")
	if err := WriteAll(jsonlPath, []album.Album{{Number: 4, Title: "New", Artist: "n"}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	rebuilt, err := db.RebuildFromJSONL(jsonlPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	if rebuilt != 1 {
		t.Errorf("RebuildFromJSONL() = %d, want 1", rebuilt)
	}
	if count, _ := db.Count(); count != 1 {
		t.Errorf("After rebuild, Count() = %d, want 1", count)
	}
	if credits, _ := db.CreditsFor("Teo Macero"); len(credits) != 0 {
		t.Errorf("stale credits survived rebuild: %v", credits)
	}
}

func TestDB_GetByTitle(t *testing.T) {
	db, _ := setupTestDB(t)

	a, err := db.GetByTitle("Kind of Blue")
	if err != nil {
		t.Fatalf("GetByTitle() error = %v", err)
	}
	if a == nil {
		t.Fatal("GetByTitle() returned nil")
	}
	if a.Number != 1 || a.Artist != "Miles Davis" || a.ReleaseYear != 1959 {
		t.Errorf("GetByTitle() = %+v", a)
	}
	if len(a.Personnel.Musicians) != 3 || a.Personnel.Producers[0] != "Teo Macero" {
		t.Errorf("Personnel = %+v", a.Personnel)
	}
	if len(a.Genres) != 2 || !a.Listened || a.TotalTimeS != 2757 {
		t.Errorf("progress fields = %+v", a)
	}

	missing, err := db.GetByTitle("Not There")
	if err != nil {
		t.Fatalf("GetByTitle() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetByTitle() returned %+v, want nil", missing)
	}
}

func TestDB_GetAllAlbums(t *testing.T) {
	db, _ := setupTestDB(t)

	albums, err := db.GetAllAlbums()
	if err != nil {
		t.Fatalf("GetAllAlbums() error = %v", err)
	}
	if len(albums) != 3 {
		t.Fatalf("GetAllAlbums() returned %d, want 3", len(albums))
	}
	for i, want := range []string{"Kind of Blue", "Bitches Brew", "Thriller"} {
		if albums[i].Title != want {
			t.Errorf("albums[%d] = %q, want %q", i, albums[i].Title, want)
		}
	}
	if albums[1].Comments != "long" || !albums[2].PreviousListened {
		t.Errorf("nullable fields lost: %+v", albums)
	}

	limited, _ := db.ListAll(2)
	if len(limited) != 2 {
		t.Errorf("ListAll(2) returned %d", len(limited))
	}
}

func TestDB_Search(t *testing.T) {
	db, _ := setupTestDB(t)

	tests := []struct {
		query string
		want  int
	}{
		{"Miles", 2},
		{"Quincy", 1},
		{"Fusion", 1},
		{"1982", 1},
		{"Kind of Blue", 1},
		{"nothing-matches", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := db.Search(tt.query, 10)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) returned %d albums, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestDB_SearchWithFilters(t *testing.T) {
	db, _ := setupTestDB(t)
	yes := true

	tests := []struct {
		name    string
		filters SearchFilters
		want    []string
	}{
		{"person prefix", SearchFilters{Person: "Wayne"}, []string{"Bitches Brew"}},
		{"genre", SearchFilters{Genre: "Jazz"}, []string{"Kind of Blue", "Bitches Brew"}},
		{"year range", SearchFilters{YearFrom: 1960, YearTo: 1990}, []string{"Bitches Brew", "Thriller"}},
		{"listened", SearchFilters{Listened: &yes}, []string{"Kind of Blue"}},
		{"combined", SearchFilters{Keyword: "Miles", YearFrom: 1965}, []string{"Bitches Brew"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.SearchWithFilters(tt.filters, 0)
			if err != nil {
				t.Fatalf("SearchWithFilters() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("SearchWithFilters() returned %d albums, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].Title != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, got[i].Title, tt.want[i])
				}
			}
		})
	}
}

func TestDB_CreditsFor(t *testing.T) {
	db, _ := setupTestDB(t)

	credits, err := db.CreditsFor("Teo Macero")
	if err != nil {
		t.Fatalf("CreditsFor() error = %v", err)
	}
	want := []PersonCredit{
		{Title: "Bitches Brew", Role: album.RoleProducer},
		{Title: "Kind of Blue", Role: album.RoleProducer},
	}
	if len(credits) != len(want) {
		t.Fatalf("CreditsFor() = %v, want %v", credits, want)
	}
	for i := range want {
		if credits[i] != want[i] {
			t.Errorf("credits[%d] = %v, want %v", i, credits[i], want[i])
		}
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  miles ", "miles"},
		{"rock'n'roll", `"rock'n'roll"`},
		{`say "hi"`, `"say ""hi"""`},
	}
	for _, tt := range tests {
		if got := prepareFTSQuery(tt.in); got != tt.want {
			t.Errorf("prepareFTSQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLayoutCache(t *testing.T) {
	db, _ := setupTestDB(t)

	calls := 0
	inner := network.LayoutFunc(func(nodes []string, edges []network.EdgeRef, params network.LayoutParams) map[string]network.Position {
		calls++
		out := make(map[string]network.Position, len(nodes))
		for i, id := range nodes {
			out[id] = network.Position{X: float64(i), Y: 0.5}
		}
		return out
	})
	cache := NewLayoutCache(db, inner, zaptest.NewLogger(t).Sugar())

	nodes := []string{"A", "B", "X"}
	edges := []network.EdgeRef{{Source: "X", Target: "A"}, {Source: "X", Target: "B"}}
	params := network.DefaultLayoutParams()

	first := cache.Layout(nodes, edges, params)
	second := cache.Layout(nodes, edges, params)
	if calls != 1 {
		t.Errorf("inner layouter called %d times, want 1", calls)
	}
	if len(second) != 3 || second["X"] != first["X"] {
		t.Errorf("cached layout = %v, want %v", second, first)
	}

	params.Seed++
	cache.Layout(nodes, edges, params)
	if calls != 2 {
		t.Errorf("changed seed reused the cache (calls = %d)", calls)
	}

	if got := cache.Layout(nil, nil, params); len(got) != 0 {
		t.Errorf("empty layout = %v", got)
	}

	if err := db.ClearLayouts(); err != nil {
		t.Fatalf("ClearLayouts() error = %v", err)
	}
	cache.Layout(nodes, edges, network.DefaultLayoutParams())
	if calls != 3 {
		t.Errorf("cleared cache still served layout (calls = %d)", calls)
	}
}

func TestLayoutCache_WithNetwork(t *testing.T) {
	db, _ := setupTestDB(t)
	albums, err := db.GetAllAlbums()
	if err != nil {
		t.Fatalf("GetAllAlbums() error = %v", err)
	}

	params := network.DefaultLayoutParams()
	params.Iterations = 20
	build := func() *network.Graph {
		n := network.New(network.KindPersonnel,
			network.WithLayoutParams(params),
			network.WithLayouter(NewLayoutCache(db, nil, nil)))
		if err := n.SetAlbums(albums); err != nil {
			t.Fatalf("SetAlbums() error = %v", err)
		}
		return n.Graph()
	}

	g1, g2 := build(), build()
	for _, id := range g1.NodeIDs() {
		if g1.Node(id).Position != g2.Node(id).Position {
			t.Errorf("%s moved between cached builds", id)
		}
	}
}

func TestLayoutCache_TitleMatchesPersonName(t *testing.T) {
	db, _ := setupTestDB(t)
	albums := []album.Album{
		{Title: "Elvis Presley", Artist: "Elvis Presley", Personnel: album.Personnel{Musicians: []string{"Elvis Presley"}}},
		{Title: "From Elvis in Memphis", Artist: "Elvis Presley", Personnel: album.Personnel{Musicians: []string{"Elvis Presley"}}},
	}

	calls := 0
	inner := network.LayoutFunc(func(nodes []string, edges []network.EdgeRef, params network.LayoutParams) map[string]network.Position {
		calls++
		return network.EadesLayout{}.Layout(nodes, edges, params)
	})
	params := network.DefaultLayoutParams()
	params.Iterations = 10

	for i := 0; i < 2; i++ {
		n := network.New(network.KindPersonnel,
			network.WithLayoutParams(params),
			network.WithLayouter(NewLayoutCache(db, inner, nil)))
		if err := n.SetAlbums(albums); err != nil {
			t.Fatalf("SetAlbums() error = %v", err)
		}
		if got := len(n.Graph().NodeIDs()); got != 3 {
			t.Fatalf("graph has %d nodes, want 3", got)
		}
	}
	if calls != 1 {
		t.Errorf("inner layouter called %d times, want 1", calls)
	}
}

func TestLayoutFingerprint(t *testing.T) {
	p := network.DefaultLayoutParams()
	a := LayoutFingerprint([]string{"ab", "c"}, nil, p)
	b := LayoutFingerprint([]string{"a", "bc"}, nil, p)
	if a == b {
		t.Error("fingerprint ignores node boundaries")
	}
	if a != LayoutFingerprint([]string{"ab", "c"}, nil, p) {
		t.Error("fingerprint not stable")
	}
}
