package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/albums1001/albums/internal/album"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectAlbumFields contains the standard field list for SELECT queries.
const selectAlbumFields = `number, title, artist, release_year,
	personnel_json, genres_json,
	listened, previous_listened, comments, total_time_s`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS albums (
			title TEXT PRIMARY KEY,
			number INTEGER NOT NULL,
			artist TEXT NOT NULL,
			release_year INTEGER NOT NULL,
			personnel_json TEXT NOT NULL,
			genres_json TEXT,
			listened INTEGER NOT NULL DEFAULT 0,
			previous_listened INTEGER NOT NULL DEFAULT 0,
			comments TEXT,
			total_time_s INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_albums_year ON albums(release_year);

		-- One row per (album, person) with the person's classified role
		CREATE TABLE IF NOT EXISTS album_people (
			title TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			PRIMARY KEY (title, name)
		);

		CREATE INDEX IF NOT EXISTS idx_album_people_name ON album_people(name);

		CREATE TABLE IF NOT EXISTS album_genres (
			title TEXT NOT NULL,
			genre TEXT NOT NULL,
			PRIMARY KEY (title, genre)
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS albums_fts USING fts5(
			title,
			artist,
			people_text,
			genres_text,
			release_year
		);

		-- Cached node positions keyed by graph fingerprint
		CREATE TABLE IF NOT EXISTS layout_positions (
			fingerprint TEXT NOT NULL,
			node_id TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (fingerprint, node_id)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the album tables and rebuilds them from a JSONL
// file. Cached layouts are kept; they are keyed by graph fingerprint.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	albums, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	if err := album.ValidateUniqueTitles(albums); err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"albums", "album_people", "album_genres", "albums_fts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	albumStmt, err := tx.Prepare(`
		INSERT INTO albums (
			number, title, artist, release_year,
			personnel_json, genres_json,
			listened, previous_listened, comments, total_time_s
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing albums insert: %w", err)
	}
	defer albumStmt.Close()

	peopleStmt, err := tx.Prepare(`INSERT INTO album_people (title, name, role) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing people insert: %w", err)
	}
	defer peopleStmt.Close()

	genreStmt, err := tx.Prepare(`INSERT OR IGNORE INTO album_genres (title, genre) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing genres insert: %w", err)
	}
	defer genreStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO albums_fts (title, artist, people_text, genres_text, release_year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, a := range albums {
		personnelJSON, err := json.Marshal(a.Personnel)
		if err != nil {
			return 0, fmt.Errorf("marshaling personnel for %s: %w", a.Title, err)
		}
		var genresJSON []byte
		if len(a.Genres) > 0 {
			genresJSON, err = json.Marshal(a.Genres)
			if err != nil {
				return 0, fmt.Errorf("marshaling genres for %s: %w", a.Title, err)
			}
		}

		_, err = albumStmt.Exec(
			a.Number, a.Title, a.Artist, a.ReleaseYear,
			string(personnelJSON), nullableString(genresJSON),
			boolInt(a.Listened), boolInt(a.PreviousListened),
			nullableStringValue(a.Comments), a.TotalTimeS,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting album %s: %w", a.Title, err)
		}

		names := a.PersonnelNames()
		for _, name := range names {
			if _, err := peopleStmt.Exec(a.Title, name, string(a.PersonnelRole(name))); err != nil {
				return 0, fmt.Errorf("inserting person %s for %s: %w", name, a.Title, err)
			}
		}
		for _, g := range a.Genres {
			if g == "" {
				continue
			}
			if _, err := genreStmt.Exec(a.Title, g); err != nil {
				return 0, fmt.Errorf("inserting genre %s for %s: %w", g, a.Title, err)
			}
		}

		_, err = ftsStmt.Exec(a.Title, a.Artist, strings.Join(names, ", "),
			strings.Join(a.Genres, ", "), strconv.Itoa(a.ReleaseYear))
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", a.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(albums), nil
}

// GetByTitle retrieves an album by its title. Returns nil if not found.
func (d *DB) GetByTitle(title string) (*album.Album, error) {
	row := d.db.QueryRow(`SELECT `+selectAlbumFields+` FROM albums WHERE title = ?`, title)
	return scanAlbum(row)
}

// GetAllAlbums returns every album ordered by catalog number.
func (d *DB) GetAllAlbums() ([]album.Album, error) {
	return d.ListAll(0)
}

// ListAll returns albums ordered by catalog number, optionally limited.
func (d *DB) ListAll(limit int) ([]album.Album, error) {
	query := `SELECT ` + selectAlbumFields + ` FROM albums ORDER BY number, title`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing albums: %w", err)
	}
	defer rows.Close()

	return scanAlbums(rows)
}

// Count returns the total number of albums.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM albums").Scan(&count)
	return count, err
}

// Search performs a full-text search over titles, artists, personnel and
// genres.
func (d *DB) Search(query string, limit int) ([]album.Album, error) {
	return d.SearchWithFilters(SearchFilters{Keyword: query}, limit)
}

// SearchFilters contains optional filters for SearchWithFilters.
type SearchFilters struct {
	Keyword  string // General keyword search across all text fields
	Person   string // Prefix match on personnel names (FTS)
	Genre    string // Exact genre match
	YearFrom int    // Minimum release year (0 = no minimum)
	YearTo   int    // Maximum release year (0 = no maximum)
	Listened *bool  // Listened state (nil = either)
}

// SearchWithFilters returns albums matching ALL specified criteria.
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]album.Album, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Person != "" {
		ftsTerms = append(ftsTerms, "people_text:"+preparePrefixQuery(filters.Person))
	}

	var query string
	if len(ftsTerms) > 0 {
		query = `SELECT ` + selectAlbumFields + `
			FROM albums
			WHERE title IN (SELECT title FROM albums_fts WHERE albums_fts MATCH ?)`
		args = append(args, strings.Join(ftsTerms, " AND "))
	} else {
		query = `SELECT ` + selectAlbumFields + ` FROM albums WHERE 1=1`
	}

	if filters.Genre != "" {
		query += " AND title IN (SELECT title FROM album_genres WHERE genre = ?)"
		args = append(args, filters.Genre)
	}
	if filters.YearFrom > 0 {
		query += " AND release_year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND release_year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Listened != nil {
		query += " AND listened = ?"
		args = append(args, boolInt(*filters.Listened))
	}

	query += " ORDER BY number, title"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanAlbums(rows)
}

// PersonCredit is one album credit of a person.
type PersonCredit struct {
	Title string     `json:"title"`
	Role  album.Role `json:"role"`
}

// CreditsFor returns every album credit of the named person ordered by title.
func (d *DB) CreditsFor(name string) ([]PersonCredit, error) {
	rows, err := d.db.Query(`SELECT title, role FROM album_people WHERE name = ? ORDER BY title`, name)
	if err != nil {
		return nil, fmt.Errorf("querying credits: %w", err)
	}
	defer rows.Close()

	var credits []PersonCredit
	for rows.Next() {
		var c PersonCredit
		var role string
		if err := rows.Scan(&c.Title, &role); err != nil {
			return nil, err
		}
		c.Role = album.Role(role)
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAlbum(s scanner) (*album.Album, error) {
	var a album.Album
	var personnelJSON, genresJSON, comments sql.NullString
	var listened, previous int64

	err := s.Scan(
		&a.Number, &a.Title, &a.Artist, &a.ReleaseYear,
		&personnelJSON, &genresJSON,
		&listened, &previous, &comments, &a.TotalTimeS,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	a.Listened = listened != 0
	a.PreviousListened = previous != 0
	a.Comments = comments.String

	if personnelJSON.Valid {
		if err := json.Unmarshal([]byte(personnelJSON.String), &a.Personnel); err != nil {
			return nil, fmt.Errorf("parsing personnel JSON for %s: %w", a.Title, err)
		}
	}
	if genresJSON.Valid && genresJSON.String != "" {
		if err := json.Unmarshal([]byte(genresJSON.String), &a.Genres); err != nil {
			return nil, fmt.Errorf("parsing genres JSON for %s: %w", a.Title, err)
		}
	}

	return &a, nil
}

func scanAlbums(rows *sql.Rows) ([]album.Album, error) {
	var albums []album.Album
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		if a != nil {
			albums = append(albums, *a)
		}
	}
	return albums, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	if strings.ContainsAny(query, "\"*+-:(){}[]^~'.,&/!?") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}

// preparePrefixQuery quotes each word of a name and adds a prefix wildcard,
// so "Quin" matches "Quincy Jones".
func preparePrefixQuery(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	terms := make([]string, len(parts))
	for i, part := range parts {
		terms[i] = "\"" + strings.ReplaceAll(part, "\"", "\"\"") + "\"*"
	}
	return "(" + strings.Join(terms, " AND ") + ")"
}
