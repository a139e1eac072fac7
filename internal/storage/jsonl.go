// Package storage handles data persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/albums1001/albums/internal/album"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all albums from a JSONL file.
func ReadAll(path string) ([]album.Album, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file means an empty library
		}
		return nil, fmt.Errorf("opening albums file: %w", err)
	}
	defer f.Close()

	var albums []album.Album
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var a album.Album
		if err := json.Unmarshal(line, &a); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		albums = append(albums, a)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading albums file: %w", err)
	}

	return albums, nil
}

// Append adds an album to the end of a JSONL file. It refuses titles that
// are already present.
func Append(path string, a album.Album) error {
	if err := a.ValidateForCreate(); err != nil {
		return err
	}
	existing, err := ReadAll(path)
	if err != nil {
		return err
	}
	if _, found := FindByTitle(existing, a.Title); found {
		return fmt.Errorf("%w: %q", album.ErrDuplicateTitle, a.Title)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening albums file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding album: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing album: %w", err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}

// WriteAll writes all albums to a JSONL file, replacing existing content.
func WriteAll(path string, albums []album.Album) error {
	if err := album.ValidateUniqueTitles(albums); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating albums file: %w", err)
	}
	defer f.Close()

	for i, a := range albums {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("encoding album %d: %w", i, err)
		}

		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing album %d: %w", i, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// FindByTitle searches for an album by title.
func FindByTitle(albums []album.Album, title string) (int, bool) {
	for i, a := range albums {
		if a.Title == title {
			return i, true
		}
	}
	return -1, false
}

// FindByNumber searches for an album by catalog number.
func FindByNumber(albums []album.Album, number int) (int, bool) {
	if number <= 0 {
		return -1, false
	}
	for i, a := range albums {
		if a.Number == number {
			return i, true
		}
	}
	return -1, false
}
