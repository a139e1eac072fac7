package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/albums1001/albums/internal/album"
)

// Constants for output formatting.
const (
	DefaultListLimit = 50 // Default limit for search/list commands

	ListTitleMaxLen   = 50 // Used in list and search output
	DetailTitleMaxLen = 70 // Used in get command detail view

	TextWrapWidth = 60 // Standard text wrap width
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// listenedMark returns a one-character listening status.
func listenedMark(a album.Album) string {
	switch {
	case a.PreviousListened:
		return "*"
	case a.Listened:
		return "+"
	default:
		return " "
	}
}

// printAlbumSummary prints one album as a numbered list entry.
func printAlbumSummary(a album.Album) {
	fmt.Printf("%s %4d  %s\n", listenedMark(a), a.Number, truncateString(a.Title, ListTitleMaxLen))
	fmt.Printf("        %s (%d)\n", a.Artist, a.ReleaseYear)
}

// printAlbumList prints albums or a "none found" line.
func printAlbumList(albums []album.Album, noun string) {
	if len(albums) == 0 {
		fmt.Printf("No %s found\n", noun)
		return
	}
	fmt.Printf("Found %d %s:\n\n", len(albums), noun)
	for _, a := range albums {
		printAlbumSummary(a)
	}
}
