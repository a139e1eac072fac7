package main

import (
	"errors"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/config"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing library, invalid config)
	ExitDataError   = 3 // Data error (malformed JSONL, duplicate titles)
	ExitNotFound    = 4 // Album not found
)

// exitCodeFor maps domain errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, album.ErrAlbumNotFound):
		return ExitNotFound
	case errors.Is(err, album.ErrDuplicateTitle),
		errors.Is(err, album.ErrEmptyTitle),
		errors.Is(err, album.ErrEmptyArtist):
		return ExitDataError
	case errors.Is(err, config.ErrLibraryPathNotConfigured),
		errors.Is(err, config.ErrLibraryPathNotExist):
		return ExitConfigError
	default:
		return ExitError
	}
}
