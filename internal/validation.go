package internal

import (
	"errors"
	"strings"
)

// ErrInvalidMagnet is returned for input that is not a magnet link
var ErrInvalidMagnet = errors.New("invalid or missing magnet link")

// ErrNoDirectories is returned when add has nowhere to save the download
var ErrNoDirectories = errors.New("no download directories configured; add 'directories' to the configuration file or pass --destination")

// ValidateMagnetLink checks that link is a magnet URI
func ValidateMagnetLink(link string) error {
	if !strings.HasPrefix(strings.TrimSpace(link), "magnet:") {
		return ErrInvalidMagnet
	}
	return nil
}
