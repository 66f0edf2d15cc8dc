package internal

import (
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
)

// Magnet holds the parts of a magnet link worth showing to the user
type Magnet struct {
	URI         string
	DisplayName string
	InfoHash    string
}

// ParseMagnet validates link and extracts its display name and BitTorrent info hash
func ParseMagnet(link string) (Magnet, error) {
	link = strings.TrimSpace(link)
	if err := ValidateMagnetLink(link); err != nil {
		return Magnet{}, err
	}

	magnet := Magnet{URI: link}

	rawQuery := strings.TrimPrefix(link, "magnet:")
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Display details are best effort; the link itself is still submitted.
		return magnet, nil
	}

	magnet.DisplayName = values.Get("dn")
	for _, xt := range values["xt"] {
		if hash, ok := strings.CutPrefix(xt, "urn:btih:"); ok {
			magnet.InfoHash = hash
			break
		}
	}

	return magnet, nil
}

// Label returns the display name, falling back to the info hash
func (m Magnet) Label() string {
	switch {
	case m.DisplayName != "":
		return m.DisplayName
	case m.InfoHash != "":
		return m.InfoHash
	default:
		return m.URI
	}
}

// ClipboardReader returns the current clipboard text
type ClipboardReader func() (string, error)

// ReadClipboard reads the system clipboard
func ReadClipboard() (string, error) {
	return clipboard.ReadAll()
}
