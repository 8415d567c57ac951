package model

import (
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

// MIMESniffer detects content types from file magic numbers.
type MIMESniffer struct{}

// Sniff returns the bare media type of path, without parameters.
func (MIMESniffer) Sniff(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	mediaType, _, err := mime.ParseMediaType(m.String())
	if err != nil {
		return m.String(), nil
	}
	return mediaType, nil
}
