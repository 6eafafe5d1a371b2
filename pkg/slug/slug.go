// Package slug generates the short identifiers and display colors attached
// to boards and items at creation time.
package slug

import (
	"strings"

	"github.com/google/uuid"
)

var boardColors = []string{
	"#E0BBE4", "#957DAD", "#D291BC", "#FEC8D8",
	"#FFDFD3", "#EF4056", "#00CB77", "#1CB0A8",
}

// Generate returns a short random slug. Uniqueness is enforced by the
// caller's storage index; on conflict the caller regenerates.
func Generate() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// BoardColor picks one of the stock board colors.
func BoardColor() string {
	return boardColors[int(uuid.New().ID())%len(boardColors)]
}
