package fetch

import (
	"regexp"
	"strings"
)

// Dex pages link every learnable move through the attackdex. The link text
// carries the display name, which is what dataset files use.
var moveLinkRe = regexp.MustCompile(`<a href="/attackdex[^"]*\.shtml">([^<]+)</a>`)

// ParseMoves extracts the move names from a dex page, deduplicated in page
// order. A page without attackdex links yields an empty slice.
func ParseMoves(page []byte) []string {
	var moves []string
	seen := make(map[string]bool)
	for _, m := range moveLinkRe.FindAllSubmatch(page, -1) {
		name := strings.TrimSpace(string(m[1]))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		moves = append(moves, name)
	}
	return moves
}
