// Package catalog extracts the ordered set of theme names from the
// generator's list output.
package catalog

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Random is the synthetic identifier appended to every catalog. It is
// never emitted by the generator itself; applying it asks the generator
// to pick a concrete theme.
const Random = "random"

// Section markers in the generator's list output. Entries appear as
// dash-prefixed lines between the two.
const (
	startMarker = "Schemes:"
	endMarker   = "Options:"
)

// entryPattern matches a dash entry and captures the name token, which
// runs up to the next whitespace or parenthesis.
var entryPattern = regexp.MustCompile(`^\s*-\s+([^\s(]+)`)

// Parse extracts theme identifiers from raw list output, preserving the
// generator's ordering. Random is appended exactly once when the closing
// marker is observed, even for an empty section. Output with no start
// marker yields an empty catalog; callers report that to the user as
// "no themes found" rather than treating it as an invocation error.
func Parse(raw string) []string {
	var themes []string
	inSection := false
	sawEnd := false

	for _, line := range strings.Split(ansi.Strip(raw), "\n") {
		switch {
		case strings.HasPrefix(line, startMarker):
			inSection = true
		case inSection && strings.HasPrefix(line, endMarker):
			inSection = false
			if !sawEnd {
				themes = append(themes, Random)
				sawEnd = true
			}
		case inSection:
			m := entryPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			// "list" shows up as a dash entry in the generator's own
			// listing but names a subcommand, not a theme.
			if m[1] == "list" {
				continue
			}
			themes = append(themes, m[1])
		}
	}

	return themes
}
