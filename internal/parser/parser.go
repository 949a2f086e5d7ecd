// ABOUTME: Parser for the delimited post format the completion model is asked to emit.
// ABOUTME: Scans marker lines and accumulates bodies into ordered Post records.
package parser

import (
	"regexp"
	"strings"

	"github.com/2389-research/remix/internal/models"
)

// markerPattern matches a [POST n] marker line, n a single digit. Lines are
// trimmed before matching.
var markerPattern = regexp.MustCompile(`^\[POST \d\]$`)

// Result is the tagged outcome of a parse. When no marker is recognized in
// non-blank input the raw text is retained so callers can show it instead of a
// silently empty list.
type Result struct {
	Posts []models.Post
	Raw   string
}

// Unparseable reports whether the input carried content but no recognizable
// post markers.
func (r Result) Unparseable() bool {
	return len(r.Posts) == 0 && strings.TrimSpace(r.Raw) != ""
}

// Parse scans raw model output line by line. A marker line opens a new post;
// subsequent non-blank lines are trimmed and concatenated onto the open post's
// body with no separator. Content before the first marker is dropped. Blank or
// whitespace-only input yields an empty result.
func Parse(raw string) Result {
	result := Result{Raw: raw}

	var bodies []string
	open := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if markerPattern.MatchString(line) {
			bodies = append(bodies, "")
			open = true
			continue
		}
		if !open || line == "" {
			continue
		}
		bodies[len(bodies)-1] += line
	}

	for _, body := range bodies {
		result.Posts = append(result.Posts, models.NewPost(body))
	}
	return result
}
