// ABOUTME: Prompt construction for turning source text into post candidates.
// ABOUTME: Embeds the marker/delimiter output contract and style constraints.
package prompt

import (
	"fmt"
	"strings"

	"github.com/2389-research/remix/internal/models"
)

// PostCount is the number of candidate posts requested per generation.
const PostCount = 5

// instructions is the fixed preamble sent ahead of the source text. The parser
// depends on the [POST n] marker lines and the | segment delimiter it dictates.
const instructions = `You are a social media ghostwriter. Read the source text below and write exactly %d candidate posts based on it.

Formatting rules:
- Begin each post with a marker line of exactly [POST n] where n is the post number (1 through %d), on its own line.
- Each post body is 2-3 complete thoughts separated by the | character.
- Keep each post under %d characters total.
- Never start a new line immediately after a comma.

Style rules:
- No hashtags.
- Conversational tone, like talking to a friend.
- Preserve the tone of the source text.
- One focal idea per post.

Source text:

%s`

// Build returns the single instruction string for one generation request. The
// source text is embedded verbatim; callers are expected to have rejected empty
// input already.
func Build(source string) string {
	return fmt.Sprintf(instructions, PostCount, PostCount, models.CharLimit, strings.TrimSpace(source))
}
