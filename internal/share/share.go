// ABOUTME: Tweet share-intent formatting and browser launching.
// ABOUTME: Turns segment-delimited post bodies into platform share URLs.
package share

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/2389-research/remix/internal/models"
)

// IntentBaseURL is the public tweet share-intent endpoint.
const IntentBaseURL = "https://twitter.com/intent/tweet"

// TweetText renders a post for sharing: segments joined by paragraph breaks.
func TweetText(p models.Post) string {
	return strings.Join(p.Segments, "\n\n")
}

// TweetContent renders saved content the same way, splitting on the segment
// delimiter first.
func TweetContent(content string) string {
	return TweetText(models.NewPost(content))
}

// IntentURL returns the share-intent URL for the given tweet text.
func IntentURL(text string) string {
	return IntentBaseURL + "?text=" + url.QueryEscape(text)
}

// Open launches the platform browser on the given URL.
func Open(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
