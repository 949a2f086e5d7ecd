// ABOUTME: Tests for the post format parser.
// ABOUTME: Covers marker recognition, body accumulation, segments, and budgets.
package parser

import (
	"strings"
	"testing"

	"github.com/2389-research/remix/internal/models"
)

func TestParseFiveWellFormedBlocks(t *testing.T) {
	raw := `[POST 1]
First thought | Second thought
[POST 2]
Only one thought here
[POST 3]
A | B | C
[POST 4]
Something short | and something longer
[POST 5]
Closing idea | final word`

	result := Parse(raw)
	if result.Unparseable() {
		t.Fatal("expected parseable input")
	}
	if len(result.Posts) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(result.Posts))
	}

	want := [][]string{
		{"First thought", "Second thought"},
		{"Only one thought here"},
		{"A", "B", "C"},
		{"Something short", "and something longer"},
		{"Closing idea", "final word"},
	}
	for i, segments := range want {
		got := result.Posts[i].Segments
		if len(got) != len(segments) {
			t.Fatalf("post %d: expected %d segments, got %d (%q)", i+1, len(segments), len(got), got)
		}
		for j := range segments {
			if got[j] != segments[j] {
				t.Errorf("post %d segment %d: expected %q, got %q", i+1, j, segments[j], got[j])
			}
		}
	}
}

func TestParseNoMarkers(t *testing.T) {
	result := Parse("Here are some posts for you!\nHope you like them.")
	if len(result.Posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(result.Posts))
	}
	if !result.Unparseable() {
		t.Error("expected non-blank markerless input to report unparseable")
	}
}

func TestParseBlankInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n\t\n"} {
		result := Parse(raw)
		if len(result.Posts) != 0 {
			t.Errorf("input %q: expected no posts, got %d", raw, len(result.Posts))
		}
		if result.Unparseable() {
			t.Errorf("input %q: blank input must not report unparseable", raw)
		}
	}
}

func TestParseSingleSegment(t *testing.T) {
	result := Parse("[POST 1]\nJust one complete thought with no delimiter")
	if len(result.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(result.Posts))
	}
	post := result.Posts[0]
	if len(post.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(post.Segments))
	}
	if post.Segments[0] != "Just one complete thought with no delimiter" {
		t.Errorf("unexpected segment: %q", post.Segments[0])
	}
}

func TestParseConcatenatesLinesWithNoSeparator(t *testing.T) {
	result := Parse("[POST 1]\nHello \nworld")
	if len(result.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(result.Posts))
	}
	// Both lines are trimmed then joined directly.
	if result.Posts[0].Body != "Helloworld" {
		t.Errorf("expected body %q, got %q", "Helloworld", result.Posts[0].Body)
	}
}

func TestParseDropsContentBeforeFirstMarker(t *testing.T) {
	result := Parse("Sure! Here are your posts:\n[POST 1]\nActual content")
	if len(result.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(result.Posts))
	}
	if result.Posts[0].Body != "Actual content" {
		t.Errorf("expected preamble dropped, got body %q", result.Posts[0].Body)
	}
}

func TestParseIgnoresMalformedMarkers(t *testing.T) {
	// Two digits, missing brackets, and inline markers don't open posts.
	result := Parse("[POST 12]\nnope\nPOST 1\nstill nope\nprefix [POST 1]\nno")
	if len(result.Posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(result.Posts))
	}
}

func TestRemainingCharacterCount(t *testing.T) {
	body := strings.Repeat("a", 100) + "|" + strings.Repeat("b", 50)
	result := Parse("[POST 1]\n" + body)
	if len(result.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(result.Posts))
	}
	// Budget is charged against the raw body including delimiters.
	if got := result.Posts[0].Remaining(); got != models.CharLimit-151 {
		t.Errorf("expected remaining %d, got %d", models.CharLimit-151, got)
	}
}

func TestRemainingGoesNegative(t *testing.T) {
	long := strings.Repeat("x", 300)
	result := Parse("[POST 1]\n" + long)
	if len(result.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(result.Posts))
	}
	if got := result.Posts[0].Remaining(); got != -20 {
		t.Errorf("expected remaining -20, got %d", got)
	}
}
