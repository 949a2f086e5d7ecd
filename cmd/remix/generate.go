// ABOUTME: One-shot generation command for scripted use.
// ABOUTME: Reads source text from args, a file, or stdin and prints candidate posts.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/remix/internal/models"
	"github.com/2389-research/remix/internal/parser"
	"github.com/2389-research/remix/internal/prompt"
	"github.com/2389-research/remix/internal/share"
)

var generateCmd = &cobra.Command{
	Use:   "generate [text]",
	Short: "Generate candidate posts from source text",
	Long: `Generate candidate posts from source text without the interactive session.

Source text comes from the argument, --file, or stdin (in that order).
Each candidate is printed with its remaining character count.`,
	RunE: runGenerate,
}

var (
	generateFile string
	generateJSON bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "Read source text from a file")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print posts as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("no source text provided")
	}
	if globalLLM == nil {
		return fmt.Errorf("no API key configured; run 'remix setup' or set OPENAI_API_KEY")
	}

	raw, err := globalLLM.Complete(commandContext(cmd), prompt.Build(source))
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	result := parser.Parse(raw)
	if result.Unparseable() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Response did not contain any posts. Raw output:")
		fmt.Println(result.Raw)
		return fmt.Errorf("unparseable response")
	}

	if generateJSON {
		return printPostsJSON(result.Posts)
	}
	for i, p := range result.Posts {
		printPost(i+1, p)
	}
	return nil
}

func printPostsJSON(posts []models.Post) error {
	type jsonPost struct {
		Segments  []string `json:"segments"`
		Body      string   `json:"body"`
		Remaining int      `json:"remaining"`
	}
	out := make([]jsonPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, jsonPost{Segments: p.Segments, Body: p.Body, Remaining: p.Remaining()})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}
	return nil
}

func readSource(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if generateFile != "" {
		data, err := os.ReadFile(generateFile)
		if err != nil {
			return "", fmt.Errorf("failed to read source file: %w", err)
		}
		return string(data), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}

func printPost(n int, p models.Post) {
	remaining := p.Remaining()
	label := fmt.Sprintf("%d characters left", remaining)
	if remaining < 0 {
		label = fmt.Sprintf("%d characters over", -remaining)
	}
	fmt.Printf("--- Post %d (%s)\n%s\n\n", n, label, share.TweetText(p))
}
