// ABOUTME: CLI commands for saved-post operations.
// ABOUTME: Provides list, search, delete, and share subcommands against the store.
package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/2389-research/remix/internal/models"
	"github.com/2389-research/remix/internal/share"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved posts",
	Long:  "List, search, delete, and share posts you have saved.",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved posts",
	Long:  "List saved posts, newest first.",
	RunE:  runSavedList,
}

var savedSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search saved posts",
	Long:  "Search saved posts by meaning when embeddings are available, by substring otherwise.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedSearch,
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved post",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedDelete,
}

var savedShareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Open a saved post in a tweet composer",
	Long:  "Open the browser tweet-intent page pre-filled with the saved post.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedShare,
}

var savedSearchLimit int

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedSearchCmd)
	savedCmd.AddCommand(savedDeleteCmd)
	savedCmd.AddCommand(savedShareCmd)

	savedSearchCmd.Flags().IntVar(&savedSearchLimit, "limit", 10, "Maximum number of results")
}

func runSavedList(cmd *cobra.Command, args []string) error {
	if err := requirePersistentStore(); err != nil {
		return err
	}

	posts, err := globalStore.ListPosts(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list saved posts: %w", err)
	}
	if len(posts) == 0 {
		fmt.Println("No saved posts.")
		return nil
	}

	for _, p := range posts {
		printSaved(p)
	}
	return nil
}

func runSavedSearch(cmd *cobra.Command, args []string) error {
	if err := requirePersistentStore(); err != nil {
		return err
	}

	posts, err := globalStore.SearchPosts(commandContext(cmd), args[0], savedSearchLimit)
	if err != nil {
		return fmt.Errorf("failed to search saved posts: %w", err)
	}
	if len(posts) == 0 {
		fmt.Println("No matching posts found.")
		return nil
	}

	for _, p := range posts {
		printSaved(p)
	}
	return nil
}

func runSavedDelete(cmd *cobra.Command, args []string) error {
	if err := requirePersistentStore(); err != nil {
		return err
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid post ID: %w", err)
	}

	if err := globalStore.DeletePost(commandContext(cmd), id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	fmt.Printf("Deleted post %s\n", id)
	return nil
}

func runSavedShare(cmd *cobra.Command, args []string) error {
	if err := requirePersistentStore(); err != nil {
		return err
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid post ID: %w", err)
	}

	posts, err := globalStore.ListPosts(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list saved posts: %w", err)
	}

	for _, p := range posts {
		if p.ID == id {
			url := share.IntentURL(share.TweetContent(p.Content))
			if err := share.Open(url); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}
			fmt.Printf("Opened %s\n", url)
			return nil
		}
	}
	return fmt.Errorf("no saved post with ID %s", id)
}

func printSaved(p *models.SavedPost) {
	fmt.Printf("%s  %s\n  %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"), p.ID, p.Content)
}
