package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [book-id] [question]",
	Short: "Ask the reading assistant about a book",
	Long: `Sends a question about the book to the configured reading assistant
and prints the answer with citations and follow-up suggestions.

Requires agent.base_url in ~/.folio/config.toml.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runChat,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history [book-id]",
	Short: "Show a book's chat transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatHistory,
}

func init() {
	chatCmd.AddCommand(chatHistoryCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	bookID := args[0]
	question := strings.Join(args[1:], " ")

	reply, err := chatService.Ask(context.Background(), bookID, question)
	if err != nil {
		if errors.Is(err, domain.ErrAssistantUnavailable) {
			return errors.New("no assistant configured: set agent.base_url in ~/.folio/config.toml")
		}
		return fmt.Errorf("ask assistant: %w", err)
	}

	cmd.Println(reply.Content)
	printReplyExtras(cmd, reply)
	return nil
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	history, err := chatService.History(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("chat history: %w", err)
	}

	if len(history) == 0 {
		cmd.Println("No conversation yet.")
		return nil
	}

	for i := range history {
		msg := &history[i]
		cmd.Printf("[%s] %s\n", msg.Role, msg.Content)
		printReplyExtras(cmd, msg)
	}
	return nil
}

func printReplyExtras(cmd *cobra.Command, msg *domain.ChatMessage) {
	for _, c := range msg.Citations {
		if c.Snippet != "" {
			cmd.Printf("  Source: %s: %q\n", c.Source, c.Snippet)
		} else {
			cmd.Printf("  Source: %s\n", c.Source)
		}
	}
	if len(msg.Suggestions) > 0 {
		cmd.Println("  You could also ask:")
		for _, s := range msg.Suggestions {
			cmd.Printf("    - %s\n", s)
		}
	}
}
