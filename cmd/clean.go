package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all persisted chats and log files",
	Long: `Deletes the persisted chat sessions and removes the debug log file.
The next run starts with a single fresh chat.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	sessionsPath, err := cfg.SessionsPath()
	if err != nil {
		return fmt.Errorf("error resolving sessions path: %w", err)
	}

	if _, statErr := os.Stat(sessionsPath); os.IsNotExist(statErr) {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will clean:")
	fmt.Printf("  - Persisted chats at %s\n", sessionsPath)
	fmt.Printf("  - The debug log at %s\n", logger.DefaultLogPath)

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.Remove(sessionsPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing sessions: %w", err)
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	cfg.SetLastRoute("")
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error saving config: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Cleaned:")
	fmt.Println("  - Persisted chats removed")
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
