// Package cmd holds the cobra commands for the parley binary.
package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/nav"
	"github.com/zhubert/parley/internal/storage"
)

var (
	debugMode             bool
	quietMode             bool
	startChat             int
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal multi-session chat client",
	Long: `Parley is a terminal chat client managing multiple conversations with a
pattern-matching demo bot. Chats are numbered, persisted between runs, and
the last open chat is restored on startup.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().IntVar(&startChat, "chat", 0, "Open chat N instead of the last open chat")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

// openBackend builds the storage backend named by the config. The
// returned closer is a no-op for the file backend.
func openBackend(cfg *config.Config) (storage.Backend, func(), error) {
	path, err := cfg.SessionsPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving sessions path: %w", err)
	}

	if cfg.GetStorageBackend() == config.BackendSQLite {
		db, err := storage.NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
	return storage.NewFile(path), func() {}, nil
}

// initialRoute picks the startup route: --chat beats the persisted one.
func initialRoute(cfg *config.Config) string {
	if startChat > 0 {
		return nav.RouteFor(startChat)
	}
	return cfg.GetLastRoute()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("error opening session storage: %w", err)
	}
	defer closeBackend()

	defer logger.Close()

	store := chat.Open(backend)
	m := app.New(cfg, store, initialRoute(cfg))
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
