package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/caldwell/strand/internal/config"
	"github.com/caldwell/strand/internal/feed"
	"github.com/caldwell/strand/internal/feedapi"
	"github.com/caldwell/strand/internal/log"
	"github.com/caldwell/strand/internal/nav"
	"github.com/caldwell/strand/internal/store"
	"github.com/caldwell/strand/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var startPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&startPath, "path", nav.BasePath, "initial location, e.g. /post/some-slug")
	flag.Parse()

	if showVersion {
		fmt.Printf("strand %s\n", Version)
		return
	}

	if err := run(startPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(startPath string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting strand", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("strand requires an interactive terminal")
	}

	pageStore, err := store.NewPageStore(cfg.Cache.Dir, cfg.Feed.URL, logger)
	if err != nil {
		logger.Warn("page cache unavailable, running without it", "error", err)
		pageStore, _ = store.NewPageStore("", "", logger)
	}
	defer pageStore.Close()

	client := feedapi.NewClient(cfg.Feed.URL, cfg.Feed.PageSize, logger)
	svc := feed.NewService(client, pageStore, logger)

	model := tui.NewModel(svc, startPath, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when no feed URL is configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to strand!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var feedURL string
	for {
		fmt.Print("Enter your feed URL (e.g., https://posts.example.com): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		feedURL = strings.TrimSpace(input)
		if feedURL != "" {
			break
		}
		fmt.Println("Feed URL cannot be empty. Please try again.")
	}

	cfg.Feed.URL = feedURL
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run strand again to start browsing.")

	return nil
}
