package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/lcrowe/marquee/internal/api"
	"github.com/lcrowe/marquee/internal/auth"
	"github.com/lcrowe/marquee/internal/catalog"
	"github.com/lcrowe/marquee/internal/config"
	"github.com/lcrowe/marquee/internal/log"
	"github.com/lcrowe/marquee/internal/service"
	"github.com/lcrowe/marquee/internal/store"
	"github.com/lcrowe/marquee/internal/tmdb"
	"github.com/lcrowe/marquee/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; environment overrides still apply through viper
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("marquee requires an interactive terminal")
	}

	// Backend client and warm-start cache
	client := api.NewClient(cfg.Backend.URL, cfg.Backend.Token, logger)

	st, err := store.NewCatalogStore(config.DefaultCachePath(), cfg.Backend.URL)
	if err != nil {
		logger.Warn("cache unavailable, running without warm start", "error", err)
		st, _ = store.NewCatalogStore("", cfg.Backend.URL)
	}
	defer st.Close()

	// Restore a saved session if we have one
	authSvc := auth.NewService(client, logger)
	if cfg.Backend.Token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authSvc.Restore(ctx, cfg.Backend.Token); err != nil {
			logger.Warn("saved session invalid, continuing unauthenticated", "error", err)
		}
		cancel()
	}

	// Create services
	catalogSvc := service.NewCatalogService(client, st, logger)
	lookupSvc := service.NewLookupService(client, st, logger)
	statsSvc := service.NewStatsService(client, st, logger)

	// Optional metadata enrichment
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, logger)

	ctrl := catalog.NewController(catalogSvc, authSvc, logger, catalog.Options{
		ItemsPerPage: cfg.Catalog.PageSize,
		Debounce:     time.Duration(cfg.Catalog.DebounceMs) * time.Millisecond,
	})
	defer ctrl.Close()

	// Create TUI model
	model := tui.NewModel(ctrl, lookupSvc, statsSvc, catalogSvc, authSvc, tmdbClient)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	// Persist the session token so the next run can restore it
	if tok := authSvc.Token(); tok != cfg.Backend.Token {
		if err := config.SaveToken(tok); err != nil {
			logger.Warn("failed to save session token", "error", err)
		}
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	// Loop until we get a reachable backend URL
	var backendURL string
	for {
		fmt.Print("Enter your catalog backend URL (e.g., http://localhost:8080/api): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		backendURL = strings.TrimSpace(input)

		if backendURL == "" {
			fmt.Println("Backend URL cannot be empty. Please try again.")
			continue
		}

		if err := probeBackend(backendURL, logger); err != nil {
			fmt.Printf("\n✗ Could not reach backend: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}

		fmt.Println("✓ Backend reachable")
		break
	}

	cfg.Backend.URL = backendURL

	// Optional admin login; the catalog browses fine without it
	fmt.Print("Log in now for admin features? [y/N]: ")
	answer, _ := reader.ReadString('\n')
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		token, err := setupLogin(backendURL, reader, logger)
		if err != nil {
			fmt.Printf("✗ Login failed: %v\n", err)
			fmt.Println("You can log in later from inside the app.")
		} else {
			cfg.Backend.Token = token
			fmt.Println("✓ Logged in")
		}
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run marquee again to start the application.")

	return nil
}

// probeBackend verifies the backend answers the genres lookup
func probeBackend(backendURL string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := api.NewClient(backendURL, "", logger)
	_, err := client.FetchGenres(ctx)
	return err
}

// setupLogin prompts for credentials and returns a session token
func setupLogin(backendURL string, reader *bufio.Reader, logger *slog.Logger) (string, error) {
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := api.NewClient(backendURL, "", logger)
	session, err := client.Login(ctx, email, string(passBytes))
	if err != nil {
		return "", err
	}
	return session.Token, nil
}
