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

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/config"
	"github.com/adlens/adlens/internal/loading"
	"github.com/adlens/adlens/internal/log"
	"github.com/adlens/adlens/internal/service"
	"github.com/adlens/adlens/internal/session"
	"github.com/adlens/adlens/internal/store"
	"github.com/adlens/adlens/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("adlens %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting adlens", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	tokens := session.NewFileTokenStore(config.CredentialsPath())
	signal := loading.NewSignal()
	client := api.NewClient(cfg.Server.URL, tokens, signal, logger)
	sess := session.New(client, tokens, logger)

	ctx := context.Background()
	sess.Bootstrap(ctx)

	if !sess.IsAuthenticated() {
		if err := runLoginFlow(ctx, sess); err != nil {
			return err
		}
	}

	cache, err := store.NewCache(config.CacheDir(), cfg.Server.URL)
	if err != nil {
		logger.Warn("cache unavailable, running memory-only", "error", err)
		cache, _ = store.NewCache("", cfg.Server.URL)
	}
	defer cache.Close()

	searchCtrl := service.NewSearchController(client, cache, logger, cfg.Search.PageSize)
	boardSvc := service.NewBoardService(client, cache, logger)
	brandSvc := service.NewBrandService(client, cache, logger)
	activitySvc := service.NewActivityService(client, cache, logger, cfg.Activity.PollInterval)

	notifier := tui.NewNotifier()
	unsubscribe := signal.Subscribe(notifier.LoadingChanged)
	defer unsubscribe()

	client.OnSessionExpired(func() {
		sess.Expire()
		notifier.SessionExpired()
	})

	model := tui.NewModel(searchCtrl, boardSvc, brandSvc, activitySvc, sess, client, cache, notifier)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	activitySvc.StopPolling()
	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to adlens!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var serverURL string
	for {
		fmt.Print("Enter the backend URL (e.g., https://api.adlens.example.com): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)
		if serverURL == "" {
			fmt.Println("URL cannot be empty. Please try again.")
			continue
		}
		if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
			fmt.Println("URL must start with http:// or https://. Please try again.")
			continue
		}
		break
	}

	cfg.Server.URL = strings.TrimRight(serverURL, "/")
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run adlens again to sign in.")
	return nil
}

// runLoginFlow prompts for credentials on stdin. Passwords are read
// without echo.
func runLoginFlow(ctx context.Context, sess *session.Session) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Print("Sign in or create an account? [s/c]: ")
	choice, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	register := strings.HasPrefix(strings.ToLower(strings.TrimSpace(choice)), "c")

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if register {
		fmt.Print("Name: ")
		name, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if err := sess.Register(ctx, email, string(password), strings.TrimSpace(name)); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Println("✓ Account created!")
		return nil
	}

	if err := sess.Login(ctx, email, string(password)); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Println("✓ Signed in!")
	return nil
}
