package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mmcdole/flick/internal/config"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/launcher"
	"github.com/mmcdole/flick/internal/log"
	"github.com/mmcdole/flick/internal/querycache"
	"github.com/mmcdole/flick/internal/service"
	"github.com/mmcdole/flick/internal/state"
	"github.com/mmcdole/flick/internal/store"
	"github.com/mmcdole/flick/internal/tmdb"
	"github.com/mmcdole/flick/internal/tui"
	"github.com/mmcdole/flick/internal/tui/styles"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	cfgFile string
	useTV   bool
)

var rootCmd = &cobra.Command{
	Use:     "flick",
	Short:   "Browse TMDB movies and shows from the terminal",
	Version: Version,
	Args:    cobra.NoArgs,
	RunE:    runTUI,

	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/flick/config.yaml)")

	for _, c := range []*cobra.Command{searchCmd, showCmd, trailerCmd} {
		c.Flags().BoolVar(&useTV, "tv", false, "look up TV shows instead of movies")
	}
	trailerCmd.Flags().BoolVarP(&openTrailer, "open", "o", false, "open the trailer in a player")

	rootCmd.AddCommand(searchCmd, showCmd, trailerCmd, themeCmd, setupCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired services every command shares
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.PreferenceStore
	shows    *service.ShowService
	search   *service.SearchService
	launcher *launcher.Launcher
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	prefs, err := store.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, store: prefs}
	if !cfg.IsConfigured() {
		return a, nil
	}

	client, err := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithLogger(logger),
	)
	if err != nil {
		prefs.Close()
		return nil, fmt.Errorf("failed to create TMDB client: %w", err)
	}

	cache, err := querycache.New(cfg.Cache.Size, cfg.Cache.StaleTime, querycache.WithLogger(logger))
	if err != nil {
		prefs.Close()
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	a.search = service.NewSearchService(logger)
	a.shows = service.NewShowService(client, cache, a.search, logger)
	a.launcher = launcher.New(cfg.Player.Command, cfg.Player.Args, logger)
	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close preferences", "error", err)
	}
}

// requireKey fails commands that need the API when no key is configured
func (a *app) requireKey() error {
	if !a.cfg.IsConfigured() {
		return fmt.Errorf("no TMDB API key configured, run `flick setup`")
	}
	return nil
}

func category() domain.Category {
	if useTV {
		return domain.CategoryTV
	}
	return domain.CategoryMovie
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.IsConfigured() {
		return runSetup(cmd, args)
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("the browser needs a terminal, try `flick search` instead")
	}

	a.logger.Info("starting flick", "version", Version)

	// Ask the terminal for its background before Bubble Tea owns stdin
	prefersDark := lipgloss.HasDarkBackground()
	detector := domain.SchemeDetectorFunc(func() bool { return prefersDark })

	doc := styles.NewDocument()
	theme := state.NewTheme(a.store, detector, doc, a.logger)
	global := state.NewGlobal(a.shows.Videos(), a.logger)

	model := tui.NewModel(tui.Options{
		Shows:       a.shows,
		Search:      a.search,
		Theme:       theme,
		Global:      global,
		Document:    doc,
		Launcher:    a.launcher,
		Category:    domain.Category(a.cfg.UI.DefaultCategory),
		List:        domain.ListType(a.cfg.UI.DefaultList),
		CellWidthPx: a.cfg.UI.CellWidthPx,
		Logger:      a.logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
