package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/mmcdole/flick/internal/config"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/state"
	"github.com/mmcdole/flick/internal/tmdb"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const commandTimeout = 30 * time.Second

var openTrailer bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search TMDB and print the first page of results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a movie or show with its cast and similar titles",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var trailerCmd = &cobra.Command{
	Use:   "trailer <id>",
	Short: "Print the trailer URL of a movie or show",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrailer,
}

var themeCmd = &cobra.Command{
	Use:       "theme [Dark|Light|system]",
	Short:     "Print or set the saved theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{domain.ThemeDark, domain.ThemeLight, "system"},
	RunE:      runTheme,
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Save a TMDB API key to the config file",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireKey(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	q := tmdb.ShowsQuery{Category: category(), SearchQuery: strings.Join(args, " "), Page: 1}
	res := a.shows.GetShows(ctx, q)
	if res.Err != nil {
		return fmt.Errorf("search failed: %w", res.Err)
	}
	if len(res.Data.Results) == 0 {
		fmt.Println("No results")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "YEAR", "RATING")
	for _, m := range res.Data.Results {
		year := m.GetDescription()
		if year == "" {
			year = "-"
		}
		t.Row(strconv.Itoa(m.ID), m.GetTitle(), year, fmt.Sprintf("%.1f", m.VoteAverage))
	}
	fmt.Println(t.Render())

	if res.Data.TotalResults > len(res.Data.Results) {
		fmt.Printf("%d of %d results\n", len(res.Data.Results), res.Data.TotalResults)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireKey(); err != nil {
		return err
	}

	id, err := tmdb.ParseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	bundle, err := a.shows.GetBundle(ctx, tmdb.ShowQuery{Category: category(), ID: id})
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	d := bundle.Detail
	fmt.Printf("%s (%s)\n", d.GetTitle(), d.GetDescription())
	if d.Tagline != "" {
		fmt.Printf("%q\n", d.Tagline)
	}
	if genres := d.GenreNames(); genres != "" {
		fmt.Println(genres)
	}
	fmt.Printf("Rating: %.1f\n", d.VoteAverage)
	if d.Overview != "" {
		fmt.Println()
		fmt.Println(d.Overview)
	}
	if directors := d.Directors(); len(directors) > 0 {
		fmt.Println()
		fmt.Println("Directed by " + strings.Join(directors, ", "))
	}
	if cast := d.TopCast(5); len(cast) > 0 {
		fmt.Println()
		fmt.Println("Cast:")
		for _, c := range cast {
			fmt.Printf("  %s as %s\n", c.Name, c.Character)
		}
	}
	if len(bundle.Similar) > 0 {
		fmt.Println()
		fmt.Println("Similar:")
		for _, s := range bundle.Similar[:min(5, len(bundle.Similar))] {
			fmt.Printf("  %d  %s\n", s.ID, s.GetTitle())
		}
	}
	return nil
}

func runTrailer(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireKey(); err != nil {
		return err
	}

	if _, err := tmdb.ParseID(args[0]); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	global := state.NewGlobal(a.shows.Videos(), a.logger)
	if err := global.GetTrailerIDIn(ctx, category(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNoTrailer) {
			fmt.Println("No trailer available")
			return nil
		}
		return err
	}

	url := domain.TrailerURL(global.VideoID())
	fmt.Println(url)

	if openTrailer {
		return a.launcher.Open(url)
	}
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		current, ok := a.store.Theme()
		if !ok || current == "" {
			current = domain.ThemeDark
		}
		fmt.Println(current)
		return nil
	}

	theme := state.NewTheme(a.store, domain.SchemeDetectorFunc(lipgloss.HasDarkBackground), nil, a.logger)
	switch name := args[0]; {
	case strings.EqualFold(name, "system"):
		err = theme.CheckSystemTheme()
	case strings.EqualFold(name, domain.ThemeDark):
		err = theme.SetTheme(domain.ThemeDark)
	case strings.EqualFold(name, domain.ThemeLight):
		err = theme.SetTheme(domain.ThemeLight)
	default:
		return fmt.Errorf("unknown theme %q (want Dark, Light or system)", name)
	}
	if err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	fmt.Printf("Theme set to %s\n", theme.Current())
	return nil
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println("Welcome to flick!")
	fmt.Println()
	fmt.Println("flick needs a TMDB API key (v3 auth).")
	fmt.Println("Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	key, err := readAPIKey()
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	if key == "" {
		return fmt.Errorf("API key is required")
	}

	if err := config.SaveAPIKey(cfgFile, key); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run flick again to start the application.")
	return nil
}

// readAPIKey prompts without echo on a terminal and reads one line otherwise,
// so `echo $KEY | flick setup` works
func readAPIKey() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	fmt.Print("API key: ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(keyBytes)), nil
}
