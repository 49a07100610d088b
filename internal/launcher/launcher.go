// Package launcher opens trailer URLs outside the terminal.
package launcher

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // command path, or "open-a:AppName" for macOS apps
	openFlags []string // flags for the macOS open command
}

// Players able to stream a YouTube watch URL, per platform, in preference order
var candidates = map[string][]launchPath{
	"darwin":  {{path: "open-a:IINA", openFlags: []string{"-n"}}, {path: "mpv"}},
	"linux":   {{path: "mpv"}, {path: "celluloid"}, {path: "haruna"}},
	"windows": {{path: "mpv"}},
}

// Launcher opens URLs in the configured player, a detected player, or the
// system default handler
type Launcher struct {
	command string
	args    []string
	logger  *slog.Logger

	// replaced in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
	goos     string
}

// New creates a Launcher. An empty command means auto-detect.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		goos: runtime.GOOS,
	}
}

// Open launches url without waiting for the player to exit
func (l *Launcher) Open(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	// Tier 1: configured player
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		l.logger.Info("launching configured player", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}

	// Tier 2: detected player
	for _, lp := range candidates[l.goos] {
		if err := l.tryPath(lp, url); err != nil {
			l.logger.Debug("launch path not available", "path", lp.path, "error", err)
			continue
		}
		l.logger.Info("launched with detected player", "path", lp.path)
		return nil
	}

	// Tier 3: system default (usually the browser)
	return l.openDefault(url)
}

func (l *Launcher) tryPath(lp launchPath, url string) error {
	if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
		if l.goos != "darwin" {
			return fmt.Errorf("open -a needs macOS")
		}
		args := append(append([]string{}, lp.openFlags...), "-a", app, url)
		return l.start("open", args...)
	}

	if _, err := l.lookPath(lp.path); err != nil {
		return err
	}
	return l.start(lp.path, url)
}

func (l *Launcher) openDefault(url string) error {
	l.logger.Info("launching with system default", "os", l.goos, "url", url)
	switch l.goos {
	case "darwin":
		return l.start("open", url)
	case "windows":
		return l.start("cmd", "/c", "start", "", url)
	default:
		return l.start("xdg-open", url)
	}
}
