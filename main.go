package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/app"
	"github.com/miosa/tunes/client"
	"github.com/miosa/tunes/config"
	"github.com/miosa/tunes/library"
	"github.com/miosa/tunes/logging"
	"github.com/miosa/tunes/style"
)

var version = "dev"

// demoLatency makes the demo catalogue page in like a remote library would.
const demoLatency = 80 * time.Millisecond

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.tunes/profiles/<name>)")
	devFlag := flag.Bool("dev", false, "Dev mode (alias for --profile dev, debug logging)")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	libraryFlag := flag.String("library", "", "Music directory to browse")
	serverFlag := flag.String("server", "", "Library server URL")
	openFlag := flag.String("open", "", "Share link to open, e.g. tunes://track/<album>/<no>")
	demoFlag := flag.Bool("demo", false, "Browse a generated demo catalogue")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tunes %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		// lipgloss honours NO_COLOR when it detects the color profile.
		os.Setenv("NO_COLOR", "1")
	}

	profile := *profileFlag
	if *devFlag {
		profile = "dev"
	}
	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".tunes")
	if profile != "" {
		profileDir = filepath.Join(profileDir, "profiles", profile)
	}

	cfg := config.Load(profileDir)

	level := logging.ParseLevel(cfg.LogLevel)
	if *devFlag {
		level = slog.LevelDebug
	}
	closeLog, err := logging.Open(profileDir, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tunes: %v\n", err)
		logging.Discard()
	} else {
		defer closeLog()
	}

	// A saved theme wins; otherwise match the terminal background before any
	// rendering.
	if cfg.Theme == "" || !style.SetTheme(cfg.Theme) {
		if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
			style.SetTheme("dark")
		} else {
			style.SetTheme("light")
		}
	}

	src := pickSource(cfg, *serverFlag, *libraryFlag, *demoFlag)
	slog.Info("starting", "version", version, "profile", profileDir, "source", src.Name())

	m := app.New(src, app.Options{
		Config:     cfg,
		ProfileDir: profileDir,
		Version:    version,
		OpenLink:   *openFlag,
	})

	// AltScreen and mouse mode are set on the View the model returns.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "tunes: %v\n", err)
		os.Exit(1)
	}
}

// pickSource chooses the catalogue: flags first, then the environment, then
// the settings file. Nothing configured means the demo catalogue.
func pickSource(cfg config.Config, server, dir string, demo bool) library.Source {
	if demo {
		return library.NewDemo(library.WithLatency(demoLatency))
	}
	if server == "" {
		server = os.Getenv("TUNES_URL")
	}
	if server == "" && dir == "" {
		server = cfg.ServerURL
	}
	if server != "" {
		c := client.New(server)
		token := os.Getenv("TUNES_TOKEN")
		if token == "" {
			token = cfg.Token
		}
		if token != "" {
			c.SetToken(token)
		}
		return c
	}
	if dir == "" {
		dir = cfg.LibraryDir
	}
	if dir != "" {
		return library.NewScanner(os.DirFS(dir), dir, logging.For("library"))
	}
	return library.NewDemo(library.WithLatency(demoLatency))
}
