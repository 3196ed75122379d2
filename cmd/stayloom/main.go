package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/browser"
	"github.com/adriagisbert/stayloom/internal/selfupdate"
	"github.com/adriagisbert/stayloom/internal/session"
	"github.com/adriagisbert/stayloom/internal/store"
	"github.com/adriagisbert/stayloom/internal/tui"
	"github.com/adriagisbert/stayloom/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// sessionFilePath returns the session file location, honoring
// STAYLOOM_SESSION_FILE for tests and multi-account setups.
func sessionFilePath() (string, error) {
	if p := os.Getenv("STAYLOOM_SESSION_FILE"); p != "" {
		return p, nil
	}
	return session.DefaultPath()
}

func run() error {
	apiURL := os.Getenv("STAYLOOM_API_URL")
	if apiURL == "" {
		apiURL = "https://api.stayloom.app"
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("stayloom " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "terms":
			return openLegal("terms")
		case "privacy":
			return openLegal("privacy")
		case "faq":
			return openLegal("faq")
		case "logout":
			return runLogout()
		case "update":
			return runUpdate()
		case "--update-done":
			if len(os.Args) >= 4 {
				printUpdateSuccess(os.Args[2], os.Args[3])
			}
			return nil
		}
	}

	path, err := sessionFilePath()
	if err != nil {
		return err
	}
	sessions := session.NewFile(path)

	// The session store is also the token source, so logout takes effect on
	// the very next request.
	c := client.New(apiURL, sessions)

	users := store.NewUserStore(c, sessions)
	accommodations := store.NewAccommodationStore(c, sessions)
	bookings := store.NewBookingStore(c)
	searches := store.NewSearchStore(c)

	app := tui.NewApp(sessions, users, accommodations, bookings, searches)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout() error {
	path, err := sessionFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := session.NewFile(path).Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	fmt.Print(`stayloom — find, book and publish places to stay, from your terminal

usage:
  stayloom            launch the app
  stayloom logout     forget the stored session
  stayloom update     self-update to the latest release
  stayloom version    print the version
  stayloom terms      open the terms of service in your browser
  stayloom privacy    open the privacy policy in your browser
  stayloom faq        open the FAQ in your browser

environment:
  STAYLOOM_API_URL        API base URL (default https://api.stayloom.app)
  STAYLOOM_SESSION_FILE   session file (default ~/.stayloom/session.json)
`)
}

func openLegal(page string) error {
	url := "https://stayloom.app/" + page
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}

func runUpdate() error {
	if version == "dev" {
		fmt.Println("dev build — install a release to enable updates")
		return nil
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("runUpdate: find executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("runUpdate: resolve symlinks: %w", err)
	}

	updater := &selfupdate.Updater{
		Repo:   "adriagisbert/stayloom",
		Binary: "stayloom",
		Client: &http.Client{Timeout: 15 * time.Second},
	}

	ctx := context.Background()
	rel, err := updater.Latest(ctx)
	if err != nil {
		return err
	}

	current := strings.TrimPrefix(version, "v")
	if !rel.NewerThan(current) {
		fmt.Printf("stayloom v%s is up to date\n", current)
		return nil
	}

	if err := updater.Install(ctx, rel, execPath); err != nil {
		return err
	}

	// Re-exec into the new binary so its updated code prints the success
	// message; the running process still has the old code in memory.
	execErr := syscall.Exec(execPath, []string{"stayloom", "--update-done", "v" + current, "v" + rel.Version}, os.Environ())
	if execErr != nil {
		// Fallback if exec fails (e.g., Windows).
		printUpdateSuccess("v"+current, "v"+rel.Version)
	}
	return nil
}

func printUpdateSuccess(from, to string) {
	fmt.Printf("stayloom updated %s -> %s\n", from, to)
}
