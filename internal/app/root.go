// Package app wires the hondana commands. The root command launches
// the interactive journal; sub-commands cover the same operations for
// scripts and non-TTY use.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/cache"
	"github.com/hondana-dev/hondana/internal/chat"
	"github.com/hondana-dev/hondana/internal/config"
	"github.com/hondana-dev/hondana/internal/identity"
	"github.com/hondana-dev/hondana/internal/journal"
	"github.com/hondana-dev/hondana/internal/library"
	"github.com/hondana-dev/hondana/internal/mirror"
	"github.com/hondana-dev/hondana/internal/store"
	"github.com/hondana-dev/hondana/internal/util"
)

var (
	cfg      *config.Config
	lib      *library.Service
	cacheMgr *cache.Manager
	idn      *identity.Client
	chatb    *chat.Builder

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagOffline       bool
)

// errOffline fails every write when running without a remote store.
var errOffline = errors.New("offline mode: remote writes disabled")

var rootCmd = &cobra.Command{
	Use:   "hondana",
	Short: "A shared book journal backed by a remote document store",
	Long: `hondana keeps a reading journal of books with quotes, reflections and
keywords, mirrored locally from a remote document collection.

Run 'hondana' with no arguments to open the interactive journal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagNoInteractive || !util.IsTTY() {
			return cmd.Help()
		}
		return runJournal()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/hondana/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "Use the local snapshot only, disable remote writes")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		if flagConfig != "" {
			os.Setenv("HONDANA_CONFIG", flagConfig)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		cacheMgr = cache.New(cfg.Defaults.CacheDir)
		chatb = chat.NewBuilder(cfg.Chat.BaseURL, cfg.Chat.ByteBudget, cfg.Chat.Compress)
		idn = identity.NewClient(cfg.Identity.APIKey, cfg.Identity.BaseURL)

		st := newStore()
		timeout := time.Duration(cfg.Defaults.StartupTimeout) * time.Second
		lib = library.New(st, mirror.New(), cacheMgr, cfg.Remote.BooksCollection(), timeout)
		return nil
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newInfoCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newExportCmd(),
		newProfileCmd(),
		newChatCmd(),
		newVersionCmd(),
	)
}

// newStore picks the store backend: the HTTP client when a remote is
// configured, otherwise a failing in-memory store that forces the
// snapshot fallback path.
func newStore() store.Store {
	if flagOffline || cfg.Remote.BaseURL == "" {
		if cfg.Remote.BaseURL == "" && !flagOffline {
			warn("no remote configured (remote.base_url) — running offline")
		}
		mem := store.NewMemory()
		mem.Err = errOffline
		return mem
	}
	return store.NewClient(cfg.Remote.Token, cfg.Remote.BaseURL, cfg.Remote.Project)
}

// profileDir is where the anonymous reader profile lives, next to the
// config file.
func profileDir() string {
	return filepath.Dir(config.DefaultPath())
}

// loadOrCreateProfile returns the stored reader profile, creating one
// with a default display name on first use.
func loadOrCreateProfile() (*identity.Profile, error) {
	p, err := identity.LoadProfile(profileDir())
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	return identity.NewProfile(profileDir(), "匿名読者")
}

// runJournal starts the interactive journal TUI.
func runJournal() error {
	profile, err := loadOrCreateProfile()
	if err != nil {
		return err
	}

	m := journal.New(journal.Options{
		Library:      lib,
		Identity:     idn,
		Profile:      profile,
		ProfileDir:   profileDir(),
		Chat:         chatb,
		GatePassword: cfg.Gate.Password,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
