// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reelhub/internal/browse"
	"reelhub/internal/config"
	"reelhub/internal/history"
	"reelhub/internal/httputil"
	"reelhub/internal/logging"
	"reelhub/internal/provider"
	"reelhub/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// defaultDownloadDir marks a bare --download flag: use the configured
// download directory.
const defaultDownloadDir = "default"

// Global flags
var (
	flagPlatform  string
	flagPlayer    string
	flagDownload  string
	flagJSON      bool
	flagDebug     bool
	flagNoHistory bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "reelhub [query]",
	Short: "Browse short dramas, anime and comics from the terminal",
	Long: `Reelhub browses eight streaming and comic platforms through one API.
Search a platform, pick a title and an episode, then play it with mpv/vlc
or download it. Run "reelhub serve" to expose the same catalogue as JSON.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              searchRun,
	SilenceUsage:      true,
}

// Execute runs the root command. An interrupt cancels the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagPlatform, "platform", "p", "", "Platform code (see \"reelhub platforms\")")
	flags.StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	flags.StringVarP(&flagDownload, "download", "d", "", "Download to path instead of playing")
	flags.Lookup("download").NoOptDefVal = defaultDownloadDir
	flags.BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
	flags.BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	flags.BoolVar(&flagNoHistory, "no-history", false, "Do not read or record watch history")

	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagPlatform != "" {
		cfg.Platform = flagPlatform
	}
	if flagNoHistory {
		cfg.History = false
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Init(os.Stderr, cfg.Debug)
	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	logging.Debugf(format, args...)
}

// app bundles the dependencies a command works with.
type app struct {
	client  *httputil.Client
	svc     *browse.Service
	tracker *history.Tracker
	store   store.Store
}

// newApp wires the HTTP client, the platform registry and the history
// tracker from cfg.
func newApp() (*app, error) {
	if err := cfg.RequireAPI(); err != nil {
		return nil, err
	}

	client := httputil.New(time.Duration(cfg.Timeout) * time.Second)
	reg := provider.Defaults(cfg.APIBaseURL, client, provider.Options{ComicType: cfg.ComicType})

	s, tracker, err := openTracker()
	if err != nil {
		return nil, err
	}

	return &app{
		client:  client,
		svc:     browse.New(reg, client, cfg.APIBaseURL),
		tracker: tracker,
		store:   s,
	}, nil
}

// openTracker opens the configured state store. With history disabled the
// state lives in memory for this run only.
func openTracker() (store.Store, *history.Tracker, error) {
	kind := cfg.Storage
	dir := ""
	if cfg.History {
		var err error
		dir, err = config.DataDir()
		if err != nil {
			return nil, nil, err
		}
	} else {
		kind = config.StorageMemory
	}

	s, err := store.Open(kind, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", kind, err)
	}
	debugf("state store: %s %s", kind, dir)

	return s, history.New(s, history.WithDefaultPlatform(cfg.Platform)), nil
}

// Close releases the state store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logging.Warn("closing state store", "err", err)
	}
}

// platform returns the platform to browse: the --platform flag, else the
// saved active platform, else the configured default.
func (a *app) platform(cmd *cobra.Command) (string, error) {
	code := flagPlatform
	if code == "" {
		var err error
		code, err = a.tracker.ActivePlatform(cmd.Context())
		if err != nil {
			return "", err
		}
	}
	if !a.svc.Has(code) {
		return "", fmt.Errorf("unknown platform %q (see \"reelhub platforms\")", code)
	}
	return code, nil
}
