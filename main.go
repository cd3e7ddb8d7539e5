package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"skyshield.klederson.com/internal/app"
	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/feed"
	"skyshield.klederson.com/internal/rf"
	"skyshield.klederson.com/internal/server"
	"skyshield.klederson.com/web"
)

var (
	flagConfig   string
	flagDemo     bool
	flagFeed     string
	flagRF       bool
	flagAdapter  string
	flagLogFile  string
	flagLogLevel string

	flagAddr      string
	flagSimulate  bool
	flagHeartbeat time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skyshield",
		Short: "SkyShield - terminal radar for drone and RF contacts",
		Long: `SkyShield draws live track events on a sweeping terminal radar, locks onto
threats and lets the operator tag them with passive actions.

By default it connects to a SkyShield backend over WebSocket. Use --demo for
the self-contained standalone radar, or --rf to add passive Bluetooth/WiFi
sightings (requires rf.confirm_legal: true in the config file).`,
		SilenceUsage: true,
		RunE:         runScope,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (TUI mode logs here, default skyshield.log)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run the standalone demo radar (no backend required)")
	rootCmd.Flags().StringVar(&flagFeed, "feed", "", "Backend WebSocket URL (empty string disables the feed)")
	rootCmd.Flags().BoolVar(&flagRF, "rf", false, "Add passive RF sightings (BLE, classic Bluetooth, WiFi)")
	rootCmd.Flags().StringVar(&flagAdapter, "adapter", "", "Bluetooth adapter to use")

	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the browser radar, the detections API and the /ws feed",
		SilenceUsage: true,
		RunE:         runServe,
	}
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :8000)")
	serveCmd.Flags().BoolVar(&flagSimulate, "simulate", true, "Run the built-in target simulator")
	serveCmd.Flags().DurationVar(&flagHeartbeat, "heartbeat", 0, "Heartbeat interval (default 30s)")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file over the preset for variant (empty keeps
// the file's own choice) and applies the shared flags.
func loadConfig(variant config.Variant) (*config.Config, error) {
	cfg, err := config.LoadVariant(flagConfig, variant)
	if err != nil {
		return nil, err
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

func runScope(cmd *cobra.Command, args []string) error {
	var variant config.Variant
	if flagDemo {
		variant = config.VariantStandalone
	}
	cfg, err := loadConfig(variant)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("feed") {
		cfg.Feed.URL = flagFeed
	}
	if flagRF {
		cfg.RF.Enabled = true
	}
	if flagAdapter != "" {
		cfg.RF.Adapter = flagAdapter
	}

	// The alternate screen owns the terminal, so logs go to the file.
	closer, err := config.SetupLogging(cfg.Log, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	sources, err := buildSources(cfg)
	if err != nil {
		return err
	}

	model := app.New(cfg.Scope, feed.Multi(sources))
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFPS(config.TargetFPS),
	)

	model.StartSources(p)
	defer model.StopSources()

	_, err = p.Run()
	return err
}

// buildSources picks the event sources for the configured variant.
func buildSources(cfg *config.Config) ([]feed.Source, error) {
	var sources []feed.Source
	if cfg.Scope.Variant == config.VariantStandalone {
		sc := feed.StandaloneScenario()
		if cfg.Scope.JitterInterval > 0 {
			sc.Interval = cfg.Scope.JitterInterval
		}
		sources = append(sources, feed.NewSynthetic(sc, time.Now().UnixNano()))
	} else if cfg.Feed.URL != "" {
		sources = append(sources, feed.NewWebSocket(cfg.Feed.URL, cfg.Feed.ReconnectDelay))
	}

	rfSources, err := rf.Sources(cfg.RF)
	switch {
	case err == nil:
		sources = append(sources, rfSources...)
	case len(sources) == 0:
		return nil, err
	default:
		fmt.Fprintf(os.Stderr, "RF sensing disabled: %v\n", err)
	}

	if len(sources) == 0 {
		return nil, errors.New("no event source: set --feed, --demo or --rf")
	}
	return sources, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if cmd.Flags().Changed("simulate") {
		cfg.Server.Simulate = flagSimulate
	}
	if flagHeartbeat > 0 {
		cfg.Server.HeartbeatInterval = flagHeartbeat
	}

	closer, err := config.SetupLogging(cfg.Log, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, web.Static()).Run(ctx)
}
