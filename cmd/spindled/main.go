// Package main provides the spindled entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"spindle/internal/app/coordinator"
	"spindle/internal/domain/station"
	"spindle/internal/infra/config"
	"spindle/internal/infra/epd"
	"spindle/internal/infra/gpio"
	"spindle/internal/infra/logger"
	"spindle/internal/infra/mpd"
)

var (
	app        = kingpin.New("spindled", "Rotary-knob internet radio controller")
	configPath = app.Flag("config", "Path to config file").Default("config/spindle.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	listStationsCmd = app.Command("list-stations", "List configured stations and exit")
)

func init() {
	app.Command("start", "Start the controller (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: "stdout", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if command == listStationsCmd.FullCommand() {
		printStations(cfg)
		return
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Controller error: %v", err)
		os.Exit(1)
	}
}

// run executes the main controller logic. Using a separate function
// ensures defer statements execute even when returning with an error.
func run(cfg *config.Config) error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize periph host")
	}

	// Input
	if cfg.Input.Backend != "gpio" {
		return errors.Newf("unsupported input backend: %s", cfg.Input.Backend)
	}
	inputSettings, err := gpio.DecodeSettings(cfg.Input.Settings)
	if err != nil {
		return err
	}
	pins, err := gpio.OpenPins(inputSettings)
	if err != nil {
		return errors.Wrap(err, "failed to open input pins")
	}
	sampler := gpio.NewSampler(pins, inputSettings)

	// Display
	if cfg.Display.Driver != "waveshare2in13v4" {
		return errors.Newf("unsupported display driver: %s", cfg.Display.Driver)
	}
	displaySettings, err := epd.DecodeSettings(cfg.Display.Settings)
	if err != nil {
		return err
	}
	panel, err := epd.OpenPanel(displaySettings)
	if err != nil {
		return errors.Wrap(err, "failed to open display")
	}
	renderer := epd.NewRenderer(panel, displaySettings)

	// Playback daemon
	player := mpd.New(mpd.Config{
		Addr:    cfg.MPD.Addr,
		Timeout: cfg.MPD.CommandTimeout(),
	})
	defer player.Close()

	stations := cfg.StationList()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := syncPlaylist(ctx, player, stations); err != nil {
		return errors.Wrap(err, "playlist sync failed")
	}

	coord := coordinator.New(coordinator.Config{
		StatusPoll:   cfg.Coordinator.StatusPoll(),
		VolumeStep:   cfg.Coordinator.VolumeStep,
		VolumeIdle:   cfg.Coordinator.VolumeIdle(),
		ErrorOverlay: cfg.Coordinator.ErrorOverlay(),
		IdleClock:    cfg.Coordinator.IdleClock(),
		LivePreview:  cfg.Coordinator.IsLivePreview(),
		Autoplay:     cfg.Coordinator.Autoplay,
	}, stations, player, renderer, sampler.Events())

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		sampler.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		renderer.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		coord.Run(ctx)
	}()

	zlog.Info().Msgf("Controller started: stations=%d mpd=%s", stations.Len(), cfg.MPD.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	zlog.Info().Msg("Received shutdown signal...")

	cancel()
	wg.Wait()

	zlog.Info().Msg("Controller stopped")
	return nil
}

// syncPlaylist loads the station list into the daemon, retrying with
// backoff so a boot race with the daemon does not abort startup.
func syncPlaylist(ctx context.Context, player *mpd.Client, stations station.List) error {
	const maxRetries = 5
	baseDelay := time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			delay := baseDelay * time.Duration(1<<uint(i-1))
			zlog.Info().Msgf("Retrying playlist sync in %v...", delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := player.SyncPlaylist(ctx, stations); err != nil {
			lastErr = err
			zlog.Warn().Msgf("Playlist sync failed (attempt %d/%d): %v", i+1, maxRetries, err)
			continue
		}
		return nil
	}
	return errors.Wrapf(lastErr, "failed after %d attempts", maxRetries)
}

// printStations prints the configured station list.
func printStations(cfg *config.Config) {
	fmt.Println("Configured Stations:")
	for i, s := range cfg.Stations {
		fmt.Printf("  %2d: %-24s %s\n", i, s.Name, s.StreamURI)
	}
}
