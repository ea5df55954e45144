// Package main provides inputmon, a hardware debug tool that prints
// every debounced input event decoded from the configured pins.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	zlog "github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"spindle/internal/domain/input"
	"spindle/internal/infra/config"
	"spindle/internal/infra/gpio"
	"spindle/internal/infra/logger"
)

var (
	app        = kingpin.New("inputmon", "Print decoded input events")
	configPath = app.Flag("config", "Path to config file").Default("config/spindle.yaml").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := logger.Init(logger.Config{Output: "stderr", Level: "debug"}); err != nil {
		panic(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if _, err := host.Init(); err != nil {
		zlog.Fatal().Msgf("Failed to initialize periph host: %v", err)
	}

	settings, err := gpio.DecodeSettings(cfg.Input.Settings)
	if err != nil {
		zlog.Fatal().Msgf("Bad input settings: %v", err)
	}
	pins, err := gpio.OpenPins(settings)
	if err != nil {
		zlog.Fatal().Msgf("Failed to open pins: %v", err)
	}

	sampler := gpio.NewSampler(pins, settings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sampler.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Waiting for input events, Ctrl-C to stop")
	for {
		select {
		case <-sigCh:
			return
		case ev := <-sampler.Events():
			printEvent(ev)
		}
	}
}

func printEvent(ev input.Event) {
	switch ev.Kind {
	case input.RotateCW, input.RotateCCW:
		fmt.Printf("%s %s\n", ev.At.Format("15:04:05.000"), ev.Kind)
	default:
		fmt.Printf("%s %s %s\n", ev.At.Format("15:04:05.000"), ev.Kind, ev.Button)
	}
}
