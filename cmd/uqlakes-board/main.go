package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/uq-transit/uqlakes-board/board"
	"github.com/uq-transit/uqlakes-board/config"
	"github.com/uq-transit/uqlakes-board/gtfs"
	"github.com/uq-transit/uqlakes-board/gtfsrt"
	"github.com/uq-transit/uqlakes-board/internal/logging"
	"github.com/uq-transit/uqlakes-board/prompt"
	"github.com/uq-transit/uqlakes-board/render"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (built-in defaults apply when omitted)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stderr, slog.LevelInfo)

	if err := run(*configPath, logger); err != nil {
		if !errors.Is(err, prompt.ErrAttemptsExhausted) {
			logging.LogError(logger, "tracker exited", err)
		}
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	idx, err := gtfs.Load(cfg.Static.DataDir, cfg.Static.StopNamePattern)
	if err != nil {
		return fmt.Errorf("load static schedule: %w", err)
	}
	logging.LogOperation(logger, "static_schedule_loaded",
		slog.String("target_stop", idx.TargetStop.ID),
		slog.String("target_stop_name", idx.TargetStop.Name),
		slog.Int("routes", len(idx.Routes)),
		slog.Int("stop_times", len(idx.StopTimes)))

	timeout := time.Duration(cfg.Realtime.TimeoutMS) * time.Millisecond
	client := gtfsrt.NewClient(cfg.Realtime.BaseURL, timeout)
	holder := gtfsrt.NewHolder()
	cache := gtfsrt.NewCacheWriter(cfg.Realtime.CacheDir, logger)
	refresher := gtfsrt.NewRefresher(client, holder, cache, idx.RouteIDs(),
		time.Duration(cfg.Realtime.RefreshIntervalSeconds)*time.Second, timeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	if err := refresher.RefreshOnce(ctx); err != nil {
		// The board still works from the static schedule alone; every row
		// simply reads "On Time" until a fetch succeeds.
		logging.LogError(logger, "initial realtime fetch failed", err)
	}
	cancel()

	refresher.Start()
	defer refresher.Shutdown()

	return queryLoop(os.Stdin, os.Stdout, cfg, idx, holder)
}

func queryLoop(in io.Reader, out io.Writer, cfg config.AppConfig, idx *gtfs.ScheduleIndex, holder *gtfsrt.Holder) error {
	p := prompt.New(in, out, cfg.Board.MaxPromptAttempts)
	fmt.Fprintln(out, "Welcome to the UQ Lakes station bus tracker!")

	for {
		date, err := p.AskDate()
		if err != nil {
			return err
		}
		at, err := p.AskTime()
		if err != nil {
			return err
		}
		route, err := p.AskRoute(idx.RouteShortForms())
		if err != nil {
			return err
		}

		arrivals, err := board.Resolve(idx, date, at, cfg.Board.LookaheadMinutes)
		if err != nil {
			return err
		}
		rows := board.Correlate(arrivals, holder.Current(), idx.TargetStop.ID, route)
		if err := render.Table(out, rows); err != nil {
			return err
		}

		again, err := p.AskAgain()
		if err != nil {
			return err
		}
		if !again {
			fmt.Fprintln(out, "Thanks for using the UQ Lakes Station bus tracker!")
			return nil
		}
	}
}
