// Package main implements the agentcard CLI, which fetches the agent list from
// the Valorant game-data API and renders one PNG card per agent.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	rootpkg "tools.zach/dev/agentcard"
	"tools.zach/dev/agentcard/internal/agent"
	"tools.zach/dev/agentcard/internal/atomicfile"
	"tools.zach/dev/agentcard/internal/config"
	"tools.zach/dev/agentcard/internal/logger"
	"tools.zach/dev/agentcard/internal/paths"
	"tools.zach/dev/agentcard/internal/render"
	"tools.zach/dev/agentcard/internal/valapi"
	"tools.zach/dev/agentcard/internal/watch"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=0.1.0" ./cmd/agentcard
//
// When ldflags are not set (bare go build), resolveVersion reads the VCS info
// that Go embeds automatically.
var version = "dev"

// resolveVersion returns the build version string. If [version] was set via
// ldflags at build time it is returned as-is; otherwise VCS revision and dirty
// state embedded by the Go toolchain are used to construct a "dev+<hash>" tag.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

func main() {
	ctx, stop := signalContext(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit, so tests can drive the CLI.
// Per-agent diagnostics go to stdout; logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(paths.BinaryName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", paths.ConfigFile, "Path to the TOML config file (missing file uses defaults)")
	watchMode := flags.Bool("watch", false, "Re-render every card when a local asset changes")
	initConfig := flags.Bool("init", false, "Write the default config to -config and exit")
	showVersion := flags.Bool("version", false, "Print the version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, paths.BinaryName, resolveVersion())
		return 0
	}
	if *initConfig {
		if err := writeDefaultConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "fatal: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %s\n", *configPath)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "fatal: load config: %v\n", err)
		return 1
	}

	log, logCloser, err := logger.NewLogger(logger.Options{
		Level:     logger.ParseLevel(cfg.Log.Level),
		Console:   stderr,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	if err != nil {
		fmt.Fprintf(stderr, "fatal: init logger: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	log.Info("agentcard starting", "version", resolveVersion(), "config", *configPath, "endpoint", cfg.API.Endpoint)

	a := newApp(cfg, log, stdout)
	if *watchMode {
		return a.watchLoop(ctx)
	}
	if _, err := a.runPass(ctx); err != nil {
		logger.Fail(log, "render pass aborted", "error", err)
		return 1
	}
	return 0
}

// writeDefaultConfig writes the embedded default config to path. An
// existing file is never overwritten.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := atomicfile.Write(path, rootpkg.DefaultConfigTOML, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// ///////////////////////////////////////////////
// Render Pass
// ///////////////////////////////////////////////

// app holds what a render pass needs. It keeps nothing between passes.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	client *valapi.Client
	comp   *render.Compositor
	stdout io.Writer
}

func newApp(cfg *config.Config, log *slog.Logger, stdout io.Writer) *app {
	client := valapi.NewClient(valapi.Options{
		Timeout:   cfg.API.Timeout(),
		RetryMax:  cfg.API.RetryMax,
		UserAgent: cfg.API.UserAgent,
		Logger:    log,
	})
	comp := render.New(client, render.Options{
		Assets:      cfg.Assets.Resolved(),
		ExportDir:   cfg.Render.ExportDir,
		MinFontSize: cfg.Render.MinFontSize,
		Resample:    cfg.Render.Resample,
		Logger:      log,
	})
	return &app{cfg: cfg, log: log, client: client, comp: comp, stdout: stdout}
}

// passStats counts the outcome of one pass.
type passStats struct {
	Rendered int
	Skipped  int
	Filtered int
}

// runPass fetches the agent list and exports a card for each agent in the
// order received. A record with a missing field prints one line to stdout
// and is skipped; any other error aborts the pass.
func (a *app) runPass(ctx context.Context) (passStats, error) {
	var stats passStats
	start := time.Now()
	log := a.log.With("run", uuid.NewString())

	query := valapi.Query{Language: a.cfg.API.Language, PlayableOnly: a.cfg.API.PlayableOnly}
	records, err := a.client.FetchAgents(ctx, a.cfg.API.Endpoint, query)
	if err != nil {
		return stats, fmt.Errorf("fetch agents: %w", err)
	}
	log.Info("fetched agent list", "count", len(records))

	for _, raw := range records {
		ag, err := agent.Parse(raw)
		if err != nil {
			var mfe *agent.MissingFieldError
			if errors.As(err, &mfe) {
				fmt.Fprintln(a.stdout, mfe.Error())
				stats.Skipped++
				continue
			}
			return stats, err
		}
		if !a.cfg.Selects(ag.Name) {
			log.Debug("agent filtered out", "agent", ag.Name)
			stats.Filtered++
			continue
		}

		path, err := a.comp.Export(ctx, ag)
		if err != nil {
			return stats, fmt.Errorf("agent %q: %w", ag.Name, err)
		}
		stats.Rendered++
		log.Info("card exported", "agent", ag.Name, "path", path)
	}

	log.Info("render pass complete",
		"rendered", stats.Rendered,
		"skipped", stats.Skipped,
		"filtered", stats.Filtered,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return stats, nil
}

// ///////////////////////////////////////////////
// Watch Mode
// ///////////////////////////////////////////////

// settleDelay lets a burst of saves finish before a pass starts.
const settleDelay = 250 * time.Millisecond

// watchLoop renders once, then again after every asset change, until ctx is
// cancelled. A failed pass is logged and the loop keeps watching, so a broken
// asset can be fixed without restarting.
func (a *app) watchLoop(ctx context.Context) int {
	lock, err := acquireExportLock(a.cfg.Render.ExportDir)
	if err != nil {
		logger.Fail(a.log, "cannot lock export dir", "error", err)
		return 1
	}
	defer lock.Release()

	files := a.cfg.Assets.Resolved().Files()
	w, err := watch.New(files, watch.Options{Logger: a.log})
	if err != nil {
		logger.Fail(a.log, "cannot watch assets", "error", err)
		return 1
	}
	defer w.Close()
	if w.Polling() {
		a.log.Info("using polling mode for asset watching")
	}

	a.watchPass(ctx)
	a.log.Info("watching assets", "files", len(files))

	for {
		select {
		case <-ctx.Done():
			a.log.Info("agentcard stopping")
			return 0
		case <-w.Events():
			select {
			case <-ctx.Done():
				continue
			case <-time.After(settleDelay):
			}
			// Drop a signal that arrived while settling; this pass covers it.
			select {
			case <-w.Events():
			default:
			}
			a.log.Info("asset changed, re-rendering")
			a.watchPass(ctx)
		}
	}
}

func (a *app) watchPass(ctx context.Context) {
	if _, err := a.runPass(ctx); err != nil && ctx.Err() == nil {
		logger.Fail(a.log, "render pass aborted", "error", err)
	}
}
