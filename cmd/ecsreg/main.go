package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/ecsreg/internal/config"
	"github.com/l1jgo/ecsreg/internal/core/ecs"
	"github.com/l1jgo/ecsreg/internal/core/event"
	"github.com/l1jgo/ecsreg/internal/data"
	"github.com/l1jgo/ecsreg/internal/scripting"
	"github.com/l1jgo/ecsreg/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var printer = message.NewPrinter(language.English)

func printBanner(name, runID string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            ecsreg  v0.1.0                 \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mregistry:\033[0m %s \033[90m(run %s)\033[0m\n\n", name, runID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := printer.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Frame driver ──────────────────────────────────────────────────

func run() error {
	cfgPath := flag.String("config", "", "config file (default $ECSREG_CONFIG or config/ecsreg.toml)")
	profMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *profMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profMode)
	}

	// 1. Load config
	path := *cfgPath
	if path == "" {
		path = "config/ecsreg.toml"
		if p := os.Getenv("ECSREG_CONFIG"); p != "" {
			path = p
		}
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	runID := uuid.NewString()
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", runID))

	printBanner(cfg.Registry.Name, runID)

	// 3. Build the registry and load data
	world := ecs.NewWorld(log.Named("ecs"))
	bus := event.NewBus()
	world.SetObserver(event.NewRecorder(bus))
	debugLog := system.NewDebugLog(bus, log.Named("events"))

	printSection("data")
	components, err := loadOptional(cfg.Data.Components, data.LoadComponentTable)
	if err != nil {
		return fmt.Errorf("load components: %w", err)
	}
	if components != nil {
		if err := components.Install(world); err != nil {
			return err
		}
		printStat("components", components.Count())
	}

	types, err := loadOptional(cfg.Data.Types, data.LoadTypeTable)
	if err != nil {
		return fmt.Errorf("load types: %w", err)
	}
	if types != nil {
		if err := types.Install(world); err != nil {
			return err
		}
		printStat("types", types.Count())
	}

	// 4. Lua scripts
	luaEngine, err := scripting.NewEngine(cfg.Data.Scripts, world, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")
	printStat("entities", world.Len())
	printStat("groups", len(world.Groups()))
	fmt.Println()

	// 5. Built-in systems
	if err := world.AddUpdateSystem(system.NewEventDispatchSystem(bus)); err != nil {
		return err
	}
	if err := world.AddUpdateSystem(system.NewCleanupSystem(world, log)); err != nil {
		return err
	}
	if err := world.AddUpdateSystem(system.NewHandlePruneSystem(luaEngine)); err != nil {
		return err
	}

	// 6. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Frame.TickRate)
	defer ticker.Stop()

	printSection("running")
	printReady(fmt.Sprintf("update: %s", strings.Join(world.UpdateSystems(), ", ")))
	printReady(fmt.Sprintf("render: %s", strings.Join(world.RenderSystems(), ", ")))
	printReady(fmt.Sprintf("frame loop started (tick: %s)", cfg.Frame.TickRate))
	fmt.Println()

	frames := 0
	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			world.RunUpdate(now.Sub(last))
			world.RunRender()
			last = now
			frames++
			if cfg.Frame.MaxFrames > 0 && frames >= cfg.Frame.MaxFrames {
				log.Info("frame limit reached", zap.Int("frames", frames))
				report(world, debugLog, frames)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			report(world, debugLog, frames)
			return nil
		}
	}
}

func report(world *ecs.World, d *system.DebugLog, frames int) {
	fmt.Println()
	printSection("summary")
	printStat("frames", frames)
	printStat("live entities", world.Len())
	printStat("entities created", d.Created)
	printStat("entities deleted", d.Deleted)
	for _, key := range world.Groups() {
		g, _ := world.Group(key)
		printStat("group "+key, g.Len())
	}
}

// loadConfig loads path, or returns the built-in defaults when it is missing.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadOptional loads path with load, or returns nil when path is empty or missing.
func loadOptional[T any](path string, load func(string) (*T, error)) (*T, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return load(path)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
