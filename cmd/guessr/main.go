package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/guessr/pkg/engine"
	"github.com/germanamz/guessr/pkg/gametools"
	"github.com/germanamz/guessr/pkg/guess"
	"github.com/germanamz/guessr/pkg/tools/mcpserver"
)

const defaultConfigFile = "guessr.yaml"

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			initCmd := flag.NewFlagSet("init", flag.ExitOnError)
			initCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: guessr init [flags]\n\nWrite a config file interactively.\n\nFlags:\n")
				initCmd.PrintDefaults()
			}
			out := initCmd.String("o", defaultConfigFile, "path of the config file to write")
			force := initCmd.Bool("force", false, "overwrite an existing file")
			_ = initCmd.Parse(os.Args[2:])

			if err := runInit(*out, *force); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "mcp":
			mcpCmd := flag.NewFlagSet("mcp", flag.ExitOnError)
			mcpCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: guessr mcp [flags]\n\nServe the game tools over MCP on stdin/stdout.\n\nFlags:\n")
				mcpCmd.PrintDefaults()
			}
			cfgPath := mcpCmd.String("config", "", "path to configuration file (default: guessr.yaml if present)")
			envFile := mcpCmd.String("env", ".env", "path to .env file (ignored if missing)")
			_ = mcpCmd.Parse(os.Args[2:])

			if err := loadDotEnv(*envFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			if err := runMCP(*cfgPath); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: guessr [flags]\n       guessr <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  init    Write a config file interactively\n  mcp     Serve the game tools over MCP on stdin/stdout\n")
	}

	configPath := flag.String("config", "", "path to configuration file (default: guessr.yaml if present)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	mode := flag.String("mode", "", "who guesses: user or computer (overrides default_mode)")
	tier := flag.String("tier", "", "difficulty: easy, medium or hard (overrides default_tier)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *mode, *tier); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves and loads the configuration. Without a file the
// defaults are used with environment overrides applied.
func loadConfig(explicit string) (engine.Config, error) {
	path := resolveConfigPath(explicit)
	if path != "" {
		return engine.LoadConfig(path)
	}

	cfg := engine.DefaultConfig()
	if err := engine.ApplyEnv(&cfg); err != nil {
		return engine.Config{}, err
	}

	return cfg, nil
}

// newEngine builds an engine whose logger follows cfg.Log. The returned
// function closes the log file.
func newEngine(cfg engine.Config) (*engine.Engine, *slog.Logger, func() error, error) {
	log, closeLog, err := engine.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	eng, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		_ = closeLog()
		return nil, nil, nil, err
	}

	return eng, log, closeLog, nil
}

// resolveGame picks mode and tier from flags first, then config. Whatever is
// still unset is asked interactively.
func resolveGame(cfg engine.Config, modeFlag, tierFlag string) (guess.Mode, guess.Tier, error) {
	m, t := modeFlag, tierFlag
	if m == "" {
		m = cfg.DefaultMode
	}
	if t == "" {
		t = cfg.DefaultTier
	}

	var (
		mode guess.Mode
		tier guess.Tier
		err  error
	)
	if m != "" {
		if mode, err = guess.ParseMode(m); err != nil {
			return "", "", err
		}
	}
	if t != "" {
		if tier, err = guess.ParseTier(t); err != nil {
			return "", "", err
		}
	}

	return runSetup(mode, tier)
}

func run(configPath, modeFlag, tierFlag string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	mode, tier, err := resolveGame(cfg, modeFlag, tierFlag)
	if err != nil {
		return err
	}

	eng, _, closeLog, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	defer func() { _ = eng.Close() }()

	sess, err := eng.NewSession(mode, tier)
	if err != nil {
		return err
	}

	model := newAppModel(ctx, eng, sess)

	p := tea.NewProgram(model, tea.WithContext(ctx))

	// Send the program reference so the model can start the bridge goroutine.
	go func() {
		p.Send(programReadyMsg{program: p})
	}()

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

func runMCP(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Stdout carries the protocol, so logs only ever go to cfg.Log.File.
	eng, log, closeLog, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	defer func() { _ = eng.Close() }()

	srv := mcpserver.New(cfg.MCP.Name, cfg.MCP.Version, log)
	srv.Register(gametools.New(eng).Tools())

	err = srv.Serve(ctx, os.Stdin, os.Stdout)
	if ctx.Err() != nil {
		return nil
	}

	return err
}

func runInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}
	}

	data, err := runWizard()
	if err != nil {
		return err
	}

	if err := writeConfig(path, data); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)

	return nil
}

func writeConfig(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
