package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/guessr/pkg/engine"
	"github.com/germanamz/guessr/pkg/guess"
)

// wizardConfig holds the raw answers of the init wizard.
type wizardConfig struct {
	Mode     string
	Tier     string
	Seed     string
	LogLevel string
	LogFile  string
}

func modeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(guess.Modes()))
	for _, m := range guess.Modes() {
		opts = append(opts, huh.NewOption(m.Label(), string(m)))
	}
	return opts
}

func tierOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(guess.Tiers()))
	for _, t := range guess.Tiers() {
		opts = append(opts, huh.NewOption(t.Label(), string(t)))
	}
	return opts
}

// runSetup asks for whichever of mode and tier is still empty.
func runSetup(mode guess.Mode, tier guess.Tier) (guess.Mode, guess.Tier, error) {
	m, t := string(mode), string(tier)

	var fields []huh.Field
	if m == "" {
		fields = append(fields, huh.NewSelect[string]().Title("Who guesses?").Options(modeOptions()...).Value(&m))
	}
	if t == "" {
		fields = append(fields, huh.NewSelect[string]().Title("Difficulty").Options(tierOptions()...).Value(&t))
	}
	if len(fields) == 0 {
		return mode, tier, nil
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return "", "", err
	}

	return guess.Mode(m), guess.Tier(t), nil
}

// runWizard collects answers interactively and returns the config YAML.
func runWizard() ([]byte, error) {
	wc := wizardConfig{
		Mode:     string(guess.ModeUser),
		Tier:     string(guess.TierEasy),
		LogLevel: "info",
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default mode").Options(modeOptions()...).Value(&wc.Mode),
			huh.NewSelect[string]().Title("Default difficulty").Options(tierOptions()...).Value(&wc.Tier),
		),
		huh.NewGroup(
			huh.NewInput().Title("Random seed (empty = random each run)").Value(&wc.Seed).Validate(validateOptionalSeed),
			huh.NewSelect[string]().Title("Log level").Options(
				huh.NewOption("Debug", "debug"),
				huh.NewOption("Info", "info"),
				huh.NewOption("Warn", "warn"),
				huh.NewOption("Error", "error"),
			).Value(&wc.LogLevel),
			huh.NewInput().Title("Log file (empty = no logging)").Value(&wc.LogFile),
		),
	).Run()
	if err != nil {
		return nil, err
	}

	cfg, err := buildConfig(wc)
	if err != nil {
		return nil, err
	}

	return cfg.Marshal()
}

// buildConfig converts wizard answers into a validated engine config.
func buildConfig(wc wizardConfig) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	cfg.DefaultMode = wc.Mode
	cfg.DefaultTier = wc.Tier
	cfg.Log.File = wc.LogFile
	if wc.LogLevel != "" {
		cfg.Log.Level = wc.LogLevel
	}

	if wc.Seed != "" {
		seed, err := strconv.ParseUint(wc.Seed, 10, 64)
		if err != nil {
			return engine.Config{}, fmt.Errorf("invalid seed %q: %w", wc.Seed, err)
		}
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}

	return cfg, nil
}

func validateOptionalSeed(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}
