package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/standardbeagle/cognates/internal/config"
	"github.com/standardbeagle/cognates/internal/debug"
	"github.com/standardbeagle/cognates/internal/version"
	"github.com/standardbeagle/cognates/pkg/pathutil"

	"github.com/urfave/cli/v2"
)

var Version = version.Version // Use centralized version management

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	cfg, err := config.LoadKDL(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	if cfg == nil {
		cfg = config.Default()
		cfg.Root = pathutil.Abs(filepath.Dir(configPath))
	}

	// Apply CLI flag overrides; paths given on the command line are taken
	// as relative to the working directory
	if s := c.String("strategy"); s != "" {
		cfg.Extraction.Strategy = s
	}
	if m := c.StringSlice("measure"); len(m) > 0 {
		cfg.Extraction.Measures = m
	}
	if c.IsSet("workers") {
		cfg.Extraction.Workers = c.Int("workers")
	}
	if c.IsSet("language-count") {
		cfg.Languages.Count = c.Int("language-count")
	}
	if p := c.String("pos"); p != "" {
		cfg.POSTags = pathutil.Abs(p)
	}
	if p := c.String("similarities"); p != "" {
		cfg.LanguageSimilarities = pathutil.Abs(p)
		cfg.Extraction.LanguageSimilarity = true
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp() *cli.App {
	var cleanupFuncs []func()

	return &cli.App{
		Name:                   "cognates",
		Usage:                  "Pairwise orthographic similarity features for cognate detection",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   config.FileName,
			},
			&cli.BoolFlag{
				Name:  "debug-log",
				Usage: "Write debug output to a log file in the temp directory",
			},
			&cli.StringFlag{
				Name:   "profile-cpu",
				Usage:  "Write CPU profile to file (e.g., --profile-cpu cpu.prof)",
				Hidden: true,
			},
		},
		Commands: []*cli.Command{
			createMeasuresCommand(),
			createAlignCommand(),
			createExtractCommand(),
			createProfileCommand(),
			createGroupsCommand(),
			createStrategiesCommand(),
			createConfigCommand(),
			{
				Name:  "version",
				Usage: "Show detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					return nil
				},
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug-log") {
				path, err := debug.InitDebugLogFile()
				if err != nil {
					return err
				}
				debug.EnableDebug = "true"
				fmt.Fprintf(c.App.ErrWriter, "Debug log: %s\n", path)
				cleanupFuncs = append(cleanupFuncs, func() { _ = debug.CloseDebugLog() })
			}

			if cpuProfilePath := c.String("profile-cpu"); cpuProfilePath != "" {
				f, err := os.Create(cpuProfilePath)
				if err != nil {
					return fmt.Errorf("failed to create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return fmt.Errorf("failed to start CPU profile: %w", err)
				}
				cleanupFuncs = append(cleanupFuncs, func() {
					pprof.StopCPUProfile()
					f.Close()
				})
			}
			return nil
		},
		After: func(c *cli.Context) error {
			for i := len(cleanupFuncs) - 1; i >= 0; i-- {
				cleanupFuncs[i]()
			}
			cleanupFuncs = nil
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
