package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/standardbeagle/cognates/internal/config"
	"github.com/standardbeagle/cognates/internal/corpus"
	"github.com/standardbeagle/cognates/internal/debug"
	"github.com/standardbeagle/cognates/internal/features"
	"github.com/standardbeagle/cognates/internal/preprocess"

	"github.com/urfave/cli/v2"
)

func examplesFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "examples",
		Aliases:  []string{"e"},
		Usage:    "Example files or doublestar globs (e.g., --examples 'data/**/*.tsv')",
		Required: true,
	}
}

func createExtractCommand() *cli.Command {
	return &cli.Command{
		Name:    "extract",
		Aliases: []string{"x"},
		Usage:   "Extract feature matrices and labels for every purpose in the example files",
		Flags: []cli.Flag{
			examplesFlag(),
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   "Extraction strategy (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "measure",
				Usage: "Measures of the custom strategy, in column order",
			},
			&cli.StringFlag{
				Name:  "pos",
				Usage: "Part-of-speech file, one \"meaning<TAB>tag\" per line",
			},
			&cli.StringFlag{
				Name:  "similarities",
				Usage: "Language similarity file for test examples; enables language similarity columns",
			},
			&cli.IntFlag{
				Name:  "language-count",
				Usage: "Number of languages (default: largest language id in the examples)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Extraction goroutines (0 = one per CPU)",
			},
			&cli.StringSliceFlag{
				Name:  "append",
				Usage: "Blocks appended after the strategy, one pass each: " + strings.Join(features.BlockNames(), ", "),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory for <purpose>.csv and <purpose>.labels",
				Value:   ".",
			},
		},
		Action: extractCommand,
	}
}

func extractCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	data, err := corpus.LoadExamples(c.StringSlice("examples"))
	if err != nil {
		return err
	}
	res, err := cfg.Resources(corpus.MaxLanguage(data))
	if err != nil {
		return err
	}
	strategy, err := cfg.Strategy(res)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runExtraction(ctx, cfg, res, strategy, c.StringSlice("append"), data)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, p := range result.Purposes() {
		m := result.Matrix(p)
		if err := writeFile(filepath.Join(out, p.String()+".csv"), func(f *os.File) error {
			return corpus.WriteMatrix(f, m)
		}); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(out, p.String()+".labels"), func(f *os.File) error {
			return corpus.WriteLabels(f, result.Labels(p))
		}); err != nil {
			return err
		}

		rows, cols := m.Dims()
		fmt.Fprintf(c.App.Writer, "%s: %d rows x %d columns, fingerprint %016x\n", p, rows, cols, m.Fingerprint())
	}
	return nil
}

// runExtraction applies the strategy, then each appended block and, when
// configured, the language similarity columns
func runExtraction(ctx context.Context, cfg *config.Config, res features.Resources, strategy *features.Strategy, appended []string, data *features.Dataset) (*features.Result, error) {
	blocks := make([]features.Block, 0, len(appended))
	for _, name := range appended {
		b, err := features.NamedBlock(name, res)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	builder := features.NewBuilder(features.WithWorkers(cfg.Extraction.Workers))
	if err := builder.Extract(ctx, strategy, data); err != nil {
		return nil, err
	}
	for _, b := range blocks {
		if err := builder.Extract(ctx, features.NewBlockStrategy(b), data); err != nil {
			return nil, err
		}
	}

	if cfg.Extraction.LanguageSimilarity {
		if data.Count(features.Train) > 0 {
			if err := builder.AppendTrainLanguageSimilarities(data); err != nil {
				return nil, err
			}
		}
		if data.Count(features.Test) > 0 {
			if cfg.LanguageSimilarities == "" {
				return nil, fmt.Errorf("test examples need a language similarity file (language_similarities or --similarities)")
			}
			sims, err := corpus.LoadSimilarities(cfg.Resolve(cfg.LanguageSimilarities), res.LanguageCount)
			if err != nil {
				return nil, err
			}
			if err := builder.AppendTestLanguageSimilarities(sims, data); err != nil {
				return nil, err
			}
		}
	}

	debug.LogExtract("extracted %d examples with %s\n", data.Count(features.All), strategy.Kind())
	return builder.Finalize(), nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func createProfileCommand() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "Accumulate letter correspondences over the cognate training examples",
		Flags: []cli.Flag{
			examplesFlag(),
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of correspondences to list (0 = all)",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "preprocess",
				Usage: "Align preprocessed forms: sound_classes or consonants",
			},
		},
		Action: profileCommand,
	}
}

func profileCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	data, err := corpus.LoadExamples(c.StringSlice("examples"))
	if err != nil {
		return err
	}
	res, err := cfg.Resources(corpus.MaxLanguage(data))
	if err != nil {
		return err
	}

	alphabet := res.Alphabet
	var prep preprocess.Preprocessor
	switch c.String("preprocess") {
	case "":
	case "sound_classes":
		// Sound classes are upper-case letters
		prep = res.SoundClasses
		alphabet.First, alphabet.Last = 'A', 'Z'
	case "consonants":
		prep = res.Consonants
	default:
		return fmt.Errorf("unknown preprocessor %q (must be sound_classes or consonants)", c.String("preprocess"))
	}

	profile, err := features.CorrespondenceProfile(data, alphabet, prep)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%d cognate training pairs, %g correspondences\n", data.Positives(features.Train), profile.Total())
	printCorrespondences(c, profile, c.Int("top"))
	return nil
}
