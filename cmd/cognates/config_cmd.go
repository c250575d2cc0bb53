package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/standardbeagle/cognates/internal/config"
	"github.com/standardbeagle/cognates/pkg/pathutil"

	"github.com/urfave/cli/v2"
)

const configTemplate = `// Cognate feature extraction configuration

alphabet {
    first "a"                      // Letters outside first..last share one slot
    last "z"
}

languages {
    count 0                        // 0 = largest language id in the examples
    groups {
        // group 1 2
        // group 3
    }
}

extraction {
    strategy "hk2011"              // See: cognates strategies
    // measures "LCPRatio" "bigramDice"   // Column order of the custom strategy
    workers 0                      // 0 = one per CPU
    language_similarity false      // Append train/test language similarity columns
}

preprocessors {
    // sound_classes "dolgopolsky.txt"    // "K:c,k,q" lines or a TOML table
    // consonants "consonants.toml"
}

// pos_tags "pos.tsv"                     // meaning<TAB>tag
// language_similarities "sims.tsv"       // language1<TAB>language2<TAB>value
`

func createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Create, show or validate the configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a configuration template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file",
						Value:   config.FileName,
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing file",
					},
				},
				Action: configInitCommand,
			},
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShowCommand,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration and its referenced files",
				Action: configValidateCommand,
			},
		},
	}
}

func configInitCommand(c *cli.Context) error {
	output := c.String("output")

	if !c.Bool("force") {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", output)
		}
	}

	if err := os.WriteFile(output, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	fmt.Fprintf(c.App.Writer, "Configuration file created: %s\n", output)
	return nil
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	groups := make([]string, len(cfg.Languages.Groups))
	for i, g := range cfg.Languages.Groups {
		groups[i] = strings.Trim(fmt.Sprint(g), "[]")
	}

	fmt.Fprintf(w, "root                  %s\n", pathutil.Display(cfg.Root))
	fmt.Fprintf(w, "alphabet              %s-%s\n", cfg.Alphabet.First, cfg.Alphabet.Last)
	fmt.Fprintf(w, "languages             %d\n", cfg.Languages.Count)
	fmt.Fprintf(w, "groups                %s\n", strings.Join(groups, " | "))
	fmt.Fprintf(w, "strategy              %s\n", cfg.Extraction.Strategy)
	if len(cfg.Extraction.Measures) > 0 {
		fmt.Fprintf(w, "measures              %s\n", strings.Join(cfg.Extraction.Measures, ", "))
	}
	fmt.Fprintf(w, "workers               %d\n", cfg.Extraction.Workers)
	fmt.Fprintf(w, "language similarity   %t\n", cfg.Extraction.LanguageSimilarity)
	fmt.Fprintf(w, "sound classes         %s\n", orBuiltin(pathutil.Display(cfg.Resolve(cfg.Preprocessors.SoundClasses))))
	fmt.Fprintf(w, "consonants            %s\n", orBuiltin(pathutil.Display(cfg.Resolve(cfg.Preprocessors.Consonants))))
	fmt.Fprintf(w, "pos tags              %s\n", orNone(pathutil.Display(cfg.Resolve(cfg.POSTags))))
	fmt.Fprintf(w, "similarities          %s\n", orNone(pathutil.Display(cfg.Resolve(cfg.LanguageSimilarities))))
	return nil
}

func orBuiltin(s string) string {
	if s == "" {
		return "(built-in)"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func configValidateCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		fmt.Fprintf(c.App.Writer, "Configuration validation failed: %v\n", err)
		return err
	}

	res, err := cfg.Resources(cfg.Languages.Count)
	if err != nil {
		fmt.Fprintf(c.App.Writer, "Configuration validation failed: %v\n", err)
		return err
	}

	warnings := []string{}
	if cfg.Languages.Count == 0 && len(cfg.Languages.Groups) > 0 {
		warnings = append(warnings, "language groups are set but the language count is derived from the data")
	}
	if _, err := cfg.Strategy(res); err != nil {
		warnings = append(warnings, fmt.Sprintf("strategy %s cannot be built yet: %v", cfg.Extraction.Strategy, err))
	}

	for _, warning := range warnings {
		fmt.Fprintf(c.App.Writer, "Warning: %s\n", warning)
	}
	fmt.Fprintln(c.App.Writer, "Configuration is valid")
	return nil
}
