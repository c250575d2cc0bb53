package main

import (
	"fmt"

	"github.com/standardbeagle/cognates/internal/features"

	"github.com/urfave/cli/v2"
)

func createStrategiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "strategies",
		Usage: "List extraction strategies and their feature columns",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "columns",
				Usage: "List every column name",
			},
		},
		Action: strategiesCommand,
	}
}

func strategiesCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	res, err := cfg.Resources(cfg.Languages.Count)
	if err != nil {
		return err
	}

	w := c.App.Writer
	for _, name := range features.StrategyNames() {
		kind, _ := features.ParseStrategyKind(name)
		var s *features.Strategy
		if kind == features.Custom {
			if len(cfg.Extraction.Measures) == 0 {
				fmt.Fprintf(w, "%-22s needs a measure list\n", name)
				continue
			}
			s, err = features.NewCustomStrategy(cfg.Extraction.Measures)
		} else {
			s, err = features.NewStrategy(kind, res)
		}
		if err != nil {
			fmt.Fprintf(w, "%-22s unavailable: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%-22s %d columns\n", name, s.Width())
		if c.Bool("columns") {
			for _, col := range s.ColumnNames() {
				fmt.Fprintf(w, "    %s\n", col)
			}
		}
	}
	return nil
}
