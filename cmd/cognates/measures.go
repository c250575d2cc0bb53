package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/standardbeagle/cognates/internal/alignment"
	"github.com/standardbeagle/cognates/internal/measures"

	"github.com/urfave/cli/v2"
)

// MeasureValue is one measure in JSON output
type MeasureValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func createMeasuresCommand() *cli.Command {
	return &cli.Command{
		Name:      "measures",
		Aliases:   []string{"m"},
		Usage:     "Compute similarity measures for a pair of wordforms",
		ArgsUsage: "<form1> <form2>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "measure",
				Aliases: []string{"n"},
				Usage:   "Measures to compute (default: all)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		},
		Action: measuresCommand,
	}
}

func pairArgs(c *cli.Context) (string, string, error) {
	if c.NArg() != 2 {
		return "", "", fmt.Errorf("expected two wordforms, got %d arguments", c.NArg())
	}
	return strings.ToLower(c.Args().Get(0)), strings.ToLower(c.Args().Get(1)), nil
}

func measuresCommand(c *cli.Context) error {
	form1, form2, err := pairArgs(c)
	if err != nil {
		return err
	}

	ids := measures.Registered()
	if names := c.StringSlice("measure"); len(names) > 0 {
		if ids, err = measures.LookupAll(names); err != nil {
			return err
		}
	}

	values := make([]MeasureValue, len(ids))
	for i, id := range ids {
		values[i] = MeasureValue{Name: id.String(), Value: id.Compute(form1, form2)}
	}

	if c.Bool("json") {
		return json.NewEncoder(c.App.Writer).Encode(values)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%.4f\n", v.Name, v.Value)
	}
	return tw.Flush()
}

func createAlignCommand() *cli.Command {
	return &cli.Command{
		Name:      "align",
		Aliases:   []string{"a"},
		Usage:     "Show the edit script and letter correspondences of a pair of wordforms",
		ArgsUsage: "<form1> <form2>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of correspondences to list (0 = all)",
			},
		},
		Action: alignCommand,
	}
}

func alignCommand(c *cli.Context) error {
	form1, form2, err := pairArgs(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	src, dst := []rune(form1), []rune(form2)
	ops := alignment.EditScript(form1, form2)
	w := c.App.Writer

	fmt.Fprintf(w, "distance %d\n", alignment.Distance(ops))
	for _, op := range ops {
		fmt.Fprintf(w, "%-8s %q -> %q\n", op.Tag, string(src[op.SrcStart:op.SrcEnd]), string(dst[op.DstStart:op.DstEnd]))
	}

	m := alignment.Correspondences(cfg.AlphabetRange(), form1, form2)
	fmt.Fprintln(w)
	printCorrespondences(c, m, c.Int("top"))
	return nil
}

func printCorrespondences(c *cli.Context, m *alignment.Matrix, top int) {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, corr := range m.Top(top) {
		fmt.Fprintf(tw, "%s\t%s\t%g\n", corr.From, corr.To, corr.Count)
	}
	tw.Flush()
}
