package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/standardbeagle/cognates/internal/clusters"
	"github.com/standardbeagle/cognates/internal/corpus"

	"github.com/urfave/cli/v2"
)

func createGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "Group each meaning's wordforms with a rule-based baseline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "wordforms",
				Usage:    "Wordform file, one \"meaning<TAB>language<TAB>form\" per line",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "rule",
				Usage: "identicalWord, identicalPrefix or identicalFirstLetter",
				Value: clusters.IdenticalPrefix.String(),
			},
			&cli.IntSliceFlag{
				Name:  "language",
				Usage: "Languages to label (default: all)",
			},
		},
		Action: groupsCommand,
	}
}

func groupsCommand(c *cli.Context) error {
	rule, err := clusters.ParseRule(c.String("rule"))
	if err != nil {
		return err
	}

	path := c.String("wordforms")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	wf, err := corpus.ReadWordforms(f, path)
	if err != nil {
		return err
	}

	languages := wf.Languages
	if l := c.IntSlice("language"); len(l) > 0 {
		languages = l
	}

	labels, groups := clusters.Baseline(rule, wf.Meanings, languages, wf.Forms)

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, meaning := range wf.Meanings {
		parts := make([]string, len(labels[meaning]))
		for i, l := range labels[meaning] {
			parts[i] = strconv.Itoa(l)
		}
		fmt.Fprintf(tw, "%d\t%d groups\t%s\n", meaning, len(groups[meaning]), strings.Join(parts, " "))
	}
	return tw.Flush()
}
