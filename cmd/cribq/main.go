// Command cribq searches and manages a question corpus from the terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
	"github.com/kailas-cloud/cribdex/internal/version"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "cribq:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "cribq",
		Usage:     "Search a question corpus",
		Version:   version.String(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus",
				Aliases: []string{"c"},
				Usage:   "Corpus file (.json, .yaml, .yml)",
				EnvVars: []string{"CRIBQ_CORPUS"},
			},
			&cli.StringSliceFlag{
				Name:    "store-addr",
				Usage:   "Redis/Valkey address holding the corpus (instead of --corpus)",
				EnvVars: []string{"CRIBQ_STORE_ADDR"},
			},
			&cli.StringFlag{
				Name:  "store-key",
				Usage: "Key of the corpus document in the store",
				Value: "cribdex:corpus",
			},
			&cli.StringFlag{
				Name:    "store-password",
				Usage:   "Store password",
				EnvVars: []string{"CRIBQ_STORE_PASSWORD"},
			},
			&cli.BoolFlag{
				Name:  "valkey",
				Usage: "Talk RESP2 to the store",
			},
			&cli.Float64Flag{
				Name:  "fuzzy-threshold",
				Usage: "Similarity a near-miss word must exceed, in [0, 1)",
				Value: searchuc.DefaultFuzzyThreshold,
			},
			&cli.IntFlag{
				Name:  "full-max-candidates",
				Usage: "Largest candidate set scored with approximate matching (0 = always fast)",
				Value: searchuc.DefaultFullScoringMaxCandidates,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print JSON instead of text",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank questions against a query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "Only search this category"},
					&cli.StringFlag{Name: "mode", Usage: "Scoring mode: auto, fast or full", Value: "auto"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum results", Value: 20},
					&cli.BoolFlag{Name: "scores", Usage: "Show scores in text output"},
				},
			},
			{
				Name:   "categories",
				Usage:  "List categories with question counts",
				Action: categoriesCommand,
			},
			{
				Name:      "list",
				Usage:     "List the questions of a category",
				ArgsUsage: "CATEGORY",
				Action:    listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Rank inside the category"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum questions (0 = all)"},
				},
			},
			{
				Name:      "show",
				Usage:     "Print one question with its answers",
				ArgsUsage: "ID",
				Action:    showCommand,
			},
			{
				Name:      "publish",
				Usage:     "Validate a corpus file and write it to the store",
				ArgsUsage: "FILE",
				Action:    publishCommand,
			},
		},
	}
}
