package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/mulemeter/internal/output"
	"github.com/panbanda/mulemeter/internal/report"
)

func connectorsCmd() *cli.Command {
	return &cli.Command{
		Name:      "connectors",
		Usage:     "Summarize connector usage across every Mule project",
		ArgsUsage: "[repo-folder]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "projects",
				Usage: "Specific project names to analyze (default: all)",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Maximum directory depth for project discovery",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of projects analyzed in parallel",
			},
		},
		Action: runConnectors,
	}
}

func runConnectors(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	assessment, err := buildAssessment(c, cfg)
	if err != nil {
		return err
	}
	if assessment == nil {
		return nil
	}

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := make([][]string, 0, len(assessment.Summary.ConnectorUsage))
	declaring := map[string]int{}
	for _, p := range assessment.Projects {
		for _, name := range p.Connectors.UniqueConnectors {
			declaring[name]++
		}
	}
	for _, e := range assessment.Summary.ConnectorUsage.Sorted() {
		risk := report.ConnectorRisk(cfg.Weights.ConnectorWeight(e.Name))
		rows = append(rows, []string{
			e.Name,
			fmt.Sprintf("%d", e.Count),
			fmt.Sprintf("%d", declaring[e.Name]),
			strings.ToUpper(risk),
		})
	}

	table := output.NewTable("Connector Usage",
		[]string{"Connector", "Usages", "Projects", "Migration Risk"},
		rows, nil, assessment.Summary.ConnectorUsage,
	)
	return formatter.Output(table)
}
