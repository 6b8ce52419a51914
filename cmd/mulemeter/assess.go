package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/mulemeter/internal/analyzer"
	"github.com/panbanda/mulemeter/internal/discovery"
	"github.com/panbanda/mulemeter/internal/fileproc"
	"github.com/panbanda/mulemeter/internal/output"
	"github.com/panbanda/mulemeter/internal/progress"
	"github.com/panbanda/mulemeter/internal/report"
	"github.com/panbanda/mulemeter/pkg/config"
	"github.com/panbanda/mulemeter/pkg/models"
)

func assessCmd() *cli.Command {
	return &cli.Command{
		Name:      "assess",
		Aliases:   []string{"a"},
		Usage:     "Assess every Mule project under a repository folder",
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
			&cli.StringFlag{
				Name:  "report-dir",
				Usage: "Write a shareable report bundle to this directory",
			},
			&cli.BoolFlag{
				Name:  "individual-files",
				Usage: "Write one JSON file per project in the report bundle",
			},
		},
		Action: runAssess,
	}
}

func runAssess(c *cli.Context) error {
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

	view := report.NewView(assessment, cfg.Risk, cfg.Weights)
	if err := formatter.Output(view); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if dir := c.String("report-dir"); dir != "" {
		w := &report.Writer{
			Dir:             dir,
			IndividualFiles: c.Bool("individual-files"),
			Risk:            cfg.Risk,
			Weights:         cfg.Weights,
		}
		if err := w.WriteBundle(assessment); err != nil {
			return err
		}
		color.Green("Report bundle written to %s/", dir)
	}
	return nil
}

// buildAssessment discovers and analyzes projects, returning nil when the
// folder holds no Mule projects.
func buildAssessment(c *cli.Context, cfg *config.Config) (*models.Assessment, error) {
	root := "."
	if c.Args().Len() > 0 {
		root = c.Args().First()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", root, err)
	}

	walker := discovery.NewWalker(cfg.Discovery.MaxDepth, cfg.Discovery.Projects)
	candidates, err := walker.Discover(absRoot)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		color.Yellow("No Mule projects found in %s", absRoot)
		return nil, nil
	}

	if cfg.Output.Verbose {
		color.Cyan("Found %d Mule projects", len(candidates))
	}

	an, err := analyzer.New(cfg)
	if err != nil {
		return nil, err
	}

	tracker := progress.NewTracker("Analyzing projects...", len(candidates))
	projects, errs := fileproc.MapOrdered(c.Context, candidates, cfg.Discovery.Workers,
		func(cand discovery.Candidate) string { return cand.Name },
		func(_ context.Context, cand discovery.Candidate) (*models.Project, error) {
			return an.AnalyzeProject(cand), nil
		},
		tracker.Tick,
	)
	tracker.FinishSuccess()
	if errs != nil {
		return nil, errs
	}

	return &models.Assessment{
		Metadata: models.Metadata{
			AnalysisDate:    time.Now().UTC(),
			AnalyzerVersion: version,
		},
		Summary:  analyzer.Aggregate(projects),
		Projects: projects,
	}, nil
}
