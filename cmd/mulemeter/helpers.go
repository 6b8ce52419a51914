package main

import (
	"github.com/urfave/cli/v2"

	"github.com/panbanda/mulemeter/pkg/config"
)

// loadConfig resolves configuration from the --config flag or well-known
// locations, then applies command-line overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	if c.IsSet("max-depth") {
		cfg.Discovery.MaxDepth = c.Int("max-depth")
	}
	if c.IsSet("workers") {
		cfg.Discovery.Workers = c.Int("workers")
	}
	if c.IsSet("projects") {
		cfg.Discovery.Projects = c.StringSlice("projects")
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if c.String("output") != "" {
		cfg.Output.Color = false
	}

	return cfg, nil
}
