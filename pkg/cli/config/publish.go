package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Publish holds the publish/check command configuration
type Publish struct {
	ConfigPath string
	Debug      bool
	Platforms  []string
}

// Flags returns CLI flags for the publish configuration
func (c *Publish) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML configuration file",
			Value:       "mcpublish.toml",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("MCPUBLISH_CONFIG"),
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "Log intended actions without uploading anything",
			Destination: &c.Debug,
			Sources:     cli.EnvVars("MCPUBLISH_DEBUG"),
		},
		&cli.StringSliceFlag{
			Name:        "platform",
			Aliases:     []string{"p"},
			Usage:       "Limit publishing to the given platforms (curseforge, modrinth, github)",
			Destination: &c.Platforms,
		},
	}
}

// Load decodes the TOML config file, overlays the credentials and
// finalizes the snapshot. The returned config is read-only from here
// on.
func (c *Publish) Load(keys *Keys) (*model.Config, error) {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", c.ConfigPath), goerr.T(types.ErrTagNotFound))
	}

	cfg := model.NewConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse configuration file",
			goerr.V("path", c.ConfigPath), goerr.T(types.ErrTagConfig))
	}

	cfg.Keys = keys.APIKeys()
	if c.Debug {
		cfg.Debug = true
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SelectedPlatforms parses the --platform filter into canonical
// platform values. An empty filter selects all platforms.
func (c *Publish) SelectedPlatforms() ([]model.Platform, error) {
	var platforms []model.Platform
	for _, name := range c.Platforms {
		platform, err := model.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, platform)
	}
	return platforms, nil
}
