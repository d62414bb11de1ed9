package config

import (
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Keys holds the per-platform credentials. Keys are never read from
// the config file; they come from flags or environment variables only.
type Keys struct {
	CurseForge string
	Modrinth   string
	GitHub     string
}

// Flags returns CLI flags for the platform credentials
func (c *Keys) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "curseforge-token",
			Usage:       "CurseForge upload API token",
			Destination: &c.CurseForge,
			Sources:     cli.EnvVars("MCPUBLISH_CURSEFORGE_TOKEN", "CURSEFORGE_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "modrinth-token",
			Usage:       "Modrinth API token",
			Destination: &c.Modrinth,
			Sources:     cli.EnvVars("MCPUBLISH_MODRINTH_TOKEN", "MODRINTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Destination: &c.GitHub,
			Sources:     cli.EnvVars("MCPUBLISH_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
	}
}

// APIKeys converts the flag values into the domain credential set
func (c *Keys) APIKeys() model.APIKeys {
	return model.APIKeys{
		CurseForge: c.CurseForge,
		Modrinth:   c.Modrinth,
		GitHub:     c.GitHub,
	}
}
