package config

import "github.com/urfave/cli/v3"

// GitHub holds the workflow dispatch target and API credential
type GitHub struct {
	Owner        string
	Repo         string
	WorkflowFile string
	Ref          string
	Token        string
	PagesBranch  string
	PagesProbe   bool
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Repository owner",
			Required:    true,
			Destination: &c.Owner,
			Sources:     cli.EnvVars("DROVER_GITHUB_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Repository name",
			Required:    true,
			Destination: &c.Repo,
			Sources:     cli.EnvVars("DROVER_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-workflow",
			Usage:       "Workflow file name to dispatch",
			Required:    true,
			Destination: &c.WorkflowFile,
			Sources:     cli.EnvVars("DROVER_GITHUB_WORKFLOW"),
		},
		&cli.StringFlag{
			Name:        "github-ref",
			Usage:       "Git ref the workflow runs against",
			Value:       "main",
			Destination: &c.Ref,
			Sources:     cli.EnvVars("DROVER_GITHUB_REF"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token with actions:write",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("DROVER_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "pages-branch",
			Usage:       "Branch serving published artifacts",
			Value:       "gh-pages",
			Destination: &c.PagesBranch,
			Sources:     cli.EnvVars("DROVER_PAGES_BRANCH"),
		},
		&cli.BoolFlag{
			Name:        "pages-probe",
			Usage:       "Skip dispatch when the artifact folder already exists on the Pages branch",
			Value:       false,
			Destination: &c.PagesProbe,
			Sources:     cli.EnvVars("DROVER_PAGES_PROBE"),
		},
	}
}
