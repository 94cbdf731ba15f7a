package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/reblaw/legal-api/internal/cmd/base"
	"github.com/reblaw/legal-api/internal/cmd/commands/importarticles"
	"github.com/reblaw/legal-api/internal/cmd/commands/lookup"
	"github.com/reblaw/legal-api/internal/cmd/commands/migrate"
	"github.com/reblaw/legal-api/internal/cmd/commands/serve"
	versioncmd "github.com/reblaw/legal-api/internal/cmd/commands/version"
)

// Commands is the mapping of all available reblaw commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{
		UI:  ui,
		Log: log,
	}

	Commands = map[string]cli.CommandFactory{
		"import": func() (cli.Command, error) {
			return &importarticles.Command{Command: b}, nil
		},
		"lookup": func() (cli.Command, error) {
			return &lookup.Command{Command: b}, nil
		},
		"migrate": func() (cli.Command, error) {
			return &migrate.Command{Command: b}, nil
		},
		"serve": func() (cli.Command, error) {
			return &serve.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: b}, nil
		},
	}
}
