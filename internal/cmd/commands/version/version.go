package version

import (
	"github.com/reblaw/legal-api/internal/cmd/base"
	"github.com/reblaw/legal-api/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: reblaw version`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("reblaw v" + version.Human())
	return 0
}
