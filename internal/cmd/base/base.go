// Package base holds what every reblaw subcommand shares: the UI, the root
// logger and flag handling.
package base

import (
	"bytes"
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/reblaw/legal-api/internal/config"
)

// Command is embedded by every subcommand.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
}

// LoadConfig loads the configuration at path (empty means defaults and
// environment only) and applies the configured log level to c.Log.
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if c.Log != nil {
		c.Log.SetLevel(cfg.HCLogLevel())
	}
	return cfg, nil
}

// FlagSet wraps a flag.FlagSet so commands can render their flags in Help.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet returns a FlagSet wrapping f.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// ConfigVar registers the shared -config flag.
func (f *FlagSet) ConfigVar(p *string) {
	f.StringVar(p, "config", "", "Path to an HCL configuration file")
}

// Help returns the usage text of every registered flag.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	buf.WriteString("\n\nOptions:\n\n")

	hasFlags := false
	f.VisitAll(func(fl *flag.Flag) {
		hasFlags = true
		fmt.Fprintf(&buf, "  -%s", fl.Name)
		if name, _ := flag.UnquoteUsage(fl); name != "" {
			fmt.Fprintf(&buf, "=<%s>", name)
		}
		_, usage := flag.UnquoteUsage(fl)
		fmt.Fprintf(&buf, "\n      %s", usage)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&buf, " (default: %s)", fl.DefValue)
		}
		buf.WriteString("\n\n")
	})
	if !hasFlags {
		return ""
	}
	return buf.String()
}
