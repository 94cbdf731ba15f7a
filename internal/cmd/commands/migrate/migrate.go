package migrate

import (
	"flag"
	"fmt"

	"github.com/reblaw/legal-api/internal/cmd/base"
	"github.com/reblaw/legal-api/internal/migrate"
	"github.com/reblaw/legal-api/pkg/database"
)

type Command struct {
	*base.Command

	flagConfig   string
	flagDatabase string
}

func (c *Command) Synopsis() string {
	return "Create or upgrade the article database schema"
}

func (c *Command) Help() string {
	return `Usage: reblaw migrate [options]

  Apply pending schema migrations to the article database, creating the file
  if it does not exist.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("migrate", flag.ContinueOnError))

	f.ConfigVar(&c.flagConfig)
	f.StringVar(
		&c.flagDatabase, "db", "",
		"[REBLAW_DB_PATH] Path to the article database",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	path := cfg.Database.Path
	if c.flagDatabase != "" {
		path = c.flagDatabase
	}

	db, err := database.Open(database.Config{Path: path}, c.Log.Named("database"))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error opening article database: %v", err))
		return 1
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error getting database handle: %v", err))
		return 1
	}

	if err := migrate.RunMigrations(sqlDB); err != nil {
		c.UI.Error(fmt.Sprintf("error running migrations: %v", err))
		return 1
	}

	version, dirty, err := migrate.GetMigrationVersion(sqlDB)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error reading migration version: %v", err))
		return 1
	}
	c.Log.Info("migrations applied", "path", path, "version", version, "dirty", dirty)
	c.UI.Output(fmt.Sprintf("%s is at schema version %d", path, version))
	return 0
}
