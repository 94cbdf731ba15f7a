package importarticles

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/reblaw/legal-api/internal/cmd/base"
	"github.com/reblaw/legal-api/internal/migrate"
	"github.com/reblaw/legal-api/pkg/database"
	"github.com/reblaw/legal-api/pkg/importer"
)

type Command struct {
	*base.Command

	// Fs is the filesystem import files are read from. Defaults to the OS.
	Fs afero.Fs

	flagConfig    string
	flagDatabase  string
	flagBatchSize int
	flagMigrate   bool
}

func (c *Command) Synopsis() string {
	return "Load articles from YAML or JSON files"
}

func (c *Command) Help() string {
	return `Usage: reblaw import [options] FILE...

  Upsert the articles in each FILE into the article database. A row with the
  same code and id as a stored article replaces its text. A file is written
  only if every row in it is valid.

  File layout:

    articles:
      - code: قانون_مدنی
        id: 10
        text: "..."` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("import", flag.ContinueOnError))

	f.ConfigVar(&c.flagConfig)
	f.StringVar(
		&c.flagDatabase, "db", "",
		"[REBLAW_DB_PATH] Path to the article database",
	)
	f.IntVar(
		&c.flagBatchSize, "batch-size", 500,
		"Rows per INSERT statement",
	)
	f.BoolVar(
		&c.flagMigrate, "migrate", true,
		"Apply schema migrations before importing",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	files := f.Args()
	if len(files) == 0 {
		c.UI.Error("at least one import file is required")
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

	if c.flagMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			c.UI.Error(fmt.Sprintf("error getting database handle: %v", err))
			return 1
		}
		if err := migrate.RunMigrations(sqlDB); err != nil {
			c.UI.Error(fmt.Sprintf("error running migrations: %v", err))
			return 1
		}
	}

	fs := c.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	imp := importer.New(fs, db, c.Log.Named("importer")).WithBatchSize(c.flagBatchSize)

	ctx := context.Background()
	failed := 0
	for _, file := range files {
		summary, err := imp.ImportFile(ctx, file)
		if err != nil {
			c.UI.Error(err.Error())
			failed++
			continue
		}

		c.UI.Output(fmt.Sprintf("%s: %d articles", summary.Path, summary.Articles))
		codes := make([]string, 0, len(summary.ByCode))
		for code := range summary.ByCode {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			c.UI.Output(fmt.Sprintf("  %s: %d", code, summary.ByCode[code]))
		}
	}

	if failed > 0 {
		c.UI.Error(fmt.Sprintf("%d of %d files failed to import", failed, len(files)))
		return 1
	}
	return 0
}
