package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/reblaw/legal-api/internal/cmd/base"
	"github.com/reblaw/legal-api/pkg/articles"
	"github.com/reblaw/legal-api/pkg/database"
)

type Command struct {
	*base.Command

	flagConfig   string
	flagDatabase string
	flagJSON     bool
}

func (c *Command) Synopsis() string {
	return "Print an article given a law name and article number"
}

func (c *Command) Help() string {
	return `Usage: reblaw lookup [options] LAW_NAME... ARTICLE_NUMBER

  Resolve LAW_NAME the same way the API does and print the text of the
  article. The law name may span several arguments.

    reblaw lookup قانون مدنی 10` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("lookup", flag.ContinueOnError))

	f.ConfigVar(&c.flagConfig)
	f.StringVar(
		&c.flagDatabase, "db", "",
		"[REBLAW_DB_PATH] Path to the article database",
	)
	f.BoolVar(
		&c.flagJSON, "json", false,
		"Print the result as the API would return it",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	rest := f.Args()
	if len(rest) < 2 {
		c.UI.Error("a law name and an article number are required")
		return 1
	}
	number, err := strconv.Atoi(rest[len(rest)-1])
	if err != nil {
		c.UI.Error(fmt.Sprintf("invalid article number %q", rest[len(rest)-1]))
		return 1
	}
	lawName := strings.Join(rest[:len(rest)-1], " ")

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	path := cfg.Database.Path
	if c.flagDatabase != "" {
		path = c.flagDatabase
	}

	db, err := database.Open(database.Config{Path: path, ReadOnly: true}, c.Log.Named("database"))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error opening article database: %v", err))
		return 1
	}
	defer database.Close(db)

	svc := articles.NewService(articles.NewSQLStore(db), c.Log.Named("articles"))
	res, err := svc.Lookup(context.Background(), lawName, number)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error looking up article: %v", err))
		return 1
	}

	if c.flagJSON {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			c.UI.Error(fmt.Sprintf("error encoding result: %v", err))
			return 1
		}
		c.UI.Output(strings.TrimSuffix(buf.String(), "\n"))
	} else if res.Success {
		c.UI.Output(fmt.Sprintf("%s، ماده %d", res.LawName, res.ArticleNumber))
		c.UI.Output(res.Text)
	}

	if !res.Success {
		if !c.flagJSON {
			c.UI.Error(res.Error)
		}
		return 2
	}
	return 0
}
