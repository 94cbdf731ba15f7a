// Package importer loads article files into the article database.
package importer

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/reblaw/legal-api/pkg/lawname"
	"github.com/reblaw/legal-api/pkg/models"
)

const defaultBatchSize = 500

// File is the document layout of an import file. JSON files use the same
// keys, since JSON is read as YAML.
//
//	articles:
//	  - code: قانون_مدنی
//	    id: 10
//	    text: "..."
type File struct {
	Articles models.Articles `yaml:"articles"`
}

// Summary reports what an import wrote.
type Summary struct {
	Path     string
	Articles int
	ByCode   map[string]int
}

// Importer writes parsed article files into the database.
type Importer struct {
	fs        afero.Fs
	db        *gorm.DB
	logger    hclog.Logger
	batchSize int
}

// New creates an importer reading files from fs.
func New(fs afero.Fs, db *gorm.DB, logger hclog.Logger) *Importer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Importer{
		fs:        fs,
		db:        db,
		logger:    logger,
		batchSize: defaultBatchSize,
	}
}

// WithBatchSize sets the number of rows per INSERT statement.
func (i *Importer) WithBatchSize(n int) *Importer {
	if n > 0 {
		i.batchSize = n
	}
	return i
}

// ImportFile parses and validates path and upserts its articles. Nothing is
// written unless every row is valid.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Summary, error) {
	data, err := afero.ReadFile(i.fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading import file: %w", err)
	}

	articles, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := Validate(articles); err != nil {
		return nil, fmt.Errorf("invalid articles in %s: %w", path, err)
	}

	known := make(map[lawname.Code]bool)
	for _, r := range lawname.Rules() {
		known[r.Code] = true
	}

	summary := &Summary{
		Path:     path,
		Articles: len(articles),
		ByCode:   make(map[string]int),
	}
	for _, a := range articles {
		summary.ByCode[a.Code]++
	}
	for code := range summary.ByCode {
		if !known[lawname.Code(code)] {
			i.logger.Warn("law code is not reachable from any law name",
				"code", code,
				"path", path,
			)
		}
	}

	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return articles.Upsert(ctx, tx, i.batchSize)
	})
	if err != nil {
		return nil, fmt.Errorf("error writing articles: %w", err)
	}

	i.logger.Info("imported articles",
		"path", path,
		"articles", summary.Articles,
		"codes", len(summary.ByCode),
	)
	return summary, nil
}

// Parse decodes an import file. Both the File layout and a bare list of
// articles are accepted.
func Parse(data []byte) (models.Articles, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	doc := node.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var as models.Articles
		if err := doc.Decode(&as); err != nil {
			return nil, err
		}
		return as, nil
	case yaml.MappingNode:
		var f File
		if err := doc.Decode(&f); err != nil {
			return nil, err
		}
		return f.Articles, nil
	default:
		return nil, fmt.Errorf("expected a list of articles or an articles key, line %d", doc.Line)
	}
}

// Validate checks every article and reports all problems at once.
func Validate(as models.Articles) error {
	var result *multierror.Error

	type key struct {
		code   string
		number int
	}
	seen := make(map[key]int, len(as))

	for idx, a := range as {
		err := validation.ValidateStruct(&a,
			validation.Field(&a.Code, validation.Required),
			validation.Field(&a.Number, validation.Required, validation.Min(1)),
			validation.Field(&a.Text, validation.Required),
		)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("article %d: %w", idx, err))
			continue
		}

		k := key{a.Code, a.Number}
		if first, ok := seen[k]; ok {
			result = multierror.Append(result, fmt.Errorf(
				"article %d: duplicate of article %d (code=%s, id=%d)",
				idx, first, a.Code, a.Number))
			continue
		}
		seen[k] = idx
	}

	return result.ErrorOrNil()
}
