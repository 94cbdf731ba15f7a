// Package articles answers "article N of law X" lookups by resolving the law
// name to a canonical code and reading the article from the store.
package articles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/reblaw/legal-api/pkg/lawname"
	"github.com/reblaw/legal-api/pkg/models"
)

// User-facing messages for the two unsuccessful outcomes.
const (
	UnknownLawMessage      = "نام قانون پشتیبانی نمی\u200cشود یا ناشناخته است."
	ArticleNotFoundMessage = "ماده\u200cای با این مشخصات در پایگاه داده یافت نشد."
)

// Source is the attribution attached to every successful lookup.
const Source = "iran_laws.db – RebLaw official database"

// Outcome classifies a finished lookup.
type Outcome string

const (
	OutcomeResolved   Outcome = "resolved"
	OutcomeUnknownLaw Outcome = "unknown_law"
	OutcomeNotFound   Outcome = "not_found"
)

// Result is the response of a lookup. Unsuccessful lookups only carry Error;
// successful ones always carry every article field, even when zero.
type Result struct {
	Success       bool   `json:"success"`
	LawName       string `json:"law_name"`
	LawCode       string `json:"law_code"`
	ArticleNumber int    `json:"article_number"`
	Text          string `json:"text"`
	Source        string `json:"source"`
	Error         string `json:"error,omitempty"`

	Outcome Outcome `json:"-"`
}

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MarshalJSON encodes failures as {success, error} only.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(failure{Error: r.Error})
	}
	type success Result
	return json.Marshal(success(r))
}

// Service composes the name resolver and the article store.
type Service struct {
	store  Store
	logger hclog.Logger
}

// NewService creates a lookup service reading from store.
func NewService(store Store, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Lookup resolves lawName and returns the requested article. An unknown law
// name or a missing article is reported in the Result; a non-nil error means
// the store itself failed.
func (s *Service) Lookup(ctx context.Context, lawName string, number int) (*Result, error) {
	code, ok := lawname.Resolve(lawName)
	if !ok {
		s.logger.Debug("unrecognized law name", "law_name", lawName)
		return &Result{
			Success: false,
			Error:   UnknownLawMessage,
			Outcome: OutcomeUnknownLaw,
		}, nil
	}

	article, err := s.store.FindArticle(ctx, code, number)
	if errors.Is(err, models.ErrArticleNotFound) {
		s.logger.Debug("article not found",
			"law_code", code,
			"article_number", number,
		)
		return &Result{
			Success: false,
			Error:   ArticleNotFoundMessage,
			Outcome: OutcomeNotFound,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding article %d of %s: %w", number, code, err)
	}

	return &Result{
		Success:       true,
		LawName:       lawName,
		LawCode:       article.Code,
		ArticleNumber: article.Number,
		Text:          article.Text,
		Source:        Source,
		Outcome:       OutcomeResolved,
	}, nil
}
