package articles

import (
	"context"

	"gorm.io/gorm"

	"github.com/reblaw/legal-api/pkg/lawname"
	"github.com/reblaw/legal-api/pkg/models"
)

// Store finds articles by canonical code and number.
type Store interface {
	// FindArticle returns models.ErrArticleNotFound when no row matches.
	FindArticle(ctx context.Context, code lawname.Code, number int) (*models.Article, error)
}

// SQLStore reads articles from the SQLite database.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore returns a Store backed by db. db should be opened with
// database.Open so released connections are not kept idle.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// FindArticle runs the lookup on a connection checked out for this call only.
// The connection is released whether or not a row is found.
func (s *SQLStore) FindArticle(
	ctx context.Context, code lawname.Code, number int) (*models.Article, error) {
	var a models.Article
	err := s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return a.GetByCodeAndNumber(ctx, tx, string(code), number)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
