package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrArticleNotFound is returned when no article exists for a (code, number)
// pair.
var ErrArticleNotFound = errors.New("article not found")

// Article is a numbered provision of a law.
//
// The table predates this service, so the column names follow the original
// schema: the article number lives in "id".
type Article struct {
	// Code is the canonical law code (see pkg/lawname).
	Code string `gorm:"column:code;primaryKey;not null" json:"code" yaml:"code"`

	// Number is the article number, unique within Code.
	Number int `gorm:"column:id;primaryKey;autoIncrement:false;not null" json:"id" yaml:"id"`

	// Text is the article body, stored and returned verbatim.
	Text string `gorm:"column:text;not null" json:"text" yaml:"text"`
}

// TableName specifies the table name for GORM.
func (Article) TableName() string {
	return "articles"
}

// Articles is a slice of articles.
type Articles []Article

// GetByCodeAndNumber fills a with the first row keyed by (code, number). It
// returns ErrArticleNotFound when no row matches.
func (a *Article) GetByCodeAndNumber(
	ctx context.Context, db *gorm.DB, code string, number int) error {
	res := db.WithContext(ctx).
		Select("code", "id", "text").
		Where("code = ? AND id = ?", code, number).
		Limit(1).
		Find(a)
	if res.Error != nil {
		return fmt.Errorf("error querying article: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// Upsert inserts the articles, replacing the text of rows that already exist
// for the same (code, number).
func (as Articles) Upsert(ctx context.Context, db *gorm.DB, batchSize int) error {
	if len(as) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text"}),
		}).
		CreateInBatches(&as, batchSize).Error
}

// CountArticlesByCode returns the number of stored articles per law code.
func CountArticlesByCode(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Code  string
		Total int64
	}
	if err := db.WithContext(ctx).
		Model(&Article{}).
		Select("code, COUNT(*) AS total").
		Group("code").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error counting articles: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Code] = r.Total
	}
	return counts, nil
}
