package specification

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchesQuery performs token-overlap full-text matching against the
// stored search_vector column. The caller is expected to sanitize the
// query first; plainto_tsquery then treats whatever remains as plain
// tokens, so user input can never produce a syntax error.
type MatchesQuery struct {
	Query string
}

func (s MatchesQuery) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("search_vector @@ plainto_tsquery('english', ?)", s.Query)
}

// RankByRelevance orders matches by ts_rank, best first. Ties fall back
// to insertion order, which is the documented degraded ordering when the
// ranking signal cannot separate results.
type RankByRelevance struct {
	Query string
}

func (s RankByRelevance) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderBy{
		Expression: clause.Expr{
			SQL:                "ts_rank(search_vector, plainto_tsquery('english', ?)) DESC, created_at ASC",
			Vars:               []interface{}{s.Query},
			WithoutParentheses: true,
		},
	})
}
