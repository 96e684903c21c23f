package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/join-board-api/internal/utils"
)

const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// Search matches every whitespace separated term case-insensitively against any of the columns.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		terms := strings.Fields(strings.ReplaceAll(term, ",", " "))
		if len(terms) == 0 || len(columns) == 0 {
			return db
		}

		conditions := make([]string, len(columns))
		for i, column := range columns {
			conditions[i] = fmt.Sprintf("LOWER(%s) LIKE LOWER(?) ESCAPE '%s'", column, likeEscape)
		}
		expr := "(" + strings.Join(conditions, " OR ") + ")"

		for _, t := range terms {
			pattern := "%" + likeReplacer.Replace(t) + "%"
			args := make([]interface{}, len(columns))
			for i := range args {
				args[i] = pattern
			}
			db = db.Where(expr, args...)
		}
		return db
	}
}

// Ordering applies the requested order, or the defaults when none was requested.
// Rows that compare equal are ordered by id, so the id always comes last.
func Ordering(fields []utils.OrderField, defaults ...utils.OrderField) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		applied := fields
		if len(applied) == 0 {
			applied = defaults
		}
		byID := false
		for _, f := range applied {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: f.Column},
				Desc:   f.Desc,
			})
			byID = byID || f.Column == "id"
		}
		if !byID {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		}
		return db
	}
}
