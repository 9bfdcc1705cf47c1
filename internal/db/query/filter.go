// Package query turns the generic list/filter request shape
// ({filter, sort, limit}) into a GORM query. Field names arriving from
// clients are JSON names; every entity hands in a whitelist mapping them to
// column names, so nothing client-controlled is ever spliced into SQL.
package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Params is the wire shape of a list or filter request.
type Params struct {
	Filter map[string]interface{} `json:"filter"`
	Sort   string                 `json:"sort"`
	Limit  int                    `json:"limit"`
}

// ErrUnknownField wraps the offending field name.
type ErrUnknownField struct {
	Field string
}

func (e ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// Apply adds WHERE, ORDER BY and LIMIT clauses for the given params.
// allowed maps JSON field names to column names; the default sort is used
// when params carry none. A sort of "-field" means descending.
func Apply(tx *gorm.DB, p Params, allowed map[string]string, defaultSort string, defaultLimit int) (*gorm.DB, error) {
	for field, value := range p.Filter {
		col, ok := allowed[field]
		if !ok {
			return nil, ErrUnknownField{Field: field}
		}
		switch v := value.(type) {
		case []interface{}:
			tx = tx.Where(fmt.Sprintf("%s IN ?", col), v)
		default:
			tx = tx.Where(fmt.Sprintf("%s = ?", col), v)
		}
	}

	sort := p.Sort
	if sort == "" {
		sort = defaultSort
	}
	if sort != "" {
		order, err := orderClause(sort, allowed)
		if err != nil {
			return nil, err
		}
		tx = tx.Order(order)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	return tx, nil
}

func orderClause(sort string, allowed map[string]string) (string, error) {
	desc := strings.HasPrefix(sort, "-")
	field := strings.TrimPrefix(sort, "-")
	col, ok := allowed[field]
	if !ok {
		return "", ErrUnknownField{Field: field}
	}
	if desc {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}
