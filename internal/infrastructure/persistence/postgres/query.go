package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/blend/internal/domain/query"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

// productColumns maps query fields to product columns.
var productColumns = map[string]string{
	query.FieldID:            "id",
	query.FieldTitle:         "title",
	query.FieldPrice:         "price",
	query.FieldCategoryID:    "category_id",
	query.FieldSubcategoryID: "subcategory_id",
	query.FieldDisabled:      "disabled",
	query.FieldIsFeatured:    "is_featured",
	query.FieldIsBestSeller:  "is_best_seller",
	query.FieldIsBestSelect:  "is_best_select",
}

// likeEscaper escapes LIKE wildcards so search text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyPredicates adds one WHERE clause per predicate.
func applyPredicates(db *gorm.DB, preds []query.Predicate, columns map[string]string) (*gorm.DB, error) {
	for _, p := range preds {
		col, ok := columns[p.Field]
		if !ok {
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "unknown filter field %q", p.Field)
		}

		switch p.Op {
		case query.OpEq:
			db = db.Where(col+" = ?", p.Value)
		case query.OpNeq:
			db = db.Where(col+" <> ?", p.Value)
		case query.OpGte:
			db = db.Where(col+" >= ?", p.Value)
		case query.OpLte:
			db = db.Where(col+" <= ?", p.Value)
		case query.OpContains:
			pattern := "%" + likeEscaper.Replace(strings.ToLower(fmt.Sprint(p.Value))) + "%"
			db = db.Where("LOWER("+col+`) LIKE ? ESCAPE '\'`, pattern)
		default:
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "unsupported operator on %q", p.Field)
		}
	}
	return db, nil
}

// applySort orders the result set. id is the final tie breaker so pages
// never overlap.
func applySort(db *gorm.DB, key query.SortKey) *gorm.DB {
	switch key {
	case query.SortNewest:
		db = db.Order("created_at DESC")
	case query.SortOldest:
		db = db.Order("created_at ASC")
	case query.SortPriceHighToLow:
		db = db.Order("price DESC")
	case query.SortPriceLowToHigh:
		db = db.Order("price ASC")
	default:
		db = db.Order("priority DESC").Order("created_at DESC")
	}
	return db.Order("id ASC")
}

// applyPage limits the result set to the page window.
func applyPage(db *gorm.DB, page query.Page) *gorm.DB {
	if !page.Enabled() {
		return db
	}
	return db.Limit(page.Limit).Offset(page.Offset())
}
