// internal/app/store/storeutil/storeutil.go

// Package storeutil holds small helpers shared by the collection
// stores.
package storeutil

import "go.mongodb.org/mongo-driver/mongo/options"

// DefaultPageSize is the page limit applied when a caller passes a
// non-positive limit.
const DefaultPageSize = 20

// Paginate builds find options for one page of results. Pages are
// 1-based; a non-positive page reads the first page.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	skip := (page - 1) * limit
	return options.Find().SetLimit(limit).SetSkip(skip)
}
