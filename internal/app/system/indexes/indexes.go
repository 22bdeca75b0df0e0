// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/vitrine/internal/app/store/brandstore"
	"github.com/dalemusser/vitrine/internal/app/store/categorystore"
	"github.com/dalemusser/vitrine/internal/app/store/layoutstore"
	"github.com/dalemusser/vitrine/internal/app/store/orderstore"
	"github.com/dalemusser/vitrine/internal/app/store/productstore"
	"github.com/dalemusser/vitrine/internal/app/store/sectionstore"
	"github.com/dalemusser/vitrine/internal/app/store/userstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context) error) {
		zap.L().Info("ensuring indexes", zap.String("collection", name))
		if err := fn(ctx); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", userstore.New(db).EnsureIndexes)
	ensure("products", productstore.New(db).EnsureIndexes)
	ensure("categories", categorystore.New(db).EnsureIndexes)
	ensure("brands", brandstore.New(db).EnsureIndexes)
	ensure("homepage_sections", sectionstore.New(db).EnsureIndexes)
	ensure("product_page_layout", layoutstore.New(db).EnsureIndexes)
	ensure("orders", orderstore.New(db).EnsureIndexes)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
