// Package builders contains the pure mapping functions that turn normalized
// commerce data into schema.org documents, one builder per document type.
package builders

import (
	"schema-engine/internal/common/config"
	"schema-engine/internal/models"
	"schema-engine/internal/schema/schematype"
)

// Input carries everything a builder may read. Builders never mutate it.
type Input struct {
	Product *models.Product
	Shop    *models.ShopInfo
	Reviews *models.ReviewData
	Config  config.GenerationConfig
}

// Builder maps one slice of the domain onto a schema.org document.
//
// A (nil, nil) return means "not applicable" for this input: the generator
// emits no document rather than an empty or invalid one. An error is always a
// BuildError and drops only the affected product.
type Builder interface {
	Type() schematype.Type
	Build(in Input) (*schematype.SchemaDocument, error)
}

// ForProducts returns the builders invoked once per product, in emission
// order.
func ForProducts() []Builder {
	return []Builder{
		NewProductBuilder(),
		NewBreadcrumbBuilder(),
		NewFAQBuilder(),
		NewReviewBuilder(),
	}
}
