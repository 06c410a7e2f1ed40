// Package review defines the capability contract for aggregate-rating
// sourcing and its implementations. Absence of review data is a valid,
// non-error outcome.
package review

import (
	"context"

	"schema-engine/internal/models"
)

// Adapter is implemented by review platform integrations. Fetch returns
// (nil, nil) when the product has no review data; errors are recoverable and
// the generator treats them as absence for the run. Implementations make a
// single attempt per call.
type Adapter interface {
	Fetch(ctx context.Context, productID, shopDomain string) (*models.ReviewData, error)
}

// Static serves a fixed review table, used by tests and offline runs.
type Static struct {
	Data map[string]*models.ReviewData
}

func NewStatic(data map[string]*models.ReviewData) *Static {
	return &Static{Data: data}
}

func (s *Static) Fetch(ctx context.Context, productID, shopDomain string) (*models.ReviewData, error) {
	return s.Data[productID], nil
}
