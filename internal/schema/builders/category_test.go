// internal/schema/builders/category_test.go
package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schema-engine/internal/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		product  *models.Product
		expected string
	}{
		{
			name:     "product type match",
			product:  &models.Product{ProductType: "Mens Clothing"},
			expected: "Apparel & Accessories",
		},
		{
			name:     "product type beats tags",
			product:  &models.Product{ProductType: "Electronics", Tags: []string{"home"}},
			expected: "Electronics",
		},
		{
			name:     "tag fallback",
			product:  &models.Product{ProductType: "Misc", Tags: []string{"rare", "skincare"}},
			expected: "Health & Beauty",
		},
		{
			name:     "case insensitive",
			product:  &models.Product{ProductType: "KITCHEN Gadgets"},
			expected: "Home & Garden",
		},
		{
			name:     "no match",
			product:  &models.Product{ProductType: "Mystery", Tags: []string{"unknowable"}},
			expected: "Other",
		},
		{
			name:     "empty product",
			product:  &models.Product{},
			expected: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(tt.product))
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	p := &models.Product{Tags: []string{"garden", "pets"}}

	first := Categorize(p)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Categorize(p))
	}
}
