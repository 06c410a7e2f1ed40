// internal/schema/builders/product_test.go
package builders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/config"
	"schema-engine/internal/common/errors"
	"schema-engine/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var testClock = func() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func createTestShop() *models.ShopInfo {
	return &models.ShopInfo{
		Name:     "Acme Goods",
		Domain:   "acme-goods.myshopify.com",
		Currency: "USD",
	}
}

func createTestProduct() *models.Product {
	return &models.Product{
		ID:          "prod-1",
		Handle:      "classic-tee",
		Title:       "Classic Tee",
		BodyHTML:    "<p>A soft cotton tee for <strong>everyday</strong> wear.</p>",
		Vendor:      "Acme Apparel",
		ProductType: "Clothing",
		Images: []models.ProductImage{
			{URL: "https://cdn.example.com/tee-front.jpg", Width: 800, Height: 800},
			{URL: "https://cdn.example.com/tee-back.jpg", Width: 800, Height: 800},
		},
		Variants: []models.Variant{
			{ID: "v1", Title: "Small", SKU: "TEE-S", Price: "19.99", InventoryQuantity: 5},
			{ID: "v2", Title: "Large", SKU: "TEE-L", Price: "21.99", InventoryQuantity: 0},
		},
		CategoryPath: []string{"Home", "Apparel", "Classic Tee"},
	}
}

func buildProduct(t *testing.T, p *models.Product, cfg config.GenerationConfig) map[string]interface{} {
	t.Helper()
	doc, err := NewProductBuilderAt(testClock).Build(Input{Product: p, Shop: createTestShop(), Config: cfg})
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc.Properties
}

// ==========================
// Core Functionality Tests
// ==========================

func TestProductBuilder_Build_CompleteProduct(t *testing.T) {
	props := buildProduct(t, createTestProduct(), config.GenerationConfig{})

	assert.Equal(t, "Classic Tee", props["name"])
	assert.Equal(t, "A soft cotton tee for everyday wear.", props["description"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"@type": "ImageObject", "url": "https://cdn.example.com/tee-front.jpg", "width": 800, "height": 800},
		map[string]interface{}{"@type": "ImageObject", "url": "https://cdn.example.com/tee-back.jpg", "width": 800, "height": 800},
	}, props["image"])
	assert.Equal(t, "https://acme-goods.myshopify.com/products/classic-tee", props["url"])
	assert.Equal(t, "TEE-S", props["sku"])
	assert.Equal(t, "Apparel & Accessories", props["category"])

	brand, ok := props["brand"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Acme Apparel", brand["name"])
}

func TestProductBuilder_Build_OffersPerVariant(t *testing.T) {
	props := buildProduct(t, createTestProduct(), config.GenerationConfig{})

	offers, ok := props["offers"].([]interface{})
	require.True(t, ok)
	require.Len(t, offers, 2)

	first := offers[0].(map[string]interface{})
	assert.Equal(t, "19.99", first["price"])
	assert.Equal(t, "USD", first["priceCurrency"])
	assert.Equal(t, "https://schema.org/InStock", first["availability"])
	assert.Equal(t, "2024-09-15", first["priceValidUntil"])
	assert.Equal(t, "TEE-S", first["sku"])

	seller := first["seller"].(map[string]interface{})
	assert.Equal(t, "Acme Goods", seller["name"])

	second := offers[1].(map[string]interface{})
	assert.Equal(t, "https://schema.org/OutOfStock", second["availability"])
}

func TestProductBuilder_Build_NoVariants(t *testing.T) {
	p := &models.Product{
		ID:       "prod-2",
		Handle:   "mug",
		Title:    "Mug",
		BodyHTML: "<p>Ceramic mug</p>",
		Price:    "9.99",
	}
	props := buildProduct(t, p, config.GenerationConfig{})

	offers := props["offers"].([]interface{})
	require.Len(t, offers, 1)
	offer := offers[0].(map[string]interface{})
	assert.Equal(t, "9.99", offer["price"])
	assert.Equal(t, "USD", offer["priceCurrency"])

	// Handle stands in for a missing SKU.
	assert.Equal(t, "mug", props["sku"])
	// No images: the property is omitted, never empty.
	assert.False(t, hasKey(props, "image"))
}

func TestProductBuilder_Build_ImageWithoutDimensions(t *testing.T) {
	p := createTestProduct()
	p.Images = []models.ProductImage{
		{URL: "https://cdn.example.com/tee.jpg"},
		{URL: ""},
	}

	props := buildProduct(t, p, config.GenerationConfig{})
	// No dimensions on file: a bare URL, with blank entries skipped.
	assert.Equal(t, []interface{}{"https://cdn.example.com/tee.jpg"}, props["image"])
}

func TestProductBuilder_Build_BrandFallsBackToShopName(t *testing.T) {
	p := createTestProduct()
	p.Vendor = ""
	props := buildProduct(t, p, config.GenerationConfig{})

	brand := props["brand"].(map[string]interface{})
	assert.Equal(t, "Acme Goods", brand["name"])
}

func TestProductBuilder_Build_VariantsIncludedWhenEnabled(t *testing.T) {
	p := createTestProduct()

	withVariants := buildProduct(t, p, config.GenerationConfig{IncludeVariants: true})
	variants, ok := withVariants["hasVariant"].([]interface{})
	require.True(t, ok)
	assert.Len(t, variants, 2)

	withoutVariants := buildProduct(t, p, config.GenerationConfig{})
	assert.False(t, hasKey(withoutVariants, "hasVariant"))
}

func TestProductBuilder_Build_Weight(t *testing.T) {
	p := createTestProduct()
	p.Variants[0].Weight = 180
	p.Variants[0].WeightUnit = "g"

	props := buildProduct(t, p, config.GenerationConfig{})
	weight := props["weight"].(map[string]interface{})
	assert.Equal(t, "QuantitativeValue", weight["@type"])
	assert.Equal(t, 180.0, weight["value"])
}

// ==========================
// Error Handling Tests
// ==========================

func TestProductBuilder_Build_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.Product)
		wantErr string
	}{
		{
			name:    "missing title",
			mutate:  func(p *models.Product) { p.Title = "" },
			wantErr: "title",
		},
		{
			name:    "missing id",
			mutate:  func(p *models.Product) { p.ID = "" },
			wantErr: "id",
		},
		{
			name: "missing variant price",
			mutate: func(p *models.Product) {
				p.Variants[0].Price = ""
			},
			wantErr: "price",
		},
		{
			name: "missing product price without variants",
			mutate: func(p *models.Product) {
				p.Variants = nil
				p.Price = ""
			},
			wantErr: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := createTestProduct()
			tt.mutate(p)

			doc, err := NewProductBuilderAt(testClock).Build(Input{Product: p, Shop: createTestShop()})
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeMissingRequiredField, errors.CodeOf(err))

			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Contains(t, stdErr.Details, tt.wantErr)
		})
	}
}

// ==========================
// Helper Function Tests
// ==========================

func TestCurrencyFor_Fallbacks(t *testing.T) {
	shop := &models.ShopInfo{Currency: "EUR"}

	assert.Equal(t, "GBP", currencyFor("CAD", "GBP", shop))
	assert.Equal(t, "CAD", currencyFor("CAD", "", shop))
	assert.Equal(t, "EUR", currencyFor("", "", shop))
	assert.Equal(t, "USD", currencyFor("", "", &models.ShopInfo{}))
}

func TestAvailabilityFor(t *testing.T) {
	assert.Equal(t, "https://schema.org/InStock", availabilityFor("in_stock", 0))
	assert.Equal(t, "https://schema.org/OutOfStock", availabilityFor("out_of_stock", 10))
	assert.Equal(t, "https://schema.org/PreOrder", availabilityFor("preorder", 0))
	assert.Equal(t, "https://schema.org/InStock", availabilityFor("", 3))
	assert.Equal(t, "https://schema.org/OutOfStock", availabilityFor("", 0))
}

func hasKey(props map[string]interface{}, key string) bool {
	_, ok := props[key]
	return ok
}
