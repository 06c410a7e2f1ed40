// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShopInfo_Host(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		expected string
	}{
		{name: "full domain", domain: "acme-goods.myshopify.com", expected: "acme-goods.myshopify.com"},
		{name: "custom domain", domain: "shop.acme.com", expected: "shop.acme.com"},
		{name: "bare handle", domain: "acme-goods", expected: "acme-goods.myshopify.com"},
		{name: "whitespace", domain: "  acme-goods  ", expected: "acme-goods.myshopify.com"},
		{name: "empty", domain: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := &ShopInfo{Domain: tt.domain}
			assert.Equal(t, tt.expected, shop.Host())
		})
	}
}

func TestShopInfo_SocialProfileURLs(t *testing.T) {
	shop := &ShopInfo{
		SocialLinks: map[string]string{
			"facebook":  "acmegoods",
			"twitter":   "acmegoods",
			"linkedin":  "https://linkedin.com/company/acme-goods",
			"pinterest": "ignored-platform",
		},
	}

	urls := shop.SocialProfileURLs()
	// Fixed platform order keeps output deterministic regardless of map order.
	assert.Equal(t, []string{
		"https://twitter.com/acmegoods",
		"https://facebook.com/acmegoods",
		"https://linkedin.com/company/acme-goods",
	}, urls)

	assert.Nil(t, (&ShopInfo{}).SocialProfileURLs())
}

func TestProduct_FirstSKU(t *testing.T) {
	withSKU := &Product{Handle: "classic-tee", Variants: []Variant{{SKU: "TEE-S"}}}
	assert.Equal(t, "TEE-S", withSKU.FirstSKU())

	blankSKU := &Product{Handle: "classic-tee", Variants: []Variant{{}}}
	assert.Equal(t, "classic-tee", blankSKU.FirstSKU())

	noVariants := &Product{Handle: "classic-tee"}
	assert.Equal(t, "classic-tee", noVariants.FirstSKU())
}

func TestReviewData_HasRatings(t *testing.T) {
	var missing *ReviewData
	assert.False(t, missing.HasRatings())
	assert.False(t, (&ReviewData{AverageRating: 4.5}).HasRatings())
	assert.True(t, (&ReviewData{AverageRating: 4.5, TotalReviews: 1}).HasRatings())
}

func TestShopAddress_Empty(t *testing.T) {
	assert.True(t, ShopAddress{}.Empty())
	assert.False(t, ShopAddress{City: "Springfield"}.Empty())
}
