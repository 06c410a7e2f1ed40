package builders

import (
	"strings"

	"schema-engine/internal/models"
)

type categoryRule struct {
	keyword  string
	category string
}

// categoryRules maps product-type and tag keywords to storefront categories.
// Order matters: the first matching keyword wins, which keeps categorization
// deterministic.
var categoryRules = []categoryRule{
	{"apparel", "Apparel & Accessories"},
	{"clothing", "Apparel & Accessories"},
	{"shoes", "Apparel & Accessories"},
	{"accessories", "Apparel & Accessories"},
	{"jewelry", "Apparel & Accessories"},
	{"bags", "Apparel & Accessories"},
	{"electronics", "Electronics"},
	{"computers", "Electronics"},
	{"phones", "Electronics"},
	{"tablets", "Electronics"},
	{"audio", "Electronics"},
	{"cameras", "Electronics"},
	{"home", "Home & Garden"},
	{"furniture", "Home & Garden"},
	{"decor", "Home & Garden"},
	{"kitchen", "Home & Garden"},
	{"appliances", "Home & Garden"},
	{"garden", "Home & Garden"},
	{"beauty", "Health & Beauty"},
	{"cosmetics", "Health & Beauty"},
	{"skincare", "Health & Beauty"},
	{"health", "Health & Beauty"},
	{"wellness", "Health & Beauty"},
	{"supplements", "Health & Beauty"},
	{"books", "Media"},
	{"movies", "Media"},
	{"music", "Media"},
	{"food", "Food & Beverages"},
	{"beverages", "Food & Beverages"},
	{"drinks", "Food & Beverages"},
	{"snacks", "Food & Beverages"},
	{"sports", "Sports & Recreation"},
	{"fitness", "Sports & Recreation"},
	{"outdoor", "Sports & Recreation"},
	{"recreation", "Sports & Recreation"},
	{"automotive", "Automotive"},
	{"car", "Automotive"},
	{"motorcycle", "Automotive"},
	{"parts", "Automotive"},
	{"toys", "Toys & Games"},
	{"games", "Toys & Games"},
	{"baby", "Baby & Kids"},
	{"kids", "Baby & Kids"},
	{"children", "Baby & Kids"},
	{"pet", "Pet Supplies"},
	{"pets", "Pet Supplies"},
	{"office", "Office & Business"},
	{"business", "Office & Business"},
	{"industrial", "Industrial & Scientific"},
}

const defaultCategory = "Other"

// Categorize derives a storefront category from the product type, then the
// tags. Unmatched products land in the default bucket.
func Categorize(p *models.Product) string {
	productType := strings.ToLower(p.ProductType)
	if productType != "" {
		for _, rule := range categoryRules {
			if strings.Contains(productType, rule.keyword) {
				return rule.category
			}
		}
	}

	for _, tag := range p.Tags {
		lowered := strings.ToLower(tag)
		for _, rule := range categoryRules {
			if strings.Contains(lowered, rule.keyword) {
				return rule.category
			}
		}
	}

	return defaultCategory
}
