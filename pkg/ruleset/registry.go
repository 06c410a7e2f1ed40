package ruleset

import (
	"encoding/json"
	"os"

	"schema-engine/internal/common/errors"
)

// Load reads a rule registry from a JSON file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewRulesetInvalidError(err.Error())
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, errors.NewRulesetInvalidError(err.Error())
	}
	if reg.Version == "" || len(reg.Rules) == 0 {
		return nil, errors.NewRulesetInvalidError("registry needs a version and at least one rule")
	}
	return &reg, nil
}

// Default returns the built-in rule registry.
func Default() *Registry {
	return &Registry{
		Version: "2024.1",
		Rules: []Rule{
			{ID: "product.required", AppliesTo: "Product", Severity: SeverityError,
				Description: "schema.org required Product property is missing",
				Hint:        "populate name, description, offers and brand from the product record"},
			{ID: "product.recommended", AppliesTo: "Product", Severity: SeverityWarning,
				Description: "recommended Product property is missing",
				Hint:        "add sku, category, image or url to improve coverage"},
			{ID: "offer.required", AppliesTo: "Product", Severity: SeverityError,
				Description: "Offer is missing a required property",
				Hint:        "every offer needs price, priceCurrency and availability"},
			{ID: "offer.price.format", AppliesTo: "Product", Severity: SeverityError,
				Description: "offer price must be a non-negative decimal string",
				Hint:        "format prices as decimal strings, e.g. \"9.99\""},
			{ID: "offer.availability.url", AppliesTo: "Product", Severity: SeverityWarning,
				Description: "availability should be a schema.org URL",
				Hint:        "use https://schema.org/InStock or OutOfStock"},
			{ID: "organization.required", AppliesTo: "Organization", Severity: SeverityError,
				Description: "schema.org required Organization property is missing",
				Hint:        "populate name and url from the shop snapshot"},
			{ID: "organization.recommended", AppliesTo: "Organization", Severity: SeverityWarning,
				Description: "recommended Organization property is missing",
				Hint:        "add description, contactPoint, address or sameAs"},
			{ID: "breadcrumb.items", AppliesTo: "BreadcrumbList", Severity: SeverityError,
				Description: "itemListElement must be a non-empty ListItem sequence",
				Hint:        "emit one ListItem per category path segment"},
			{ID: "breadcrumb.position", AppliesTo: "BreadcrumbList", Severity: SeverityError,
				Description: "list item positions must be contiguous starting at 1",
				Hint:        "re-number positions 1..N in path order"},
			{ID: "faq.entity", AppliesTo: "FAQPage", Severity: SeverityError,
				Description: "mainEntity must be a non-empty Question/Answer sequence",
				Hint:        "each question needs a name and an acceptedAnswer with text"},
			{ID: "rating.range", AppliesTo: "AggregateRating", Severity: SeverityError,
				Description: "ratingValue must lie within the declared rating bounds",
				Hint:        "keep ratingValue between worstRating and bestRating"},
			{ID: "document.structure", Severity: SeverityError,
				Description: "document failed the structural JSON schema check",
				Hint:        "compare the document against the schema.org type definition"},
			{ID: "style.description.length", Severity: SeverityInfo,
				Description: "description is shorter than typical rich result snippets",
				Hint:        "aim for at least 50 characters of descriptive copy"},

			// Platform (Rich Results) rules, active under strictPlatformCheck.
			{ID: "platform.image", AppliesTo: "Product", Severity: SeverityWarning, Platform: true,
				Description: "search platforms recommend at least one product image",
				Hint:        "provide an image of at least 160x90 pixels"},
			{ID: "platform.image.resolution", AppliesTo: "Product", Severity: SeverityInfo, Platform: true,
				Description: "image may not meet the platform minimum resolution",
				Hint:        "use images of 1200px or wider for large rich results"},
			{ID: "platform.price_valid_until", AppliesTo: "Product", Severity: SeverityWarning, Platform: true,
				Description: "offers should declare priceValidUntil",
				Hint:        "set priceValidUntil to a future ISO date"},
			{ID: "platform.aggregate_rating", AppliesTo: "Product", Severity: SeverityInfo, Platform: true,
				Description: "aggregateRating unlocks star rich results",
				Hint:        "enable review integration to source ratings"},
		},
	}
}
