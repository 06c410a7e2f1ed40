package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"schema-engine/internal/schema/schematype"
)

var (
	requiredProductProps    = []string{"name", "description", "offers", "brand"}
	recommendedProductProps = []string{"sku", "category", "image", "url"}

	requiredOrganizationProps    = []string{"name", "url"}
	recommendedOrganizationProps = []string{"description", "contactPoint", "address", "sameAs"}

	requiredOfferProps = []string{"price", "priceCurrency", "availability"}

	pricePattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// minDescriptionLength below which the stylistic suggestion fires.
const minDescriptionLength = 50

// minImageWidth is the platform floor for product image width.
const minImageWidth = 160

func (v *Validator) checkProduct(doc *schematype.SchemaDocument, path string) []Finding {
	var findings []Finding

	for _, prop := range requiredProductProps {
		if !present(doc, prop) {
			findings = append(findings, v.finding("product.required",
				fmt.Sprintf("missing required property: %s", prop),
				path+"."+prop))
		}
	}
	for _, prop := range recommendedProductProps {
		if prop == "image" && v.platformEnabled("platform.image") {
			// Severity follows the platform rule in strict mode.
			continue
		}
		if !present(doc, prop) {
			findings = append(findings, v.finding("product.recommended",
				fmt.Sprintf("missing recommended property: %s", prop),
				path+"."+prop))
		}
	}

	if desc, ok := doc.Get("description").(string); ok && desc != "" && len(desc) < minDescriptionLength {
		findings = append(findings, v.finding("style.description.length",
			"description is short for a rich result snippet",
			path+".description"))
	}

	findings = append(findings, v.checkOffers(doc, path)...)

	if v.strict {
		findings = append(findings, v.checkPlatformProduct(doc, path)...)
	}

	return findings
}

func (v *Validator) checkOffers(doc *schematype.SchemaDocument, path string) []Finding {
	var findings []Finding

	offers, ok := asSlice(doc.Get("offers"))
	if !ok {
		return findings
	}

	for i, raw := range offers {
		offer, ok := raw.(map[string]interface{})
		offerPath := fmt.Sprintf("%s.offers[%d]", path, i)
		if !ok {
			findings = append(findings, v.finding("offer.required",
				"offer must be an object", offerPath))
			continue
		}

		for _, prop := range requiredOfferProps {
			if _, exists := offer[prop]; !exists {
				findings = append(findings, v.finding("offer.required",
					fmt.Sprintf("offer missing required property: %s", prop),
					offerPath+"."+prop))
			}
		}

		if price, exists := offer["price"]; exists {
			if s, ok := price.(string); !ok || !pricePattern.MatchString(s) {
				findings = append(findings, v.finding("offer.price.format",
					"price must be a non-negative decimal string",
					offerPath+".price"))
			}
		}

		if availability, exists := offer["availability"]; exists {
			if s, ok := availability.(string); !ok || !strings.HasPrefix(s, "https://schema.org/") {
				findings = append(findings, v.finding("offer.availability.url",
					"availability should be a schema.org URL",
					offerPath+".availability"))
			}
		}

		if v.platformEnabled("platform.price_valid_until") {
			if _, exists := offer["priceValidUntil"]; !exists {
				findings = append(findings, v.finding("platform.price_valid_until",
					"offer has no priceValidUntil", offerPath+".priceValidUntil"))
			}
		}
	}

	return findings
}

func (v *Validator) checkPlatformProduct(doc *schematype.SchemaDocument, path string) []Finding {
	var findings []Finding

	if v.platformEnabled("platform.image") && !present(doc, "image") {
		findings = append(findings, v.finding("platform.image",
			"product has no image", path+".image"))
	}

	if v.platformEnabled("platform.image.resolution") {
		if images, ok := asSlice(doc.Get("image")); ok {
			for i, raw := range images {
				if img, ok := raw.(map[string]interface{}); ok {
					if width, ok := numeric(img["width"]); ok && width < minImageWidth {
						findings = append(findings, v.finding("platform.image.resolution",
							fmt.Sprintf("image narrower than %dpx", minImageWidth),
							fmt.Sprintf("%s.image[%d]", path, i)))
					}
				}
			}
		}
	}

	if v.platformEnabled("platform.aggregate_rating") && !present(doc, "aggregateRating") {
		findings = append(findings, v.finding("platform.aggregate_rating",
			"product carries no aggregateRating", path+".aggregateRating"))
	}

	return findings
}

func (v *Validator) checkOrganization(doc *schematype.SchemaDocument, path string) []Finding {
	var findings []Finding

	for _, prop := range requiredOrganizationProps {
		if !present(doc, prop) {
			findings = append(findings, v.finding("organization.required",
				fmt.Sprintf("missing required property: %s", prop),
				path+"."+prop))
		}
	}
	for _, prop := range recommendedOrganizationProps {
		if !present(doc, prop) {
			findings = append(findings, v.finding("organization.recommended",
				fmt.Sprintf("missing recommended property: %s", prop),
				path+"."+prop))
		}
	}

	return findings
}

func (v *Validator) checkBreadcrumb(doc *schematype.SchemaDocument, path string) []Finding {
	var findings []Finding

	items, ok := asSlice(doc.Get("itemListElement"))
	if !ok || len(items) == 0 {
		findings = append(findings, v.finding("breadcrumb.items",
			"itemListElement must be a non-empty list", path+".itemListElement"))
		return findings
	}

	for i, raw := range items {
		itemPath := fmt.Sprintf("%s.itemListElement[%d]", path, i)
		item, ok := raw.(map[string]interface{})
		if !ok {
			findings = append(findings, v.finding("breadcrumb.items",
				"list item must be an object", itemPath))
			continue
		}
		if t, _ := item["@type"].(string); t != "ListItem" {
			findings = append(findings, v.finding("breadcrumb.items",
				"list item must have @type ListItem", itemPath))
		}
		if name, _ := item["name"].(string); name == "" {
			findings = append(findings, v.finding("breadcrumb.items",
				"list item missing name", itemPath+".name"))
		}
		pos, ok := numeric(item["position"])
		if !ok {
			findings = append(findings, v.finding("breadcrumb.position",
				"list item missing position", itemPath+".position"))
			continue
		}
		if int(pos) != i+1 {
			findings = append(findings, v.finding("breadcrumb.position",
				fmt.Sprintf("expected position %d, got %d", i+1, int(pos)),
				itemPath+".position"))
		}
	}

	return findings
}

func (v *Validator) checkFAQ(doc *schematype.SchemaDocument, path string) []Finding {
	var findings []Finding

	entities, ok := asSlice(doc.Get("mainEntity"))
	if !ok || len(entities) == 0 {
		findings = append(findings, v.finding("faq.entity",
			"mainEntity must be a non-empty list", path+".mainEntity"))
		return findings
	}

	for i, raw := range entities {
		entityPath := fmt.Sprintf("%s.mainEntity[%d]", path, i)
		entity, ok := raw.(map[string]interface{})
		if !ok {
			findings = append(findings, v.finding("faq.entity",
				"FAQ entity must be an object", entityPath))
			continue
		}
		if t, _ := entity["@type"].(string); t != "Question" {
			findings = append(findings, v.finding("faq.entity",
				"FAQ entity must have @type Question", entityPath))
		}
		if name, _ := entity["name"].(string); name == "" {
			findings = append(findings, v.finding("faq.entity",
				"question missing name", entityPath+".name"))
		}
		answer, ok := entity["acceptedAnswer"].(map[string]interface{})
		if !ok {
			findings = append(findings, v.finding("faq.entity",
				"question missing acceptedAnswer", entityPath+".acceptedAnswer"))
			continue
		}
		if text, _ := answer["text"].(string); text == "" {
			findings = append(findings, v.finding("faq.entity",
				"accepted answer missing text", entityPath+".acceptedAnswer.text"))
		}
	}

	return findings
}

func (v *Validator) checkRating(doc *schematype.SchemaDocument, path string) []Finding {
	var findings []Finding

	value, ok := ratingValue(doc.Get("ratingValue"))
	if !ok {
		findings = append(findings, v.finding("rating.range",
			"ratingValue must be numeric", path+".ratingValue"))
		return findings
	}

	best := 5.0
	if b, ok := ratingValue(doc.Get("bestRating")); ok {
		best = b
	}
	worst := 1.0
	if w, ok := ratingValue(doc.Get("worstRating")); ok {
		worst = w
	}

	if value < worst || value > best {
		findings = append(findings, v.finding("rating.range",
			fmt.Sprintf("ratingValue %g outside [%g, %g]", value, worst, best),
			path+".ratingValue"))
	}

	return findings
}

// present reports whether a property exists with a non-empty value.
func present(doc *schematype.SchemaDocument, prop string) bool {
	value, ok := doc.Properties[prop]
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	case []string:
		return len(v) > 0
	}
	return true
}

// asSlice normalizes the single-value and sequence forms schema.org allows.
func asSlice(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	default:
		return []interface{}{v}, true
	}
}

func numeric(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func ratingValue(value interface{}) (float64, bool) {
	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return numeric(value)
}
