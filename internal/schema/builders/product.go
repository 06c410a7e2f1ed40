package builders

import (
	"fmt"
	"time"

	"schema-engine/internal/common/errors"
	"schema-engine/internal/common/htmltext"
	"schema-engine/internal/models"
	"schema-engine/internal/schema/schematype"
)

// priceValidityMonths is how far ahead offer prices are declared valid.
const priceValidityMonths = 6

// ProductBuilder maps a product onto a schema.org Product document.
type ProductBuilder struct {
	now func() time.Time
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{now: time.Now}
}

// NewProductBuilderAt pins the clock, keeping priceValidUntil deterministic
// in tests.
func NewProductBuilderAt(now func() time.Time) *ProductBuilder {
	return &ProductBuilder{now: now}
}

func (b *ProductBuilder) Type() schematype.Type {
	return schematype.TypeProduct
}

func (b *ProductBuilder) Build(in Input) (*schematype.SchemaDocument, error) {
	p, shop := in.Product, in.Shop

	if p.ID == "" {
		return nil, errors.NewMissingRequiredFieldError(p.Handle, "id")
	}
	if p.Title == "" {
		return nil, errors.NewMissingRequiredFieldError(p.ID, "title")
	}

	doc := schematype.NewDocument(schematype.TypeProduct)
	doc.Set("name", p.Title)
	doc.Set("description", htmltext.Clean(p.BodyHTML))
	doc.Set("image", imageValues(p))
	doc.Set("url", productURL(shop, p))
	doc.Set("sku", p.FirstSKU())
	doc.Set("category", Categorize(p))

	brandName := p.Vendor
	if brandName == "" {
		brandName = shop.Name
	}
	if brandName != "" {
		doc.Set("brand", map[string]interface{}{
			"@type": "Brand",
			"name":  brandName,
		})
	}

	offers, err := b.buildOffers(p, shop)
	if err != nil {
		return nil, err
	}
	doc.Set("offers", offers)

	if in.Config.IncludeVariants && len(p.Variants) > 1 {
		doc.Set("hasVariant", b.buildVariantModels(p))
	}

	if len(p.Variants) > 0 && p.Variants[0].Weight > 0 {
		unit := p.Variants[0].WeightUnit
		if unit == "" {
			unit = "g"
		}
		doc.Set("weight", map[string]interface{}{
			"@type":    "QuantitativeValue",
			"value":    p.Variants[0].Weight,
			"unitCode": unit,
		})
	}

	return doc, nil
}

// buildOffers emits one Offer per variant. Products without variants still
// need an offer, synthesized from the product-level price.
func (b *ProductBuilder) buildOffers(p *models.Product, shop *models.ShopInfo) ([]interface{}, error) {
	validUntil := b.now().AddDate(0, priceValidityMonths, 0).Format("2006-01-02")

	if len(p.Variants) == 0 {
		if p.Price == "" {
			return nil, errors.NewMissingRequiredFieldError(p.ID, "price")
		}
		return []interface{}{b.offer(p.Price, currencyFor(p.Currency, "", shop), availabilityFor(p.Availability, 1), p.Handle, validUntil, shop)}, nil
	}

	offers := make([]interface{}, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.Price == "" {
			return nil, errors.NewMissingRequiredFieldError(p.ID, fmt.Sprintf("variants[%s].price", v.ID))
		}
		offers = append(offers, b.offer(
			v.Price,
			currencyFor(p.Currency, v.Currency, shop),
			availabilityFor("", v.InventoryQuantity),
			v.SKU,
			validUntil,
			shop,
		))
	}
	return offers, nil
}

func (b *ProductBuilder) offer(price, currency, availability, sku, validUntil string, shop *models.ShopInfo) map[string]interface{} {
	offer := map[string]interface{}{
		"@type":           "Offer",
		"price":           price,
		"priceCurrency":   currency,
		"availability":    availability,
		"priceValidUntil": validUntil,
	}
	if sku != "" {
		offer["sku"] = sku
	}
	if shop.Name != "" {
		offer["seller"] = map[string]interface{}{
			"@type": "Organization",
			"name":  shop.Name,
		}
	}
	return offer
}

func (b *ProductBuilder) buildVariantModels(p *models.Product) []interface{} {
	variants := make([]interface{}, 0, len(p.Variants))
	for _, v := range p.Variants {
		model := map[string]interface{}{
			"@type": "ProductModel",
			"name":  v.Title,
		}
		if v.SKU != "" {
			model["sku"] = v.SKU
		}
		model["offers"] = map[string]interface{}{
			"@type":        "Offer",
			"price":        v.Price,
			"availability": availabilityFor("", v.InventoryQuantity),
		}
		variants = append(variants, model)
	}
	return variants
}

// imageValues maps product images to schema.org values: an ImageObject when
// the source carries dimensions, a plain URL otherwise. Dimensions feed the
// resolution checks.
func imageValues(p *models.Product) []interface{} {
	var images []interface{}
	for _, img := range p.Images {
		if img.URL == "" {
			continue
		}
		if img.Width > 0 || img.Height > 0 {
			obj := map[string]interface{}{
				"@type": "ImageObject",
				"url":   img.URL,
			}
			if img.Width > 0 {
				obj["width"] = img.Width
			}
			if img.Height > 0 {
				obj["height"] = img.Height
			}
			images = append(images, obj)
			continue
		}
		images = append(images, img.URL)
	}
	return images
}

// currencyFor resolves a currency with fallbacks: variant, product, shop
// default, then USD.
func currencyFor(productCurrency, variantCurrency string, shop *models.ShopInfo) string {
	switch {
	case variantCurrency != "":
		return variantCurrency
	case productCurrency != "":
		return productCurrency
	case shop.Currency != "":
		return shop.Currency
	default:
		return "USD"
	}
}

func availabilityFor(declared string, inventory int) string {
	switch declared {
	case "in_stock":
		return schematype.AvailabilityInStock
	case "out_of_stock":
		return schematype.AvailabilityOutOfStock
	case "preorder":
		return schematype.AvailabilityPreOrder
	}
	if inventory > 0 {
		return schematype.AvailabilityInStock
	}
	return schematype.AvailabilityOutOfStock
}

func productURL(shop *models.ShopInfo, p *models.Product) string {
	if p.Handle == "" {
		return ""
	}
	return fmt.Sprintf("%s/products/%s", shop.BaseURL(), p.Handle)
}
