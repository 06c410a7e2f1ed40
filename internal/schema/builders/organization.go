package builders

import (
	"schema-engine/internal/common/errors"
	"schema-engine/internal/common/htmltext"
	"schema-engine/internal/models"
	"schema-engine/internal/schema/schematype"
)

// OrganizationBuilder maps the shop snapshot onto an Organization document.
// It runs once per generation, independent of product count.
type OrganizationBuilder struct{}

func NewOrganizationBuilder() *OrganizationBuilder {
	return &OrganizationBuilder{}
}

func (b *OrganizationBuilder) Type() schematype.Type {
	return schematype.TypeOrganization
}

func (b *OrganizationBuilder) Build(in Input) (*schematype.SchemaDocument, error) {
	shop := in.Shop

	if shop.Name == "" {
		return nil, errors.NewBuildFailedError("", "shop name is required for the Organization document")
	}
	if shop.Host() == "" {
		return nil, errors.NewBuildFailedError("", "shop domain is required for the Organization document")
	}

	doc := schematype.NewDocument(schematype.TypeOrganization)
	doc.Set("name", shop.Name)
	doc.Set("url", shop.BaseURL())
	doc.Set("description", htmltext.Clean(shop.Description))

	if contact := contactPoint(shop); contact != nil {
		doc.Set("contactPoint", contact)
	}
	if address := postalAddress(shop); address != nil {
		doc.Set("address", address)
	}
	doc.Set("sameAs", shop.SocialProfileURLs())

	return doc, nil
}

func contactPoint(shop *models.ShopInfo) map[string]interface{} {
	if shop.Phone == "" && shop.Email == "" {
		return nil
	}
	contact := map[string]interface{}{
		"@type":       "ContactPoint",
		"contactType": "customer service",
	}
	if shop.Phone != "" {
		contact["telephone"] = shop.Phone
	}
	if shop.Email != "" {
		contact["email"] = shop.Email
	}
	return contact
}

func postalAddress(shop *models.ShopInfo) map[string]interface{} {
	if shop.Address.Empty() {
		return nil
	}
	return map[string]interface{}{
		"@type":           "PostalAddress",
		"streetAddress":   shop.Address.Street,
		"addressLocality": shop.Address.City,
		"addressRegion":   shop.Address.Region,
		"postalCode":      shop.Address.PostalCode,
		"addressCountry":  shop.Address.Country,
	}
}
