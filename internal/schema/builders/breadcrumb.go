package builders

import (
	"fmt"
	"regexp"
	"strings"

	"schema-engine/internal/models"
	"schema-engine/internal/schema/schematype"
)

// BreadcrumbBuilder maps the product's category path (root to leaf) onto a
// BreadcrumbList. Positions are 1-indexed and contiguous even when the source
// path carries blank segments.
type BreadcrumbBuilder struct{}

func NewBreadcrumbBuilder() *BreadcrumbBuilder {
	return &BreadcrumbBuilder{}
}

func (b *BreadcrumbBuilder) Type() schematype.Type {
	return schematype.TypeBreadcrumbList
}

func (b *BreadcrumbBuilder) Build(in Input) (*schematype.SchemaDocument, error) {
	p, shop := in.Product, in.Shop

	path := cleanPath(p.CategoryPath)
	if len(path) == 0 {
		// No category data: a minimal home-to-product trail still gives the
		// crawler a navigable breadcrumb.
		path = []string{"Home", p.Title}
	}

	items := make([]interface{}, 0, len(path))
	for i, name := range path {
		item := map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     name,
		}
		if target := itemURL(shop, p, name, i == len(path)-1); target != "" {
			item["item"] = target
		}
		items = append(items, item)
	}

	doc := schematype.NewDocument(schematype.TypeBreadcrumbList)
	doc.Set("itemListElement", items)
	return doc, nil
}

func cleanPath(path []string) []string {
	var out []string
	for _, segment := range path {
		if s := strings.TrimSpace(segment); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// itemURL links the leaf to the product page and inner segments to their
// collection pages.
func itemURL(shop *models.ShopInfo, p *models.Product, name string, leaf bool) string {
	if leaf && p.Handle != "" {
		return productURL(shop, p)
	}
	if strings.EqualFold(name, "home") {
		return shop.BaseURL()
	}
	return fmt.Sprintf("%s/collections/%s", shop.BaseURL(), slugify(name))
}

var nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := nonSlugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
