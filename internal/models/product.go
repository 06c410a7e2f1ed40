package models

// Product is the normalized per-product record the fetch layer hands to the
// generator. It is the source of truth for the Product, Breadcrumb and FAQ
// builders.
type Product struct {
	ID           string         `json:"id"`
	Handle       string         `json:"handle"`
	Title        string         `json:"title"`
	BodyHTML     string         `json:"body_html,omitempty"`
	Vendor       string         `json:"vendor,omitempty"`
	ProductType  string         `json:"product_type,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Images       []ProductImage `json:"images,omitempty"`
	Price        string         `json:"price,omitempty"`
	Currency     string         `json:"currency,omitempty"`
	Availability string         `json:"availability,omitempty"`
	Variants     []Variant      `json:"variants,omitempty"`
	CategoryPath []string       `json:"category_path,omitempty"`
	FAQ          []FAQEntry     `json:"faq,omitempty"`
}

// ProductImage is one image with the metadata the platform exposes.
type ProductImage struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Variant is one sellable attribute combination of a product.
type Variant struct {
	ID                string  `json:"id"`
	Title             string  `json:"title,omitempty"`
	SKU               string  `json:"sku,omitempty"`
	Price             string  `json:"price"`
	Currency          string  `json:"currency,omitempty"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Weight            float64 `json:"weight,omitempty"`
	WeightUnit        string  `json:"weight_unit,omitempty"`
}

// FAQEntry is one manually curated question/answer pair on a product.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FirstSKU returns the leading variant's SKU, falling back to the handle so a
// Product document always carries an identifier.
func (p *Product) FirstSKU() string {
	if len(p.Variants) > 0 && p.Variants[0].SKU != "" {
		return p.Variants[0].SKU
	}
	return p.Handle
}
