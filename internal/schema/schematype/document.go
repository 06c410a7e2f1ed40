// Package schematype holds the typed structured-data documents the builders
// produce and the package that collects them for one generation run.
package schematype

import "encoding/json"

// Type discriminates the schema.org document variants this engine emits.
type Type string

const (
	TypeProduct         Type = "Product"
	TypeOrganization    Type = "Organization"
	TypeBreadcrumbList  Type = "BreadcrumbList"
	TypeFAQPage         Type = "FAQPage"
	TypeAggregateRating Type = "AggregateRating"
)

// Context is the vocabulary every emitted document declares.
const Context = "https://schema.org"

// Availability URLs used in Offer sub-objects.
const (
	AvailabilityInStock    = "https://schema.org/InStock"
	AvailabilityOutOfStock = "https://schema.org/OutOfStock"
	AvailabilityPreOrder   = "https://schema.org/PreOrder"
)

// SchemaDocument is one standalone JSON-LD object: a @type discriminator plus
// the schema.org property map. Builders only add properties; the validator
// decides whether the result is structurally sound.
type SchemaDocument struct {
	Type       Type
	Properties map[string]interface{}
}

// NewDocument creates an empty document of the given type.
func NewDocument(t Type) *SchemaDocument {
	return &SchemaDocument{
		Type:       t,
		Properties: make(map[string]interface{}),
	}
}

// Set assigns a property, skipping empty values so builders omit rather than
// emit blanks.
func (d *SchemaDocument) Set(name string, value interface{}) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case []string:
		if len(v) == 0 {
			return
		}
	case []interface{}:
		if len(v) == 0 {
			return
		}
	case map[string]interface{}:
		if len(v) == 0 {
			return
		}
	}
	d.Properties[name] = value
}

// Get returns a property value, nil when absent.
func (d *SchemaDocument) Get(name string) interface{} {
	return d.Properties[name]
}

// Has reports whether a property is present.
func (d *SchemaDocument) Has(name string) bool {
	_, ok := d.Properties[name]
	return ok
}

// MarshalJSON renders the document as a JSON-LD object with @context and
// @type alongside the properties. Map keys marshal sorted, so output is
// deterministic for a given document.
func (d *SchemaDocument) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Properties)+2)
	for k, v := range d.Properties {
		out[k] = v
	}
	out["@context"] = Context
	out["@type"] = string(d.Type)
	return json.Marshal(out)
}

// UnmarshalJSON restores a document from its JSON-LD form.
func (d *SchemaDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if t, ok := raw["@type"].(string); ok {
		d.Type = Type(t)
	}
	delete(raw, "@context")
	delete(raw, "@type")
	d.Properties = raw
	return nil
}
