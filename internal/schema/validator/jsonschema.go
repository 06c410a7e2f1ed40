package validator

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"schema-engine/internal/schema/schematype"
)

// Per-type JSON schemas backing the structural pre-pass. They pin value
// shapes; required-property coverage stays with the rule checks so one gap
// yields one finding.
var structuralSchemas = map[schematype.Type]string{
	schematype.TypeProduct: `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"description": {"type": "string"},
			"url": {"type": "string"},
			"sku": {"type": "string"},
			"category": {"type": "string"},
			"image": {"type": "array", "items": {"type": ["string", "object"]}},
			"brand": {"type": "object"},
			"offers": {"type": ["array", "object"]},
			"hasVariant": {"type": "array"},
			"weight": {"type": "object"}
		}
	}`,
	schematype.TypeOrganization: `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"url": {"type": "string"},
			"description": {"type": "string"},
			"contactPoint": {"type": "object"},
			"address": {"type": "object"},
			"sameAs": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	schematype.TypeBreadcrumbList: `{
		"type": "object",
		"properties": {
			"itemListElement": {"type": "array", "items": {"type": "object"}}
		}
	}`,
	schematype.TypeFAQPage: `{
		"type": "object",
		"properties": {
			"mainEntity": {"type": "array", "items": {"type": "object"}}
		}
	}`,
	schematype.TypeAggregateRating: `{
		"type": "object",
		"properties": {
			"ratingValue": {"type": ["string", "number"]},
			"reviewCount": {"type": ["string", "number"]},
			"bestRating": {"type": ["string", "number"]},
			"worstRating": {"type": ["string", "number"]},
			"itemReviewed": {"type": "object"},
			"review": {"type": "array"}
		}
	}`,
}

var (
	compiledSchemas    map[schematype.Type]*gojsonschema.Schema
	compileSchemasOnce sync.Once
)

func compiledSchemaFor(t schematype.Type) *gojsonschema.Schema {
	compileSchemasOnce.Do(func() {
		compiledSchemas = make(map[schematype.Type]*gojsonschema.Schema, len(structuralSchemas))
		for typ, raw := range structuralSchemas {
			schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
			if err != nil {
				continue
			}
			compiledSchemas[typ] = schema
		}
	})
	return compiledSchemas[t]
}

// checkStructure validates the marshaled document against its type's JSON
// schema.
func (v *Validator) checkStructure(doc *schematype.SchemaDocument, path string) []Finding {
	schema := compiledSchemaFor(doc.Type)
	if schema == nil {
		return nil
	}

	raw, err := json.Marshal(doc.Properties)
	if err != nil {
		return []Finding{v.finding("document.structure", err.Error(), path)}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return []Finding{v.finding("document.structure", err.Error(), path)}
	}

	var findings []Finding
	for _, resErr := range result.Errors() {
		findings = append(findings, v.finding("document.structure",
			fmt.Sprintf("%s: %s", resErr.Field(), resErr.Description()),
			path+"."+resErr.Field()))
	}
	return findings
}
