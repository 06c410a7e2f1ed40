package schematype

import (
	"encoding/json"
	"time"
)

// ProductFailure records one product dropped from a run.
type ProductFailure struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

// Metadata describes the outcome of one generation run.
type Metadata struct {
	ProductCount  int              `json:"productCount"`
	DocumentCount int              `json:"documentCount"`
	Failures      []ProductFailure `json:"failures"`
	Notes         []string         `json:"notes,omitempty"`
	Incomplete    bool             `json:"incomplete,omitempty"`
}

// SchemaPackage is the complete, ordered set of documents generated in one
// run. It is assembled once and immutable afterwards; the validator only
// reads it.
type SchemaPackage struct {
	RunID       string           `json:"runId"`
	GeneratedAt time.Time        `json:"generatedAt"`
	ShopDomain  string           `json:"shop"`
	Documents   []SchemaDocument `json:"schemas"`
	Metadata    Metadata         `json:"metadata"`
}

// packageJSON pins the serialized field names of the output contract.
type packageJSON struct {
	GeneratedAt string            `json:"generatedAt"`
	Shop        string            `json:"shop"`
	RunID       string            `json:"runId"`
	Schemas     []*SchemaDocument `json:"schemas"`
	Metadata    Metadata          `json:"metadata"`
}

// MarshalJSON serializes the package as the single JSON document consumed by
// the caller: generatedAt, shop, schemas and run metadata.
func (p *SchemaPackage) MarshalJSON() ([]byte, error) {
	docs := make([]*SchemaDocument, len(p.Documents))
	for i := range p.Documents {
		docs[i] = &p.Documents[i]
	}
	meta := p.Metadata
	if meta.Failures == nil {
		meta.Failures = []ProductFailure{}
	}
	return json.Marshal(packageJSON{
		GeneratedAt: p.GeneratedAt.UTC().Format(time.RFC3339),
		Shop:        p.ShopDomain,
		RunID:       p.RunID,
		Schemas:     docs,
		Metadata:    meta,
	})
}

// UnmarshalJSON restores a package from its serialized form. The timestamp is
// parsed as RFC 3339; a malformed value fails the whole package.
func (p *SchemaPackage) UnmarshalJSON(data []byte) error {
	var raw packageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	generatedAt, err := time.Parse(time.RFC3339, raw.GeneratedAt)
	if err != nil {
		return err
	}
	docs := make([]SchemaDocument, len(raw.Schemas))
	for i, d := range raw.Schemas {
		if d != nil {
			docs[i] = *d
		}
	}
	p.RunID = raw.RunID
	p.GeneratedAt = generatedAt
	p.ShopDomain = raw.Shop
	p.Documents = docs
	p.Metadata = raw.Metadata
	return nil
}

// DocumentsOfType returns the documents carrying the given @type, in package
// order.
func (p *SchemaPackage) DocumentsOfType(t Type) []*SchemaDocument {
	var out []*SchemaDocument
	for i := range p.Documents {
		if p.Documents[i].Type == t {
			out = append(out, &p.Documents[i])
		}
	}
	return out
}
