package builders

import (
	"fmt"

	"schema-engine/internal/common/htmltext"
	"schema-engine/internal/schema/schematype"
)

// faqAnswerMaxLength keeps derived answers at snippet size.
const faqAnswerMaxLength = 200

// FAQBuilder maps manual FAQ entries onto an FAQPage document. With no
// manual entries and AI features disabled the builder reports "not
// applicable" instead of emitting an empty page.
type FAQBuilder struct{}

func NewFAQBuilder() *FAQBuilder {
	return &FAQBuilder{}
}

func (b *FAQBuilder) Type() schematype.Type {
	return schematype.TypeFAQPage
}

func (b *FAQBuilder) Build(in Input) (*schematype.SchemaDocument, error) {
	p := in.Product

	entries := make([]interface{}, 0, len(p.FAQ))
	for _, entry := range p.FAQ {
		if entry.Question == "" || entry.Answer == "" {
			continue
		}
		entries = append(entries, question(entry.Question, entry.Answer))
	}

	if len(entries) == 0 {
		if !in.Config.EnableAIFeatures {
			return nil, nil
		}
		// Derived seed question; the generator replaces its answer with
		// adapter output when enhancement succeeds.
		description := htmltext.Truncate(htmltext.Clean(p.BodyHTML), faqAnswerMaxLength)
		if description == "" {
			return nil, nil
		}
		entries = append(entries, question(fmt.Sprintf("What is %s?", p.Title), description))
	}

	doc := schematype.NewDocument(schematype.TypeFAQPage)
	doc.Set("mainEntity", entries)
	return doc, nil
}

func question(name, answer string) map[string]interface{} {
	return map[string]interface{}{
		"@type": "Question",
		"name":  name,
		"acceptedAnswer": map[string]interface{}{
			"@type": "Answer",
			"text":  answer,
		},
	}
}
