package builders

import (
	"strconv"

	"schema-engine/internal/schema/schematype"
)

// ReviewBuilder maps sourced review data onto an AggregateRating document.
// Absent data means no document: zero reviews must not read as a zero rating.
type ReviewBuilder struct{}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{}
}

func (b *ReviewBuilder) Type() schematype.Type {
	return schematype.TypeAggregateRating
}

func (b *ReviewBuilder) Build(in Input) (*schematype.SchemaDocument, error) {
	if !in.Reviews.HasRatings() {
		return nil, nil
	}

	doc := schematype.NewDocument(schematype.TypeAggregateRating)
	doc.Set("ratingValue", strconv.FormatFloat(in.Reviews.AverageRating, 'f', -1, 64))
	doc.Set("reviewCount", strconv.Itoa(in.Reviews.TotalReviews))
	doc.Set("bestRating", "5")
	doc.Set("worstRating", "1")
	doc.Set("itemReviewed", map[string]interface{}{
		"@type": "Product",
		"name":  in.Product.Title,
	})

	if len(in.Reviews.Reviews) > 0 {
		reviews := make([]interface{}, 0, len(in.Reviews.Reviews))
		for _, r := range in.Reviews.Reviews {
			review := map[string]interface{}{
				"@type": "Review",
				"author": map[string]interface{}{
					"@type": "Person",
					"name":  r.Author,
				},
				"reviewRating": map[string]interface{}{
					"@type":       "Rating",
					"ratingValue": strconv.Itoa(r.Rating),
				},
			}
			if r.Body != "" {
				review["reviewBody"] = r.Body
			}
			if r.Date != "" {
				review["datePublished"] = r.Date
			}
			reviews = append(reviews, review)
		}
		doc.Set("review", reviews)
	}

	return doc, nil
}
