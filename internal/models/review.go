package models

// ReviewData is the aggregate produced by a review adapter. A nil ReviewData
// is a valid outcome meaning no review document should be emitted.
type ReviewData struct {
	AverageRating float64  `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
	Reviews       []Review `json:"reviews,omitempty"`
}

// Review is one individual customer review.
type Review struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
	Date   string `json:"date,omitempty"`
}

// HasRatings reports whether the aggregate carries anything worth emitting.
// Zero reviews must never be presented as a zero rating.
func (r *ReviewData) HasRatings() bool {
	return r != nil && r.TotalReviews > 0
}
