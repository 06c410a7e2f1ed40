// Package enhancement defines the capability contract for optional AI text
// enrichment and its implementations. The generator treats every non-success
// outcome identically: it keeps the original text.
package enhancement

import "context"

// Request carries one field to enhance along with product context.
type Request struct {
	Field     string   `json:"field"`
	Original  string   `json:"original"`
	ProductID string   `json:"productId"`
	Title     string   `json:"title"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Response carries the replacement text or an explicit unavailable marker.
// Unavailability is a value, never a fatal condition.
type Response struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
}

// Unavailable is the canonical degraded response.
func Unavailable() *Response {
	return &Response{Available: false}
}

// Adapter is implemented by enhancement providers. Enhance must complete or
// signal unavailability within the caller-supplied context budget; it must
// not retry internally.
type Adapter interface {
	Enhance(ctx context.Context, req *Request) (*Response, error)
}

// Noop is the disabled-enhancement adapter: always unavailable.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Enhance(ctx context.Context, req *Request) (*Response, error) {
	return Unavailable(), nil
}
