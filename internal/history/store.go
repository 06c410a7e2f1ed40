// Package history persists generation run summaries. The Store interface is
// injected at the caller boundary; the generation core never touches it.
package history

import (
	"context"
	"time"
)

// Entry is one recorded generation run.
type Entry struct {
	RunID         string    `json:"run_id"`
	ShopDomain    string    `json:"shop_domain"`
	GeneratedAt   time.Time `json:"generated_at"`
	ProductCount  int       `json:"product_count"`
	DocumentCount int       `json:"document_count"`
	FailureCount  int       `json:"failure_count"`
	Score         int       `json:"score"`
	Valid         bool      `json:"valid"`
	Incomplete    bool      `json:"incomplete"`
}

// Store records and lists generation runs.
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, shopDomain string, limit int) ([]Entry, error)
}
