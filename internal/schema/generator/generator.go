// Package generator orchestrates one full generation run: builders per
// product, optional adapter enrichment, and package assembly.
package generator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"schema-engine/internal/adapters/enhancement"
	"schema-engine/internal/adapters/review"
	"schema-engine/internal/common/config"
	"schema-engine/internal/common/errors"
	"schema-engine/internal/common/logger"
	"schema-engine/internal/common/metrics"
	"schema-engine/internal/models"
	"schema-engine/internal/schema/builders"
	"schema-engine/internal/schema/schematype"
)

// Generator runs the builder pipeline over a shop and its products.
type Generator struct {
	cfg      *config.Config
	logger   logger.Logger
	enhancer enhancement.Adapter
	reviews  review.Adapter
	now      func() time.Time

	orgBuilder      builders.Builder
	productBuilders []builders.Builder
}

// Option configures optional collaborators of a Generator.
type Option func(*Generator)

// WithEnhancementAdapter attaches the optional AI enrichment adapter.
func WithEnhancementAdapter(a enhancement.Adapter) Option {
	return func(g *Generator) { g.enhancer = a }
}

// WithReviewAdapter attaches the optional aggregate-rating source.
func WithReviewAdapter(a review.Adapter) Option {
	return func(g *Generator) { g.reviews = a }
}

// WithClock pins the generator's clock.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New validates the configuration and builds a Generator. A ConfigError here
// is the only condition that prevents a run from ever starting.
func New(cfg *config.Config, log logger.Logger, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:             cfg,
		logger:          log,
		now:             time.Now,
		orgBuilder:      builders.NewOrganizationBuilder(),
		productBuilders: builders.ForProducts(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// productResult is one slot of the index-addressed result array: documents in
// builder order, or a recorded failure, plus any degradation notes.
type productResult struct {
	documents []schematype.SchemaDocument
	failure   *schematype.ProductFailure
	notes     []string
	done      bool
}

// Generate produces the SchemaPackage for one run. Per-product failures are
// recorded and skipped; cancellation stops dispatching and returns a partial
// package marked incomplete.
func (g *Generator) Generate(ctx context.Context, shop *models.ShopInfo, products []models.Product) (*schematype.SchemaPackage, error) {
	start := g.now()
	metrics.RunsStarted.Inc()

	if max := g.cfg.Generation.MaxProducts; max > 0 && len(products) > max {
		products = products[:max]
	}

	runLog := g.logger.WithFields(map[string]interface{}{
		"shop":     shop.Host(),
		"products": len(products),
	})
	runLog.Info("starting generation run", nil)

	pkg := &schematype.SchemaPackage{
		RunID:       uuid.NewString(),
		GeneratedAt: start.UTC(),
		ShopDomain:  shop.Host(),
	}

	orgDoc, err := g.orgBuilder.Build(builders.Input{Shop: shop, Config: g.cfg.Generation})
	if err != nil {
		// Without a valid shop snapshot no product document would fare
		// better; record and continue with products only.
		pkg.Metadata.Notes = append(pkg.Metadata.Notes, "organization document skipped: "+err.Error())
		runLog.Warn("organization build failed", map[string]interface{}{"error": err.Error()})
	} else if orgDoc != nil {
		pkg.Documents = append(pkg.Documents, *orgDoc)
	}

	results := g.processAll(ctx, shop, products)

	incomplete := false
	for i := range results {
		res := &results[i]
		if !res.done {
			incomplete = true
			continue
		}
		if res.failure != nil {
			pkg.Metadata.Failures = append(pkg.Metadata.Failures, *res.failure)
			metrics.ProductsProcessed.WithLabelValues("failed").Inc()
			continue
		}
		pkg.Documents = append(pkg.Documents, res.documents...)
		pkg.Metadata.Notes = append(pkg.Metadata.Notes, res.notes...)
		pkg.Metadata.ProductCount++
		metrics.ProductsProcessed.WithLabelValues("ok").Inc()
	}

	pkg.Metadata.DocumentCount = len(pkg.Documents)
	pkg.Metadata.Incomplete = incomplete

	duration := g.now().Sub(start)
	metrics.RunDuration.Observe(duration.Seconds())
	runLog.Info("generation run finished", map[string]interface{}{
		"runId":      pkg.RunID,
		"documents":  pkg.Metadata.DocumentCount,
		"failures":   len(pkg.Metadata.Failures),
		"incomplete": incomplete,
		"durationMs": duration.Milliseconds(),
	})

	return pkg, nil
}

// processAll fans the products out to a bounded worker pool. Results land in
// a slice addressed by original index so the package order follows the input
// order, not completion order.
func (g *Generator) processAll(ctx context.Context, shop *models.ShopInfo, products []models.Product) []productResult {
	results := make([]productResult, len(products))
	if len(products) == 0 {
		return results
	}

	workers := g.cfg.Generation.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(products) {
		workers = len(products)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = g.processProduct(ctx, shop, &products[idx])
			}
		}()
	}

dispatch:
	for i := range products {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// processProduct runs every applicable builder for one product. A BuildError
// drops only this product.
func (g *Generator) processProduct(ctx context.Context, shop *models.ShopInfo, p *models.Product) productResult {
	res := productResult{done: true}

	in := builders.Input{
		Product: p,
		Shop:    shop,
		Config:  g.cfg.Generation,
	}

	if reviews, note := g.fetchReviews(ctx, shop, p); note != "" {
		res.notes = append(res.notes, note)
	} else {
		in.Reviews = reviews
	}

	for _, b := range g.productBuilders {
		doc, err := b.Build(in)
		if err != nil {
			g.logger.Warn("product build failed", map[string]interface{}{
				"productId": p.ID,
				"type":      string(b.Type()),
				"error":     err.Error(),
			})
			res.documents = nil
			res.failure = &schematype.ProductFailure{
				ProductID: failureID(p),
				Reason:    err.Error(),
			}
			return res
		}
		if doc == nil {
			continue
		}
		if notes := g.enhanceDocument(ctx, doc, p); len(notes) > 0 {
			res.notes = append(res.notes, notes...)
		}
		res.documents = append(res.documents, *doc)
	}

	return res
}

// fetchReviews sources review data when integration is enabled. A failed call
// is treated as absence for this run; the note surfaces it in run metadata.
func (g *Generator) fetchReviews(ctx context.Context, shop *models.ShopInfo, p *models.Product) (*models.ReviewData, string) {
	if !g.cfg.Generation.EnableReviewIntegration || g.reviews == nil {
		return nil, ""
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Generation.AdapterBudget())
	defer cancel()

	data, err := g.reviews.Fetch(callCtx, p.ID, shop.Host())
	if err != nil {
		metrics.AdapterFallbacks.WithLabelValues("review").Inc()
		return nil, "review data unavailable for product " + p.ID
	}
	return data, ""
}

// enhanceDocument substitutes adapter output into the document's text fields.
// Any non-success outcome keeps the original text and leaves a metadata note.
func (g *Generator) enhanceDocument(ctx context.Context, doc *schematype.SchemaDocument, p *models.Product) []string {
	if !g.cfg.Generation.EnableAIFeatures || g.enhancer == nil {
		return nil
	}

	switch doc.Type {
	case schematype.TypeProduct:
		original, _ := doc.Get("description").(string)
		text, note := g.enhanceField(ctx, "description", original, p)
		if note != "" {
			return []string{note}
		}
		if text != "" {
			doc.Set("description", text)
		}
	case schematype.TypeFAQPage:
		return g.enhanceFAQAnswers(ctx, doc, p)
	}
	return nil
}

// enhanceFAQAnswers replaces each accepted answer with adapter output, one
// call per entry, falling back per entry.
func (g *Generator) enhanceFAQAnswers(ctx context.Context, doc *schematype.SchemaDocument, p *models.Product) []string {
	entries, _ := doc.Get("mainEntity").([]interface{})
	var notes []string
	for _, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		answer, ok := entry["acceptedAnswer"].(map[string]interface{})
		if !ok {
			continue
		}
		original, _ := answer["text"].(string)
		text, note := g.enhanceField(ctx, "faq_answer", original, p)
		if note != "" {
			notes = append(notes, note)
			continue
		}
		if text != "" {
			answer["text"] = text
		}
	}
	return notes
}

// enhanceField issues one budgeted adapter call. A non-success outcome
// returns the degradation note and an empty replacement.
func (g *Generator) enhanceField(ctx context.Context, field, original string, p *models.Product) (string, string) {
	req := &enhancement.Request{
		Field:     field,
		Original:  original,
		ProductID: p.ID,
		Title:     p.Title,
		Category:  p.ProductType,
		Tags:      p.Tags,
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Generation.AdapterBudget())
	defer cancel()

	resp, err := g.enhancer.Enhance(callCtx, req)
	if err != nil || resp == nil || !resp.Available {
		metrics.AdapterFallbacks.WithLabelValues("enhancement").Inc()
		if err != nil && errors.IsEnhancementUnavailable(err) {
			g.logger.Debug("enhancement degraded", map[string]interface{}{
				"productId": p.ID,
				"field":     field,
				"error":     err.Error(),
			})
		}
		return "", "enhancement unavailable for product " + p.ID
	}
	return resp.Text, ""
}

func failureID(p *models.Product) string {
	if p.ID != "" {
		return p.ID
	}
	if p.Handle != "" {
		return p.Handle
	}
	return "(unidentified)"
}
