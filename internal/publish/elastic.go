// Package publish pushes generated documents to the search index the agent
// front end queries. Optional caller-boundary collaborator.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"schema-engine/internal/common/errors"
	"schema-engine/internal/common/logger"
	"schema-engine/internal/schema/schematype"
)

// Elastic indexes each document of a package into a per-shop index.
type Elastic struct {
	client *elasticsearch.Client
	logger logger.Logger
}

func NewElastic(client *elasticsearch.Client, log logger.Logger) *Elastic {
	return &Elastic{client: client, logger: log}
}

// indexedDocument is the stored form: the JSON-LD object plus run context.
type indexedDocument struct {
	RunID       string                     `json:"run_id"`
	Shop        string                     `json:"shop"`
	SchemaType  string                     `json:"schema_type"`
	GeneratedAt string                     `json:"generated_at"`
	Document    *schematype.SchemaDocument `json:"document"`
}

// Publish indexes every document of the package. The first indexing failure
// aborts the publish; generation itself is unaffected.
func (e *Elastic) Publish(ctx context.Context, pkg *schematype.SchemaPackage) error {
	index := IndexName(pkg.ShopDomain)

	for i := range pkg.Documents {
		doc := &pkg.Documents[i]
		body, err := json.Marshal(indexedDocument{
			RunID:       pkg.RunID,
			Shop:        pkg.ShopDomain,
			SchemaType:  string(doc.Type),
			GeneratedAt: pkg.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
			Document:    doc,
		})
		if err != nil {
			return errors.NewPublishFailedError(index, err)
		}

		res, err := e.client.Index(
			index,
			bytes.NewReader(body),
			e.client.Index.WithDocumentID(fmt.Sprintf("%s-%d", pkg.RunID, i)),
			e.client.Index.WithContext(ctx),
		)
		if err != nil {
			return errors.NewPublishFailedError(index, err)
		}
		res.Body.Close()
		if res.IsError() {
			return errors.NewPublishFailedError(index, fmt.Errorf("index returned %s", res.Status()))
		}
	}

	e.logger.Info("package published", map[string]interface{}{
		"index":     index,
		"documents": len(pkg.Documents),
	})
	return nil
}

// IndexName derives the per-shop index name.
func IndexName(shopDomain string) string {
	return "schemas-" + strings.ReplaceAll(strings.ToLower(shopDomain), ".", "-")
}
