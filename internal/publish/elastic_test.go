// internal/publish/elastic_test.go
package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/errors"
	"schema-engine/internal/common/logger"
	"schema-engine/internal/schema/schematype"
)

func createTestPackage() *schematype.SchemaPackage {
	product := schematype.NewDocument(schematype.TypeProduct)
	product.Set("name", "Classic Tee")
	org := schematype.NewDocument(schematype.TypeOrganization)
	org.Set("name", "Acme Goods")

	return &schematype.SchemaPackage{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		ShopDomain:  "acme-goods.myshopify.com",
		Documents:   []schematype.SchemaDocument{*org, *product},
	}
}

func createElasticClient(t *testing.T, url string) *elasticsearch.Client {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	require.NoError(t, err)
	return client
}

func TestElastic_Publish(t *testing.T) {
	var paths []string
	var bodies []indexedDocument
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var doc indexedDocument
		require.NoError(t, json.Unmarshal(raw, &doc))
		bodies = append(bodies, doc)

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": "created"}`))
	}))
	defer server.Close()

	publisher := NewElastic(createElasticClient(t, server.URL), logger.NewTestLogger(t))
	require.NoError(t, publisher.Publish(context.Background(), createTestPackage()))

	require.Len(t, paths, 2)
	assert.Equal(t, "/schemas-acme-goods-myshopify-com/_doc/run-1-0", paths[0])
	assert.Equal(t, "/schemas-acme-goods-myshopify-com/_doc/run-1-1", paths[1])

	assert.Equal(t, "run-1", bodies[0].RunID)
	assert.Equal(t, "Organization", bodies[0].SchemaType)
	assert.Equal(t, "Product", bodies[1].SchemaType)
	assert.Equal(t, "2024-03-15T12:00:00Z", bodies[0].GeneratedAt)
}

func TestElastic_Publish_IndexFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewElastic(createElasticClient(t, server.URL), logger.NewNoOpLogger())
	err := publisher.Publish(context.Background(), createTestPackage())

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePublishFailed, errors.CodeOf(err))
}

func TestIndexName(t *testing.T) {
	assert.Equal(t, "schemas-acme-goods-myshopify-com", IndexName("Acme-Goods.myshopify.com"))
}
