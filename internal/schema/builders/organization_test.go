// internal/schema/builders/organization_test.go
package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/errors"
	"schema-engine/internal/models"
)

func TestOrganizationBuilder_Build_CompleteShop(t *testing.T) {
	shop := &models.ShopInfo{
		Name:        "Acme Goods",
		Domain:      "acme-goods.myshopify.com",
		Description: "<p>Everyday essentials.</p>",
		Email:       "hello@acme-goods.com",
		Phone:       "+1-555-0100",
		Address: models.ShopAddress{
			Street:     "1 Main St",
			City:       "Springfield",
			Region:     "IL",
			PostalCode: "62701",
			Country:    "US",
		},
		SocialLinks: map[string]string{
			"twitter":   "acmegoods",
			"instagram": "https://instagram.com/acmegoods",
		},
	}

	doc, err := NewOrganizationBuilder().Build(Input{Shop: shop})
	require.NoError(t, err)
	require.NotNil(t, doc)

	props := doc.Properties
	assert.Equal(t, "Acme Goods", props["name"])
	assert.Equal(t, "https://acme-goods.myshopify.com", props["url"])
	assert.Equal(t, "Everyday essentials.", props["description"])

	contact := props["contactPoint"].(map[string]interface{})
	assert.Equal(t, "customer service", contact["contactType"])
	assert.Equal(t, "+1-555-0100", contact["telephone"])
	assert.Equal(t, "hello@acme-goods.com", contact["email"])

	address := props["address"].(map[string]interface{})
	assert.Equal(t, "Springfield", address["addressLocality"])

	sameAs := props["sameAs"].([]string)
	assert.Contains(t, sameAs, "https://twitter.com/acmegoods")
	assert.Contains(t, sameAs, "https://instagram.com/acmegoods")
}

func TestOrganizationBuilder_Build_MinimalShop(t *testing.T) {
	shop := &models.ShopInfo{Name: "Acme Goods", Domain: "acme-goods"}

	doc, err := NewOrganizationBuilder().Build(Input{Shop: shop})
	require.NoError(t, err)
	require.NotNil(t, doc)

	props := doc.Properties
	// A bare handle expands to the platform host.
	assert.Equal(t, "https://acme-goods.myshopify.com", props["url"])
	assert.NotContains(t, props, "contactPoint")
	assert.NotContains(t, props, "address")
	assert.NotContains(t, props, "sameAs")
}

func TestOrganizationBuilder_Build_MissingShopFields(t *testing.T) {
	tests := []struct {
		name string
		shop *models.ShopInfo
	}{
		{name: "missing name", shop: &models.ShopInfo{Domain: "acme-goods.myshopify.com"}},
		{name: "missing domain", shop: &models.ShopInfo{Name: "Acme Goods"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewOrganizationBuilder().Build(Input{Shop: tt.shop})
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeBuildFailed, errors.CodeOf(err))
		})
	}
}
