package graphql

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const productsResponse = `{
  "data": {
    "products": [
      {
        "id": "huarache-x-stussy-le",
        "name": "Nike Air Huarache Le",
        "description": "<p>Great sneakers for everyday use!</p>",
        "inStock": true,
        "category": {"id": 2, "name": "clothes"},
        "brand": "Nike x Stussy",
        "gallery": ["https://example.com/1.jpg", "https://example.com/2.jpg"],
        "prices": [
          {"amount": 144.69, "currency": {"label": "USD", "symbol": "$"}},
          {"amount": "120.00", "currency": {"label": "points", "symbol": "P"}}
        ],
        "attributes": [
          {"id": 1, "name": "Size", "type": "text", "items": [
            {"id": 11, "value": "40", "displayValue": "40"},
            {"id": 12, "value": "41", "displayValue": "41"}
          ]},
          {"id": "Color", "name": "Color", "type": "swatch", "items": [
            {"id": "Green", "value": "#44FF03", "displayValue": "Green"}
          ]}
        ]
      },
      {
        "id": "apple-airtag",
        "name": "AirTag",
        "inStock": false,
        "category": null,
        "brand": "Apple",
        "gallery": [],
        "prices": [{"amount": 120.57, "currency": {"label": "USD", "symbol": "$"}}],
        "attributes": []
      }
    ]
  }
}`

func TestCatalogProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "products")
		_, _ = w.Write([]byte(productsResponse))
	}, Options{})

	products, err := NewCatalog(c, zaptest.NewLogger(t)).Products(t.Context())
	require.NoError(t, err)
	require.Len(t, products, 2)

	shoe := products[0]
	assert.Equal(t, "huarache-x-stussy-le", shoe.ID)
	assert.True(t, shoe.InStock)
	assert.Equal(t, domain.Category{ID: "2", Name: "clothes"}, shoe.Category)
	assert.Len(t, shoe.Gallery, 2)

	require.Len(t, shoe.Prices, 2)
	assert.True(t, decimal.RequireFromString("144.69").Equal(shoe.Prices[0].Amount))
	assert.Equal(t, domain.Currency{Label: "USD", Symbol: "$"}, shoe.Prices[0].Currency)
	assert.Equal(t, domain.Currency{Label: "points", Symbol: "P"}, shoe.Prices[1].Currency)

	require.Len(t, shoe.Attributes, 2)
	size := shoe.Attributes[0]
	assert.Equal(t, "1", size.ID)
	assert.Equal(t, domain.AttributeKindText, size.Kind())
	assert.Equal(t, domain.AttributeOption{ID: "11", Value: "40", DisplayValue: "40"}, size.Items[0])
	assert.Equal(t, domain.AttributeKindSwatch, shoe.Attributes[1].Kind())

	tag := products[1]
	assert.False(t, tag.InStock)
	assert.Equal(t, domain.Category{}, tag.Category)
	assert.Empty(t, tag.Attributes)
}

func TestCatalogCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"categories":[{"id":1,"name":"all"},{"id":"2","name":"tech"}]}}`))
	}, Options{})

	categories, err := NewCatalog(c, zaptest.NewLogger(t)).Categories(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []domain.Category{{ID: "1", Name: "all"}, {ID: "2", Name: "tech"}}, categories)
}

func TestCatalogProductsRemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Internal server error"}]}`))
	}, Options{})

	_, err := NewCatalog(c, zaptest.NewLogger(t)).Products(t.Context())

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "Internal server error", remote.Error())
}
