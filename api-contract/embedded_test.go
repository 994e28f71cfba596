package apicontract_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/coffee-roastery/api-contract"
)

func TestLoad(t *testing.T) {
	doc, err := apicontract.Load(t.Context())
	require.NoError(t, err)

	t.Run("Should describe every record route", func(t *testing.T) {
		for _, entity := range []string{"/greens", "/roasts", "/products"} {
			collection := doc.Paths.Find(entity)
			require.NotNil(t, collection, entity)
			assert.NotNil(t, collection.GetOperation(http.MethodGet))
			assert.NotNil(t, collection.GetOperation(http.MethodPost))

			item := doc.Paths.Find(entity + "/{id}")
			require.NotNil(t, item, entity)
			assert.NotNil(t, item.GetOperation(http.MethodGet))
			assert.NotNil(t, item.GetOperation(http.MethodPut))
			assert.NotNil(t, item.GetOperation(http.MethodDelete))
		}
		assert.NotNil(t, doc.Paths.Find("/health"))
	})

	t.Run("Should require create fields", func(t *testing.T) {
		schema := doc.Components.Schemas["CreateGreenCoffeeRequest"].Value
		require.Len(t, schema.AllOf, 2)
		assert.ElementsMatch(t, []string{"name", "origin_country", "stock_grams"}, schema.AllOf[1].Value.Required)
	})
}
