package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t)

	body := map[string]any{
		"slug":        "classic-tee",
		"name":        "Classic Tee",
		"description": "Everyday staple",
		"price":       "19.99",
		"sizes":       []string{"S", "M", "L"},
		"colors":      []string{"black"},
		"image_url":   "https://img.example.com/classic.jpg",
	}

	t.Run("admin creates product", func(t *testing.T) {
		w := env.do(t, "POST", "/api/v1/products", body, withBearer(adminToken))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := dataMap(t, w)
		assert.Equal(t, "classic-tee", data["slug"])
		assert.Equal(t, "Classic Tee", data["name"])
		assert.Equal(t, "19.99", data["price"])
		assert.Equal(t, "active", data["status"])
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		w := env.do(t, "POST", "/api/v1/products", body, withBearer(adminToken))
		require.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		w := env.do(t, "POST", "/api/v1/products", map[string]any{"slug": "x"}, withBearer(adminToken))
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.NotEmpty(t, resp.Error.Details)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		w := env.do(t, "POST", "/api/v1/products", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("shopper is forbidden", func(t *testing.T) {
		token := env.registerShopper(t, "shopper@example.com")
		w := env.do(t, "POST", "/api/v1/products", body, withBearer(token))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestProductHandler_Read(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedProduct(t, "vintage-tee", "Vintage Tee", "24.99")
	env.seedProduct(t, "pocket-tee", "Pocket Tee", "21.50")

	t.Run("list returns products with meta", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
	})

	t.Run("list respects pagination query", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products?page=1&page_size=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.TotalPages)
		items, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("invalid page size fails validation", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products?page_size=9999", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := dataMap(t, w)
		assert.Equal(t, "vintage-tee", data["slug"])
	})

	t.Run("get by slug", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products/slug/pocket-tee", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := dataMap(t, w)
		assert.Equal(t, "Pocket Tee", data["name"])
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products/00000000-0000-0000-0000-000000000099", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Featured(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t)

	env.seedProduct(t, "plain-tee", "Plain Tee", "15.00")
	id := env.seedProduct(t, "logo-tee", "Logo Tee", "29.99")

	w := env.do(t, "PUT", "/api/v1/products/"+id, map[string]any{"featured": true}, withBearer(adminToken))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, "GET", "/api/v1/products/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	items, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "logo-tee", first["slug"])
}

func TestProductHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t)
	id := env.seedProduct(t, "retired-tee", "Retired Tee", "12.00")

	t.Run("archive hides from default listing", func(t *testing.T) {
		w := env.do(t, "DELETE", "/api/v1/products/"+id, nil, withBearer(adminToken))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, "GET", "/api/v1/products", nil)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(0), resp.Meta.Total)
	})

	t.Run("archived product stays readable by id", func(t *testing.T) {
		w := env.do(t, "GET", "/api/v1/products/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := dataMap(t, w)
		assert.Equal(t, "archived", data["status"])
	})

	t.Run("restore returns it to the listing", func(t *testing.T) {
		w := env.do(t, "POST", "/api/v1/products/"+id+"/restore", nil, withBearer(adminToken))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, "GET", "/api/v1/products", nil)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})
}

func TestProductHandler_Update(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t)
	id := env.seedProduct(t, "price-tee", "Price Tee", "10.00")

	w := env.do(t, "PUT", "/api/v1/products/"+id, map[string]any{
		"name":  "Price Tee v2",
		"price": "11.50",
	}, withBearer(adminToken))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := dataMap(t, w)
	assert.Equal(t, "Price Tee v2", data["name"])
	assert.Equal(t, "11.50", data["price"])
}
