package cartclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientSendsBearerAndDecodesEnvelope(t *testing.T) {
	var gotAuth, gotMethod, gotPath string
	var gotBody lineRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, gotMethod, gotPath = r.Header.Get("Authorization"), r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"id":         "c1",
				"items":      []map[string]any{{"productId": "p1", "quantity": 3, "price": 19.99}},
				"totalItems": 3,
				"totalPrice": 59.97,
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/", "tok", srv.Client())
	cart, err := client.Update(context.Background(), "p1", 3)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/cart/update", gotPath)
	assert.Equal(t, lineRequest{ProductID: "p1", Quantity: 3}, gotBody)
	assert.Equal(t, 3, cart.TotalItems)
	assert.True(t, decimal.RequireFromString("59.97").Equal(cart.TotalPrice))
	require.Len(t, cart.Items, 1)
	assert.True(t, decimal.RequireFromString("19.99").Equal(cart.Items[0].Price))
}

func TestClientMapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart":
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Cart not found"})
		case "/cart/add":
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Insufficient stock"})
		case "/cart/clear":
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Access token required"})
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}
	}))
	defer srv.Close()
	client := NewClient(srv.URL, "", srv.Client())
	ctx := context.Background()

	_, err := client.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = client.Add(ctx, "p1", 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Insufficient stock", apiErr.Message)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, client.Clear(ctx), domain.ErrUnauthorized)

	_, err = client.Remove(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotJSON)
}
