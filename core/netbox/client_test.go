package netbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "test-token"}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestClient_Lookup(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/dcim/sites/", r.URL.Path)
			assert.Equal(t, "dc1", r.URL.Query().Get("name"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Equal(t, "Token test-token", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count":   1,
				"results": []any{map[string]any{"id": 7, "name": "dc1"}},
			})
		})

		rec, err := client.Lookup(context.Background(), "dcim/sites", Filter{"name": "dc1"})
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, 7, rec.ID)
		assert.Equal(t, "dc1", rec.Attributes["name"])
	})

	t.Run("Not Found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []any{}})
		})

		rec, err := client.Lookup(context.Background(), "dcim/sites", Filter{"name": "missing"})
		assert.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("Ambiguous", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count":   2,
				"results": []any{map[string]any{"id": 1}, map[string]any{"id": 2}},
			})
		})

		_, err := client.Lookup(context.Background(), "dcim/interfaces", Filter{"name": "eth0"})
		assert.ErrorIs(t, err, ErrMultipleResults)
	})
}

func TestClient_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/dcim/devices/", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "r1", body["name"])
			assert.Equal(t, float64(3), body["site"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 11, "name": "r1"})
		})

		rec, err := client.Create(context.Background(), "dcim/devices", map[string]any{"name": "r1", "site": 3})
		require.NoError(t, err)
		assert.Equal(t, 11, rec.ID)
	})

	t.Run("Rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"name":["device with this name already exists."]}`))
		})

		_, err := client.Create(context.Background(), "dcim/devices", map[string]any{"name": "r1"})
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "already exists")
		assert.True(t, IsStatus(err, http.StatusBadRequest))
		assert.False(t, errors.Is(err, ErrUnreachable))
	})
}

func TestClient_Update(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/dcim/devices/11/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 11, "primary_ip4": map[string]any{"id": 5}})
	})

	rec, err := client.Update(context.Background(), "dcim/devices", 11, map[string]any{"primary_ip4": 5})
	require.NoError(t, err)
	id, ok := rec.NestedID("primary_ip4")
	assert.True(t, ok)
	assert.Equal(t, 5, id)
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(Config{URL: url, Token: "t", TimeoutSeconds: 1}, nil)
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), "dcim/sites", Filter{"name": "dc1"})
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []any{}})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Lookup(ctx, "dcim/sites", Filter{"name": "dc1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrUnreachable))
}

func TestFilter_Encode(t *testing.T) {
	f := Filter{"name": "eth 0", "device": "r1"}
	assert.Equal(t, "device=r1&name=eth+0", f.Encode())
	assert.Equal(t, "", Filter{}.Encode())
}

func TestRecord_NestedID(t *testing.T) {
	rec := &Record{ID: 1, Attributes: map[string]any{
		"primary_ip4": map[string]any{"id": float64(9)},
		"primary_ip6": nil,
	}}

	id, ok := rec.NestedID("primary_ip4")
	assert.True(t, ok)
	assert.Equal(t, 9, id)

	_, ok = rec.NestedID("primary_ip6")
	assert.False(t, ok)

	var nilRec *Record
	_, ok = nilRec.NestedID("primary_ip4")
	assert.False(t, ok)
}
