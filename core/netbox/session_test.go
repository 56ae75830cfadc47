package netbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_NoCredentials(t *testing.T) {
	_, err := Open(context.Background(), Config{URL: "http://localhost:1"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestOpen_Token(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token static" {
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"netbox-version": "4.1.0"})
	}))
	t.Cleanup(server.Close)

	sess, err := Open(context.Background(), Config{URL: server.URL, Token: "static"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, sess.provisionedID)
	sess.Close(context.Background())
}

func TestOpen_BadToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	_, err := Open(context.Background(), Config{URL: server.URL, Token: "wrong"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.True(t, IsStatus(err, http.StatusForbidden))
}

func TestOpen_ProvisionedTokenIsDeletedOnClose(t *testing.T) {
	var mu sync.Mutex
	var deleted []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/users/tokens/provision/":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["username"] != "admin" || body["password"] != "secret" {
				http.Error(w, "bad credentials", http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "key": "temp-key"})
		case r.URL.Path == "/api/status/":
			if r.Header.Get("Authorization") != "Token temp-key" {
				http.Error(w, "invalid token", http.StatusForbidden)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{})
		case r.Method == http.MethodDelete:
			mu.Lock()
			deleted = append(deleted, r.URL.Path)
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	sess, err := Open(context.Background(), Config{URL: server.URL, Username: "admin", Password: "secret"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 42, sess.provisionedID)

	sess.Close(context.Background())
	sess.Close(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/api/users/tokens/42/"}, deleted)
}

func TestOpen_ProvisionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	_, err := Open(context.Background(), Config{URL: server.URL, Username: "admin", Password: "nope"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnreachable)
}
