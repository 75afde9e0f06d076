package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos-admin-api/internal/kv"
	"pos-admin-api/internal/model"
	"pos-admin-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crudServer is a minimal crudcrud-style service keyed by _id.
func crudServer(t *testing.T) *httptest.Server {
	t.Helper()
	var items []map[string]any
	next := 0

	mux := http.NewServeMux()
	mux.HandleFunc("GET /outlets", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(items)
	})
	mux.HandleFunc("POST /outlets", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		next++
		body["_id"] = "remote-" + string(rune('0'+next))
		items = append(items, body)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("PUT /outlets/{id}", func(w http.ResponseWriter, r *http.Request) {
		for i, it := range items {
			if it["_id"] == r.PathValue("id") {
				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				_, hasID := body["_id"]
				assert.False(t, hasID, "_id must not be sent on update")
				body["_id"] = it["_id"]
				items[i] = body
				w.WriteHeader(http.StatusOK) // empty body like crudcrud
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("DELETE /outlets/{id}", func(w http.ResponseWriter, r *http.Request) {
		for i, it := range items {
			if it["_id"] == r.PathValue("id") {
				items = append(items[:i], items[i+1:]...)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteCRUD(t *testing.T) {
	srv := crudServer(t)
	repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: srv.URL + "/"})
	ctx := context.Background()

	list, err := repo.List(ctx, model.ResourceOutlets)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	created, err := repo.Create(ctx, model.ResourceOutlets, model.Record{"name": "X", "address": "Y"})
	require.NoError(t, err)
	assert.Equal(t, "remote-1", created.ID())
	assert.Equal(t, "X", created["name"])

	updated, err := repo.Update(ctx, model.ResourceOutlets, created.ID(), model.Record{"name": "X2", "address": "Y", "_id": "remote-1"})
	require.NoError(t, err)
	assert.Equal(t, "remote-1", updated.ID())
	assert.Equal(t, "X2", updated["name"])

	list, err = repo.List(ctx, model.ResourceOutlets)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "remote-1", list[0].ID())
	assert.Equal(t, "X2", list[0]["name"])

	require.NoError(t, repo.Delete(ctx, model.ResourceOutlets, created.ID()))

	err = repo.Delete(ctx, model.ResourceOutlets, created.ID())
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
	_, err = repo.Update(ctx, model.ResourceOutlets, created.ID(), model.Record{"name": "Z"})
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestRemoteSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/discounts", r.URL.Path)
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: srv.URL, APIKey: "secret"})
	_, err := repo.List(context.Background(), model.ResourceDiscounts)
	require.NoError(t, err)
}

func TestRemoteNumericIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":101,"name":"X"}`)
			return
		}
		io.WriteString(w, `[{"id":101,"name":"X"}]`)
	}))
	defer srv.Close()

	repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: srv.URL})
	ctx := context.Background()

	created, err := repo.Create(ctx, model.ResourceOutlets, model.Record{"name": "X"})
	require.NoError(t, err)
	assert.Equal(t, "101", created.ID())

	list, err := repo.List(ctx, model.ResourceOutlets)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "101", list[0].ID())
}

func TestRemoteErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   *apierror.Error
	}{
		{"unauthorized", http.StatusUnauthorized, "", apierror.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "", apierror.ErrUnauthorized},
		{"server error", http.StatusInternalServerError, "", apierror.ErrRemoteProtocol},
		{"list not found", http.StatusNotFound, "", apierror.ErrRemoteProtocol},
		{"malformed body", http.StatusOK, "{not json", apierror.ErrRemoteProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: srv.URL})
			_, err := repo.List(context.Background(), model.ResourceOutlets)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRemoteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: url})
	_, err := repo.List(context.Background(), model.ResourceOutlets)
	assert.True(t, errors.Is(err, apierror.ErrTransport), "got %v", err)
}

func TestRemoteCallerCancellationIsNotTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "[]")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: srv.URL})
	_, err := repo.List(ctx, model.ResourceOutlets)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, apierror.ErrTransport))
}

func TestRemoteUnconfigured(t *testing.T) {
	repo := NewRemoteRecordRepository(RemoteConfig{})
	assert.False(t, repo.IsConfigured(context.Background()))

	_, err := repo.List(context.Background(), model.ResourceOutlets)
	assert.True(t, errors.Is(err, apierror.ErrUnconfigured))
}

func TestRemoteCreateWithoutIDIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"X"}`)
	}))
	defer srv.Close()

	repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: srv.URL})
	_, err := repo.Create(context.Background(), model.ResourceOutlets, model.Record{"name": "X"})
	assert.True(t, errors.Is(err, apierror.ErrRemoteProtocol))
}

func TestRemoteBaseURLPersistence(t *testing.T) {
	settings := kv.NewMemoryStore()
	ctx := context.Background()

	repo := NewRemoteRecordRepository(RemoteConfig{BaseURL: "https://default.test", Settings: settings})
	assert.Equal(t, "https://default.test", repo.BaseURL(ctx))

	require.NoError(t, repo.SetBaseURL(ctx, "https://crud.test/api/abc/"))
	assert.Equal(t, "https://crud.test/api/abc", repo.BaseURL(ctx))

	stored, err := settings.Get(ctx, APIURLKey)
	require.NoError(t, err)
	assert.Equal(t, "https://crud.test/api/abc", string(stored))

	// a new instance picks the persisted URL over the default
	again := NewRemoteRecordRepository(RemoteConfig{BaseURL: "https://default.test", Settings: settings})
	assert.Equal(t, "https://crud.test/api/abc", again.BaseURL(ctx))

	err = repo.SetBaseURL(ctx, "not a url")
	assert.Error(t, err)

	require.NoError(t, again.SetBaseURL(ctx, ""))
	_, err = settings.Get(ctx, APIURLKey)
	assert.True(t, errors.Is(err, kv.ErrKeyNotFound))
	assert.Equal(t, "https://default.test", again.BaseURL(ctx))
}
