package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pos-admin-api/internal/kv"
	"pos-admin-api/internal/model"
	"pos-admin-api/pkg/apierror"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIURLKey is the settings key under which the base URL is persisted.
const APIURLKey = "apiUrl"

// RemoteConfig holds configuration for the remote record repository.
type RemoteConfig struct {
	// BaseURL is used when no URL has been persisted in Settings.
	BaseURL string
	// APIKey is sent as a bearer token when set.
	APIKey  string
	Timeout time.Duration
	// Settings persists the base URL across restarts. Optional.
	Settings kv.Store
	// Transport overrides the HTTP transport (tests). Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// RemoteRecordRepository implements RecordRepository against a REST
// resource service exposing GET/POST /{resource} and PUT/DELETE
// /{resource}/{id}.
//
// Failures are classified so the transport selector can decide what to do:
// apierror.ErrTransport when the service cannot be reached,
// apierror.ErrUnauthorized on 401/403, apierror.ErrNotFound on 404 for
// update/delete, apierror.ErrRemoteProtocol for any other unusable reply and
// apierror.ErrUnconfigured when no base URL is known. Cancellation of the
// caller's context is returned as is.
type RemoteRecordRepository struct {
	client     *http.Client
	settings   kv.Store
	defaultURL string
	apiKey     string

	mu      sync.RWMutex
	baseURL string
}

// NewRemoteRecordRepository creates the remote repository.
func NewRemoteRecordRepository(cfg RemoteConfig) *RemoteRecordRepository {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &RemoteRecordRepository{
		client: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   timeout,
		},
		settings:   cfg.Settings,
		defaultURL: normalizeURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
	}
}

func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	return strings.TrimSuffix(u, "/")
}

// SetBaseURL sets the remote base URL and persists it. An empty URL clears
// the persisted value, reverting to the configured default.
func (r *RemoteRecordRepository) SetBaseURL(ctx context.Context, rawURL string) error {
	u := normalizeURL(rawURL)
	if u != "" {
		parsed, err := url.Parse(u)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return apierror.BadRequest("api url must be an absolute http(s) URL")
		}
	}

	if r.settings != nil {
		var err error
		if u == "" {
			err = r.settings.Delete(ctx, APIURLKey)
		} else {
			err = r.settings.Set(ctx, APIURLKey, []byte(u))
		}
		if err != nil {
			return fmt.Errorf("failed to persist api url: %w", err)
		}
	}

	r.mu.Lock()
	r.baseURL = u
	r.mu.Unlock()

	log.Printf("[RemoteRecordRepository] API URL set to %q", u)
	return nil
}

// BaseURL returns the current base URL, loading the persisted one on first
// use and falling back to the configured default.
func (r *RemoteRecordRepository) BaseURL(ctx context.Context) string {
	r.mu.RLock()
	u := r.baseURL
	r.mu.RUnlock()
	if u != "" {
		return u
	}

	if r.settings != nil {
		data, err := r.settings.Get(ctx, APIURLKey)
		if err == nil && len(data) > 0 {
			u = normalizeURL(string(data))
		} else if err != nil && !errors.Is(err, kv.ErrKeyNotFound) {
			log.Printf("[RemoteRecordRepository] Failed to load persisted API URL: %v", err)
		}
	}
	if u == "" {
		u = r.defaultURL
	}
	if u == "" {
		return ""
	}

	r.mu.Lock()
	if r.baseURL == "" {
		r.baseURL = u
	}
	u = r.baseURL
	r.mu.Unlock()
	return u
}

// IsConfigured reports whether a base URL is known.
func (r *RemoteRecordRepository) IsConfigured(ctx context.Context) bool {
	return r.BaseURL(ctx) != ""
}

// do performs one request and returns the raw response body.
func (r *RemoteRecordRepository) do(ctx context.Context, op model.Operation, path string, body any) ([]byte, error) {
	base := r.BaseURL(ctx)
	if base == "" {
		return nil, apierror.ErrUnconfigured
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	method := op.Method()
	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return nil, apierror.ErrUnconfigured.WithMessage("invalid remote API URL").Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctx.Err())
		}
		return nil, apierror.ErrTransport.Wrap(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctx.Err())
		}
		return nil, apierror.ErrTransport.Wrap(err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apierror.ErrUnauthorized.Wrap(fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound && (op == model.OpUpdate || op == model.OpDelete):
		return nil, apierror.NotFound(fmt.Sprintf("record not found at %s", path))
	default:
		return nil, apierror.ErrRemoteProtocol.Wrap(fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}
}

func recordPath(resource model.Resource, id string) string {
	return resource.Path() + "/" + url.PathEscape(id)
}

// List fetches the whole collection.
func (r *RemoteRecordRepository) List(ctx context.Context, resource model.Resource) ([]model.Record, error) {
	data, err := r.do(ctx, model.OpList, resource.Path(), nil)
	if err != nil {
		return nil, err
	}

	records := []model.Record{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apierror.ErrRemoteProtocol.Wrap(fmt.Errorf("decode %s: %w", resource, err))
	}
	if records == nil {
		records = []model.Record{}
	}
	for i := range records {
		records[i] = records[i].Normalize()
	}
	return records, nil
}

// Create posts a new record.
func (r *RemoteRecordRepository) Create(ctx context.Context, resource model.Resource, fields model.Record) (model.Record, error) {
	data, err := r.do(ctx, model.OpCreate, resource.Path(), fields.WithoutMetadata())
	if err != nil {
		return nil, err
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.ID() == "" {
		return nil, apierror.ErrRemoteProtocol.Wrap(fmt.Errorf("create %s: response carries no id", resource))
	}
	return rec, nil
}

// Update puts fields to the record. Services that reply with an empty body
// (crudcrud) get the sent fields echoed back with the id.
func (r *RemoteRecordRepository) Update(ctx context.Context, resource model.Resource, id string, fields model.Record) (model.Record, error) {
	body := fields.WithoutMetadata()
	data, err := r.do(ctx, model.OpUpdate, recordPath(resource, id), body)
	if err != nil {
		return nil, err
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = body
	}
	rec[model.FieldID] = id
	return rec, nil
}

// Delete removes the record.
func (r *RemoteRecordRepository) Delete(ctx context.Context, resource model.Resource, id string) error {
	_, err := r.do(ctx, model.OpDelete, recordPath(resource, id), nil)
	return err
}

func decodeRecord(data []byte) (model.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apierror.ErrRemoteProtocol.Wrap(fmt.Errorf("decode record: %w", err))
	}
	return rec.Normalize(), nil
}

var _ RecordRepository = (*RemoteRecordRepository)(nil)
