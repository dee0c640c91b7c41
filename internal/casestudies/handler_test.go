package casestudies

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ajees1626/Pixdotbackend/internal/cache"
	"github.com/Ajees1626/Pixdotbackend/internal/validation"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "case_studies.json"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(NewService(repo), validation.New(), logger, cache.NewNoop(), time.Minute)

	r := chi.NewRouter()
	r.Get("/api/case-studies", handler.List)
	r.Get("/api/case-studies/{id}", handler.Get)
	r.Post("/api/add-case-study", handler.Create)
	r.Put("/api/update-case-study/{id}", handler.Update)
	r.Delete("/api/delete-case-study/{id}", handler.Delete)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

const addPayload = `{"title":"A","client":"B","date":"2024","duration":"1mo","industry":"X","category":"Y","image":"u.png","sideImages":[],"content":[]}`

func TestAddThenFetchRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/add-case-study", addPayload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/case-studies/1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["id"] != float64(1) {
		t.Fatalf("expected id 1, got %v", got["id"])
	}
	if got["title"] != "A" || got["client"] != "B" || got["image"] != "u.png" {
		t.Fatalf("unexpected record: %s", body)
	}
	if side, ok := got["sideImages"].([]interface{}); !ok || len(side) != 0 {
		t.Fatalf("expected empty sideImages, got %v", got["sideImages"])
	}
	if content, ok := got["content"].([]interface{}); !ok || len(content) != 0 {
		t.Fatalf("expected empty content, got %v", got["content"])
	}
}

func TestListReturnsArray(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/case-studies", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "[") {
		t.Fatalf("expected a JSON array, got %s", body)
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/add-case-study", addPayload)
	doJSON(t, http.MethodPost, ts.URL+"/api/add-case-study", addPayload)

	_, body = doJSON(t, http.MethodGet, ts.URL+"/api/case-studies", "")
	var items []map[string]interface{}
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/add-case-study", `{"title":"only a title"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, body)
	}
}

func TestUpdatePartialAndMissing(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/add-case-study", addPayload)

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/update-case-study/1", `{"title":"Renamed"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	_, body = doJSON(t, http.MethodGet, ts.URL+"/api/case-studies/1", "")
	var got map[string]interface{}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["title"] != "Renamed" || got["client"] != "B" || got["id"] != float64(1) {
		t.Fatalf("partial update went wrong: %s", body)
	}

	resp, _ = doJSON(t, http.MethodPut, ts.URL+"/api/update-case-study/99", `{"title":"Nope"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing id, got %d", resp.StatusCode)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/add-case-study", addPayload)

	resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/api/delete-case-study/1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodDelete, ts.URL+"/api/delete-case-study/1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on repeated delete, got %d: %s", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/case-studies/1", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestGetRejectsNonIntegerID(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/case-studies/abc", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetMissingReturnsNotFoundBody(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/case-studies/5", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var errBody map[string]string
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if errBody["error"] != "Not found" {
		t.Fatalf("expected error %q, got %q", "Not found", errBody["error"])
	}
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestListCachePopulatedAndInvalidated(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "case_studies.json"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fc := newFakeCache()
	handler := NewHandler(NewService(repo), validation.New(), logger, fc, time.Minute)

	r := chi.NewRouter()
	r.Get("/api/case-studies", handler.List)
	r.Post("/api/add-case-study", handler.Create)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	doJSON(t, http.MethodGet, ts.URL+"/api/case-studies", "")
	if _, ok := fc.data[listCacheKey]; !ok {
		t.Fatalf("expected list response to be cached")
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/add-case-study", addPayload)
	if _, ok := fc.data[listCacheKey]; ok {
		t.Fatalf("expected mutation to invalidate the list cache")
	}

	_, body := doJSON(t, http.MethodGet, ts.URL+"/api/case-studies", "")
	var items []map[string]interface{}
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after invalidation, got %d", len(items))
	}
}
