package dataapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamcomp/internal"
)

const sampleData = `{
	"giovanni": {
		"title": "Giovanni Counters",
		"headers": ["Persian"],
		"rows": [["Mewtwo\nPsycho Cut, Shadow Ball"]],
		"last_updated": "2025-06-01T12:00:00"
	},
	"cliff": {"title": "Cliff Counters", "headers": [], "rows": []},
	"data": {"title": "Raw", "headers": ["A"], "rows": [["x\ny"]]}
}`

var quiet = internal.NewLogger(internal.LogLevelError)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokemon_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestServer(t *testing.T, imageBase string) (*Server, string) {
	t.Helper()
	path := writeDataFile(t, sampleData)
	store := NewStore(path, quiet)
	require.NoError(t, store.Load())
	return NewServer(store, Config{ImageBaseURL: imageBase}, quiet), path
}

func get(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServer_BossEndpoint(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := get(t, s.Handler(), http.MethodGet, "/api/giovanniTeam")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Giovanni Counters", body["title"])
}

func TestServer_MissingBossIsEmptyObject(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := get(t, s.Handler(), http.MethodGet, "/api/sierraTeam")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestServer_DataEndpoint(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := get(t, s.Handler(), http.MethodGet, "/api/data")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Raw"`)
}

func TestServer_UnknownEndpoint(t *testing.T) {
	s, _ := newTestServer(t, "")

	for _, target := range []string{"/api/mewtwoTeam", "/api/giovanni", "/nope"} {
		rec := get(t, s.Handler(), http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestServer_Status(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := get(t, s.Handler(), http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"giovanni": "2025-06-01T12:00:00",
		"arlo": "Never updated",
		"cliff": "Never updated",
		"sierra": "Never updated"
	}`, rec.Body.String())
}

func TestServer_Images(t *testing.T) {
	s, _ := newTestServer(t, "https://bucket.s3.amazonaws.com/")

	rec := get(t, s.Handler(), http.MethodGet, "/api/images/mr%20mime.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"image_url": "https://bucket.s3.amazonaws.com/cached_images/mr%20mime.png"}`, rec.Body.String())

	bare, _ := newTestServer(t, "")
	rec = get(t, bare.Handler(), http.MethodGet, "/api/images/mewtwo.png")
	assert.JSONEq(t, `{"image_url": null}`, rec.Body.String())
}

func TestServer_ImageKeys(t *testing.T) {
	s, _ := newTestServer(t, "https://b")

	tests := []struct {
		name     string
		filename string
		target   string
		want     string
	}{
		{"plain", "mewtwo.png", "", "https://b/cached_images/mewtwo.png"},
		{"space", "a b.png", "", "https://b/cached_images/a%20b.png"},
		{"percent is not decoded twice", "50%41.png", "", "https://b/cached_images/50%2541.png"},
		{"escaped slash keeps key separator", "shadow/mewtwo.png", "", "https://b/cached_images/shadow/mewtwo.png"},
		{"literal slash", "shadow/mewtwo.png", "/api/images/shadow/mewtwo.png", "https://b/cached_images/shadow/mewtwo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			if target == "" {
				target = "/api/images/" + url.PathEscape(tt.filename)
			}
			rec := get(t, s.Handler(), http.MethodGet, target)
			require.Equal(t, http.StatusOK, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body["image_url"])
		})
	}
}

func TestServer_Refresh(t *testing.T) {
	s, path := newTestServer(t, "")

	require.NoError(t, os.WriteFile(path, []byte(`{"sierra": {"title": "Sierra Counters"}}`), 0o644))
	rec := get(t, s.Handler(), http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reloaded))
	loadedAt, err := time.Parse(time.RFC3339, reloaded["loaded_at"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), loadedAt, time.Minute)

	rec = get(t, s.Handler(), http.MethodGet, "/api/sierraTeam")
	assert.Contains(t, rec.Body.String(), "Sierra Counters")

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))
	rec = get(t, s.Handler(), http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = get(t, s.Handler(), http.MethodGet, "/api/sierraTeam")
	assert.Contains(t, rec.Body.String(), "Sierra Counters", "failed reload keeps previous data")
}

func TestServer_Preflight(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := get(t, s.Handler(), http.MethodOptions, "/api/giovanniTeam")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStore_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"), quiet)
	require.NoError(t, store.Load())
	assert.Equal(t, "{}", store.Payload("giovanni"))
	assert.Equal(t, NeverUpdated, store.Status()["arlo"])
	assert.False(t, store.LoadedAt().IsZero())
}

func TestStore_RejectsNonObject(t *testing.T) {
	store := NewStore("inline", quiet)
	assert.Error(t, store.LoadBytes([]byte(`[1, 2]`)))
	assert.Error(t, store.LoadBytes([]byte(`nope`)))
}

func TestStoreKey(t *testing.T) {
	tests := []struct {
		endpoint string
		key      string
		ok       bool
	}{
		{"giovanniTeam", "giovanni", true},
		{"sierraTeam", "sierra", true},
		{"data", "data", true},
		{"giovanni", "", false},
		{"Team", "", false},
		{"status", "", false},
	}
	for _, tt := range tests {
		key, ok := storeKey(tt.endpoint)
		assert.Equal(t, tt.key, key, tt.endpoint)
		assert.Equal(t, tt.ok, ok, tt.endpoint)
	}
}
