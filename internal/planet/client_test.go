package planet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAOI() orb.Geometry {
	return orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	t.Setenv("ROOT_PATH", t.TempDir())
	t.Setenv("PL_API_KEY", "test-key")
	t.Setenv("PLANET_BASE_URL", serverURL)
	t.Setenv("PLANET_CLIENT_ID", "")
	t.Setenv("PLANET_CLIENT_SECRET", "")

	c, err := NewClient(context.Background())
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Setenv("PL_API_KEY", "")
	t.Setenv("PLANET_CLIENT_ID", "")
	t.Setenv("PLANET_CLIENT_SECRET", "")

	_, err := NewClient(context.Background())
	assert.Error(t, err)
}

func TestSearchScenes(t *testing.T) {
	var gotFilter map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/data/v1/quick-search", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "test-key", user)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotFilter = payload

		fmt.Fprint(w, `{"features":[
			{"id":"scene-1","properties":{"acquired":"2026-04-01T10:00:00Z","cloud_cover":0.05,"item_type":"PSScene"}},
			{"id":"scene-2","properties":{"acquired":"2026-04-03T10:00:00Z","cloud_cover":0.2}}
		]}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)

	scenes, err := c.SearchScenes(context.Background(), testAOI(), start, end, 0.3)
	require.NoError(t, err)

	require.Len(t, scenes, 2)
	assert.Equal(t, "scene-1", scenes[0].ID)
	assert.Equal(t, "PSScene", scenes[0].ItemType)
	assert.Equal(t, 0.05, scenes[0].CloudCover)
	assert.Equal(t, "PSScene", scenes[1].ItemType)

	assert.Equal(t, []interface{}{"PSScene"}, gotFilter["item_types"])

	// second call is served from the on-disk cache
	server.Close()
	cached, err := c.SearchScenes(context.Background(), testAOI(), start, end, 0.3)
	require.NoError(t, err)
	assert.Equal(t, scenes, cached)
}

func TestSearchScenesUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.SearchScenes(context.Background(), testAOI(), time.Now().Add(-time.Hour), time.Now(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestDownloadAssets(t *testing.T) {
	var activated atomic.Bool
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/data/v1/item-types/PSScene/items/scene-1/assets", func(w http.ResponseWriter, r *http.Request) {
		status := "inactive"
		location := ""
		if activated.Load() {
			status = "active"
			location = server.URL + "/download/scene-1"
		}
		fmt.Fprintf(w, `{"udm2":{"status":%q,"location":%q,"_links":{"activate":%q}}}`,
			status, location, server.URL+"/activate/scene-1")
	})
	mux.HandleFunc("/activate/scene-1", func(w http.ResponseWriter, r *http.Request) {
		activated.Store(true)
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/download/scene-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tiff-bytes"))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, server.URL)
	destDir := filepath.Join(t.TempDir(), "scenes")
	scenes := []Scene{{ID: "scene-1", ItemType: "PSScene"}}

	paths, err := c.DownloadAssets(context.Background(), scenes, AssetUDM2, destDir, time.Minute)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(destDir, "scene-1_udm2.tif"), paths[0])
	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "tiff-bytes", string(data))
}

func TestDownloadAssetsMissingAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	scenes := []Scene{{ID: "scene-1", ItemType: "PSScene"}}

	_, err := c.DownloadAssets(context.Background(), scenes, AssetUDM2, t.TempDir(), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no udm2 asset")
}

func TestLoadAOI(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "aoi.geojson")
	content := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
		"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	geom, err := LoadAOI(path)
	require.NoError(t, err)

	lon, lat, err := AOICentroid(geom)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, lon, 1e-9)
	assert.InDelta(t, 0.5, lat, 1e-9)
}

func TestLoadAOIDegenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "point.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Point","coordinates":[1,2]}`), 0644))

	_, err := LoadAOI(path)
	assert.Error(t, err)
}
