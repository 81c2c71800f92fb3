package planet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maskwatch/maskwatch-research-cli/internal/cache"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const defaultItemType = "PSScene"

// Scene is one search hit from the Data API.
type Scene struct {
	ID         string    `json:"id"`
	ItemType   string    `json:"item_type"`
	Acquired   time.Time `json:"acquired"`
	CloudCover float64   `json:"cloud_cover"`
}

type searchResponse struct {
	Features []struct {
		ID         string `json:"id"`
		Properties struct {
			Acquired   time.Time `json:"acquired"`
			CloudCover float64   `json:"cloud_cover"`
			ItemType   string    `json:"item_type"`
		} `json:"properties"`
	} `json:"features"`
}

// SearchScenes runs a quick-search for PSScene items intersecting the
// AOI within the date range, keeping scenes at or below maxCloud cloud
// cover. Results are cached on disk for a day so repeated notebook-style
// runs do not hammer the API.
func (c *Client) SearchScenes(ctx context.Context, aoi orb.Geometry, startDate, endDate time.Time, maxCloud float64) ([]Scene, error) {
	searchCache := cache.NewFileCache[[]Scene]("search_cache", 24*time.Hour)
	aoiJSON, err := json.Marshal(geojson.NewGeometry(aoi))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal AOI geometry: %w", err)
	}

	cacheKey := searchCache.GenerateKey(string(aoiJSON), startDate.Format(time.RFC3339), endDate.Format(time.RFC3339), maxCloud)
	if scenes, ok := searchCache.Get(cacheKey); ok {
		return scenes, nil
	}

	var geometry map[string]interface{}
	if err := json.Unmarshal(aoiJSON, &geometry); err != nil {
		return nil, fmt.Errorf("failed to parse AOI geometry: %w", err)
	}

	requestPayload := map[string]interface{}{
		"item_types": []string{defaultItemType},
		"filter": map[string]interface{}{
			"type": "AndFilter",
			"config": []map[string]interface{}{
				{
					"type":       "GeometryFilter",
					"field_name": "geometry",
					"config":     geometry,
				},
				{
					"type":       "DateRangeFilter",
					"field_name": "acquired",
					"config": map[string]string{
						"gte": startDate.Format(time.RFC3339),
						"lte": endDate.Format(time.RFC3339),
					},
				},
				{
					"type":       "RangeFilter",
					"field_name": "cloud_cover",
					"config": map[string]float64{
						"lte": maxCloud,
					},
				},
			},
		},
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search payload: %w", err)
	}

	url := c.baseURL + "/data/v1/quick-search"
	body, err := c.postWithRetry(ctx, url, requestBody)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	scenes := make([]Scene, 0, len(parsed.Features))
	for _, feature := range parsed.Features {
		itemType := feature.Properties.ItemType
		if itemType == "" {
			itemType = defaultItemType
		}
		scenes = append(scenes, Scene{
			ID:         feature.ID,
			ItemType:   itemType,
			Acquired:   feature.Properties.Acquired,
			CloudCover: feature.Properties.CloudCover,
		})
	}

	if err := searchCache.Set(cacheKey, scenes); err != nil {
		fmt.Printf("Warning: failed to cache search results: %v\n", err)
	}
	return scenes, nil
}

func (c *Client) postWithRetry(ctx context.Context, url string, requestBody []byte) ([]byte, error) {
	retries := 5
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		response, err := c.http.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(response.Body)
			response.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read response body: %w", readErr)
			} else if response.StatusCode == http.StatusOK {
				return body, nil
			} else if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
				return nil, fmt.Errorf("unauthorized access, check your API credentials: %s", string(body))
			} else {
				lastErr = fmt.Errorf("request failed with status %d: %s", response.StatusCode, string(body))
			}
		}

		if attempt < retries {
			fmt.Printf("Attempt %d failed: %v\n", attempt, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", retries, lastErr)
}
