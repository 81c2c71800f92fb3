package planet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// AssetUDM2 and AssetAnalytic are the asset types the CLI works with.
const (
	AssetUDM2     = "udm2"
	AssetAnalytic = "ortho_analytic_4b"
)

const activationPollInterval = 5 * time.Second

type assetInfo struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Links    struct {
		Activate string `json:"activate"`
	} `json:"_links"`
}

func (c *Client) listAssets(ctx context.Context, scene Scene) (map[string]assetInfo, error) {
	url := fmt.Sprintf("%s/data/v1/item-types/%s/items/%s/assets", c.baseURL, scene.ItemType, scene.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for scene %s: %w", scene.ID, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assets request for scene %s failed with status %d: %s", scene.ID, response.StatusCode, string(body))
	}

	assets := make(map[string]assetInfo)
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, fmt.Errorf("failed to parse assets response: %w", err)
	}
	return assets, nil
}

// ActivateAssets fires the asynchronous activation request for one
// asset type on every scene. Activation on the Planet side is a
// single-shot call: the API answers immediately and prepares the asset
// in the background, so requests are fanned out on a worker pool and
// completion is observed later by polling.
func (c *Client) ActivateAssets(ctx context.Context, scenes []Scene, assetType string) error {
	wp := workerpool.New(8)
	var (
		mu      sync.Mutex
		lastErr error
	)

	for _, scene := range scenes {
		s := scene
		wp.Submit(func() {
			if err := c.activateAsset(ctx, s, assetType); err != nil {
				mu.Lock()
				lastErr = err
				mu.Unlock()
			}
		})
	}
	wp.StopWait()
	return lastErr
}

func (c *Client) activateAsset(ctx context.Context, scene Scene, assetType string) error {
	assets, err := c.listAssets(ctx, scene)
	if err != nil {
		return err
	}
	asset, ok := assets[assetType]
	if !ok {
		return fmt.Errorf("scene %s has no %s asset", scene.ID, assetType)
	}
	if asset.Status == "active" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, asset.Links.Activate, nil)
	if err != nil {
		return err
	}
	response, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to activate %s asset for scene %s: %w", assetType, scene.ID, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusAccepted && response.StatusCode != http.StatusNoContent && response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return fmt.Errorf("activation for scene %s failed with status %d: %s", scene.ID, response.StatusCode, string(body))
	}
	return nil
}

func (c *Client) waitAssetActive(ctx context.Context, scene Scene, assetType string, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		assets, err := c.listAssets(ctx, scene)
		if err != nil {
			return "", err
		}
		asset, ok := assets[assetType]
		if !ok {
			return "", fmt.Errorf("scene %s has no %s asset", scene.ID, assetType)
		}
		if asset.Status == "active" && asset.Location != "" {
			return asset.Location, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("timed out waiting for %s asset of scene %s to activate", assetType, scene.ID)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(activationPollInterval):
		}
	}
}

// DownloadAssets activates, waits for and downloads one asset type for
// every scene into destDir, returning the file paths in scene order.
// Scenes are processed concurrently; the first failure cancels the
// rest.
func (c *Client) DownloadAssets(ctx context.Context, scenes []Scene, assetType, destDir string, timeout time.Duration) ([]string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := c.ActivateAssets(ctx, scenes, assetType); err != nil {
		return nil, err
	}

	paths := make([]string, len(scenes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)

	for i, scene := range scenes {
		i, scene := i, scene
		group.Go(func() error {
			location, err := c.waitAssetActive(groupCtx, scene, assetType, timeout)
			if err != nil {
				return err
			}
			path := filepath.Join(destDir, fmt.Sprintf("%s_%s.tif", scene.ID, assetType))
			if err := c.downloadFile(groupCtx, location, path, scene.ID); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Client) downloadFile(ctx context.Context, url, path, sceneID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	response, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download asset for scene %s: %w", sceneID, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return fmt.Errorf("download for scene %s failed with status %d: %s", sceneID, response.StatusCode, string(body))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	bar := progressbar.DefaultBytes(response.ContentLength, "Downloading "+sceneID)
	if _, err := io.Copy(io.MultiWriter(file, bar), response.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
