package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	modelCacheFilename = "models_cache.json"
	freeModelSuffix    = ":free"
	catalogTimeout     = 15 * time.Second
)

// ModelInfo is one entry of the OpenRouter model catalog.
type ModelInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ContextLength   int    `json:"context_length"`
	PromptPrice     string `json:"prompt_price"`
	CompletionPrice string `json:"completion_price"`
}

// Free reports whether the model is billed at zero.
func (m ModelInfo) Free() bool {
	if strings.HasSuffix(m.ID, freeModelSuffix) {
		return true
	}
	return isZeroPrice(m.PromptPrice) && isZeroPrice(m.CompletionPrice)
}

func isZeroPrice(price string) bool {
	price = strings.TrimSpace(price)
	if price == "" {
		return false
	}
	return strings.Trim(price, "0.") == ""
}

// ModelCache stores the catalog with the time it was fetched.
type ModelCache struct {
	UpdatedAt time.Time   `json:"updated_at"`
	Models    []ModelInfo `json:"models"`
}

// Stale reports whether the cache is older than maxAge.
func (c ModelCache) Stale(now time.Time, maxAge time.Duration) bool {
	return len(c.Models) == 0 || now.Sub(c.UpdatedAt) > maxAge
}

// DefaultModelCachePath returns ~/.amdchat/models_cache.json.
func DefaultModelCachePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".amdchat", modelCacheFilename)
	}
	return filepath.Join(homeDir, ".amdchat", modelCacheFilename)
}

// FetchModels retrieves the model catalog from <apiURL>/models.
func FetchModels(ctx context.Context, apiURL string, httpClient *http.Client) ([]ModelInfo, error) {
	modelsURL, err := buildModelsURL(apiURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: catalogTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create models request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &NetworkError{
			Message:    fmt.Sprintf("models request failed: %s", strings.TrimSpace(truncateBody(body))),
			StatusCode: resp.StatusCode,
		}
	}

	return parseModels(body)
}

func parseModels(body []byte) ([]ModelInfo, error) {
	if !gjson.ValidBytes(body) {
		return nil, &NetworkError{Message: "decode models response: invalid JSON"}
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, &NetworkError{Message: "decode models response: missing data array"}
	}

	var models []ModelInfo
	data.ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		if id == "" {
			return true
		}
		models = append(models, ModelInfo{
			ID:              id,
			Name:            item.Get("name").String(),
			ContextLength:   int(item.Get("context_length").Int()),
			PromptPrice:     item.Get("pricing.prompt").String(),
			CompletionPrice: item.Get("pricing.completion").String(),
		})
		return true
	})

	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})
	return models, nil
}

func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}

// FilterFree keeps only zero-priced models.
func FilterFree(models []ModelInfo) []ModelInfo {
	free := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		if m.Free() {
			free = append(free, m)
		}
	}
	return free
}

// LoadModels returns the cached catalog, refreshing it when it is missing,
// older than maxAge, or force is set. A cache that cannot be written is
// logged and the fetched catalog is still returned.
func LoadModels(ctx context.Context, apiURL, cachePath string, maxAge time.Duration, force bool, httpClient *http.Client) (ModelCache, error) {
	if !force {
		if cache, err := LoadModelCache(cachePath); err == nil && !cache.Stale(time.Now(), maxAge) {
			return cache, nil
		}
	}

	models, err := FetchModels(ctx, apiURL, httpClient)
	if err != nil {
		return ModelCache{}, err
	}

	cache := ModelCache{
		UpdatedAt: time.Now().UTC(),
		Models:    models,
	}
	if err := SaveModelCache(cachePath, cache); err != nil {
		slog.Warn("model_cache_write_failed", "path", cachePath, "error", err)
	}
	return cache, nil
}

// LoadModelCache loads the model cache from disk.
func LoadModelCache(path string) (ModelCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelCache{}, err
	}

	var cache ModelCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return ModelCache{}, fmt.Errorf("parse model cache: %w", err)
	}
	return cache, nil
}

// SaveModelCache writes the model cache to disk.
func SaveModelCache(path string, cache ModelCache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create model cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write model cache: %w", err)
	}
	return nil
}

func buildModelsURL(apiURL string) (string, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return "", fmt.Errorf("api_url is required")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid api_url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("api_url must include scheme and host")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/models"
	return parsed.String(), nil
}
