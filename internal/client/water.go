// Package client talks to a running remote record API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hydration-tracker/internal/model"
)

type WaterClient struct {
	baseURL string
	client  *http.Client
}

func NewWaterClient(baseURL string) *WaterClient {
	return &WaterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Append posts one record. A nil timestamp lets the server pick.
func (c *WaterClient) Append(ctx context.Context, capacity float64, timestamp *time.Time) (*model.WaterIntake, error) {
	body := map[string]interface{}{"capacity": capacity}
	if timestamp != nil {
		body["timestamp"] = timestamp.Format(time.RFC3339Nano)
	}
	var rec model.WaterIntake
	if err := c.doJSON(ctx, http.MethodPost, "/api/water", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *WaterClient) List(ctx context.Context) ([]model.WaterIntake, error) {
	var recs []model.WaterIntake
	if err := c.doJSON(ctx, http.MethodGet, "/api/water", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *WaterClient) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("water api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("water api %s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("water api %s %s: status %d: %s", method, path, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
