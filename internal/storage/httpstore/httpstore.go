// internal/storage/httpstore/httpstore.go
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/models"
	"chordbook/internal/storage"

	"go.uber.org/zap"
)

// Client talks to a remote REST document store:
//
//	GET  {base}/{collection}       -> [{"id": ..., ...document}]
//	POST {base}/{collection}       -> {"id": ...}
//	PUT  {base}/{collection}/{id}
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) endpoint(parts ...string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("STORE_URL not configured")
	}
	u, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to build store URL: %w", err)
	}
	return u, nil
}

func (c *Client) do(ctx context.Context, method, target string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	utils.Logger.Debug("Calling document store", zap.String("method", method), zap.String("url", target))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call document store: %w", err)
	}
	return resp, nil
}

func (c *Client) FetchAll(ctx context.Context, collection string) ([]models.Song, error) {
	target, err := c.endpoint(collection)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document store returned error: %s", resp.Status)
	}

	var docs []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to decode document store response: %w", err)
	}

	songs := make([]models.Song, 0, len(docs))
	for _, doc := range docs {
		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(doc, &ref); err != nil || ref.ID == "" {
			utils.Logger.Warn("Client.FetchAll - skipping document without id")
			continue
		}
		song, err := storage.DecodeDocument(ref.ID, doc)
		if err != nil {
			utils.Logger.Warn("Client.FetchAll - skipping undecodable document", zap.Error(err), zap.String("id", ref.ID))
			continue
		}
		songs = append(songs, song)
	}

	utils.Logger.Debug("Document store response", zap.Int("count", len(songs)))
	return songs, nil
}

func (c *Client) Insert(ctx context.Context, collection string, fields models.SongFields) (string, error) {
	target, err := c.endpoint(collection)
	if err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, target, fields)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("document store returned error: %s", resp.Status)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode document store response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("document store returned no id")
	}
	return created.ID, nil
}

func (c *Client) Replace(ctx context.Context, collection string, id string, fields models.SongFields) error {
	target, err := c.endpoint(collection, id)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPut, target, fields)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return storage.ErrSongNotFound
	default:
		return fmt.Errorf("document store returned error: %s", resp.Status)
	}
}
