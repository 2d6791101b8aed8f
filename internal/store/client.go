// Package store is the HTTP client for the external inventory store.
//
// The store owns all inventory state. It exposes an ordered item schema,
// a full-count read, and a single-item signed-delta update that rejects
// results below zero or changes above a configured magnitude cap. Every
// call is one blocking request/response with a bounded timeout; retries,
// if desired, are an external policy.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/stockpilot/stockpilot/internal/config"
	"github.com/stockpilot/stockpilot/internal/platform/logger"
)

// Schema is the store's introspection payload: the canonical item names in
// declaration order plus the configured per-update magnitude cap.
type Schema struct {
	Items     []string `json:"items"`
	MaxChange int      `json:"max_change"`
}

type Client interface {
	// Schema reads the store's item declaration. Called once at startup.
	Schema(ctx context.Context) (Schema, error)

	// Counts reads the current count for every tracked item.
	Counts(ctx context.Context) (map[string]int, error)

	// Apply sends one signed delta for one canonical item and returns the
	// post-update counts for every item. Business rejections come back as
	// *RangeError or *UnknownItemError.
	Apply(ctx context.Context, item string, delta int) (map[string]int, error)
}

type httpClient struct {
	log        *logger.Logger
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client

	// counts coalesces concurrent full-count reads; the read is idempotent
	// and concurrent queries frequently want a snapshot at the same moment.
	counts singleflight.Group
}

func New(cfg config.StoreConfig, log *logger.Logger) (Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("store: base_url required")
	}
	if log == nil {
		return nil, errors.New("store: logger required")
	}

	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:    20,
		IdleConnTimeout: 90 * time.Second,
	}

	return &httpClient{
		log:        log.With("client", "inventory_store"),
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using
// a custom RoundTripper.
func NewWithHTTPClient(cfg config.StoreConfig, log *logger.Logger, hc *http.Client) (Client, error) {
	c, err := New(cfg, log)
	if err != nil {
		return nil, err
	}
	if hc != nil {
		c.(*httpClient).httpClient = hc
	}
	return c, nil
}

func (c *httpClient) Schema(ctx context.Context) (Schema, error) {
	var out Schema
	if err := c.doJSON(ctx, http.MethodGet, "/inventory/schema", nil, &out); err != nil {
		return Schema{}, err
	}
	if len(out.Items) == 0 {
		return Schema{}, errors.New("store: schema declares no items")
	}
	return out, nil
}

func (c *httpClient) Counts(ctx context.Context) (map[string]int, error) {
	// The fetch result is shared with concurrent callers, so it must not
	// inherit the first caller's cancellation; the bounded timeout inside
	// doJSON still applies.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.counts.Do("counts", func() (interface{}, error) {
		var out map[string]int
		if err := c.doJSON(fetchCtx, http.MethodGet, "/inventory", nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]int), nil
}

type applyRequest struct {
	Item   string `json:"item"`
	Change int    `json:"change"`
}

func (c *httpClient) Apply(ctx context.Context, item string, delta int) (map[string]int, error) {
	var out map[string]int
	err := c.doJSON(ctx, http.MethodPost, "/inventory", applyRequest{Item: item, Change: delta}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Item      string `json:"item,omitempty"`
		Current   int    `json:"current,omitempty"`
		Attempted int    `json:"attempted,omitempty"`
		Cap       int    `json:"cap,omitempty"`
	} `json:"error"`
}

func (c *httpClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store decode error: %w; raw=%s", err, string(raw))
	}
	return nil
}

// decodeError maps the store's structured 4xx bodies onto typed errors.
// Anything else stays an *HTTPError for transport classification upstream.
func (c *httpClient) decodeError(status int, raw []byte) error {
	if status >= 400 && status < 500 {
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			switch eb.Error.Code {
			case string(RangeBelowZero):
				return &RangeError{
					Kind:      RangeBelowZero,
					Item:      eb.Error.Item,
					Current:   eb.Error.Current,
					Attempted: eb.Error.Attempted,
				}
			case string(RangeAboveCap):
				return &RangeError{
					Kind:      RangeAboveCap,
					Item:      eb.Error.Item,
					Attempted: eb.Error.Attempted,
					Cap:       eb.Error.Cap,
				}
			case "unknown_item":
				return &UnknownItemError{Item: eb.Error.Item}
			}
		}
	}
	c.log.Warn("store request failed", "status", status, "body", string(raw))
	return &HTTPError{StatusCode: status, Body: string(raw)}
}
