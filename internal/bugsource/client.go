/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package bugsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FuturesLab/futureslab.github.io/internal/config"
	"github.com/FuturesLab/futureslab.github.io/internal/domain"
	"github.com/rs/zerolog"
)

// FetchError is a network or HTTP-status failure while retrieving a source
// document. ParseError is a syntactically invalid document. The bugs page
// shows both as the same generic failure; only logs tell them apart.
type FetchError struct {
	Source string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status=%d", e.Source, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Source, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Client retrieves one bug JSON document per call. Requests are retried with
// exponential backoff on 429/5xx and transport errors; other non-2xx
// statuses fail immediately.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BugsBaseURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:     log,
	}
}

func (c *Client) docURL(name string) string {
	base := strings.TrimRight(c.baseURL, "/")
	return base + "/" + url.PathEscape(name)
}

// Fetch retrieves and decodes the named source document.
func (c *Client) Fetch(ctx context.Context, name string) ([]domain.BugRecord, error) {
	if c.baseURL == "" {
		return nil, &FetchError{Source: name, Err: errors.New("empty base URL")}
	}
	u := c.docURL(name)
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &FetchError{Source: name, Err: ctx.Err()}
			case <-time.After(time.Duration(300*(1<<(attempt-1))) * time.Millisecond):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, &FetchError{Source: name, Err: err}
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = &FetchError{Source: name, Err: err}
			continue
		}
		if resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			ferr := &FetchError{Source: name, Status: resp.StatusCode}
			// retry on 429/5xx
			if resp.StatusCode == 429 || resp.StatusCode >= 500 {
				c.log.Warn().Str("source", name).Int("status", resp.StatusCode).Str("body", strings.TrimSpace(string(b))).Msg("source fetch retrying")
				lastErr = ferr
				continue
			}
			return nil, ferr
		}
		var out []domain.BugRecord
		err = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if err != nil {
			return nil, &ParseError{Source: name, Err: err}
		}
		return out, nil
	}
	return nil, lastErr
}
