// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package api is a small client for the WP Engine hosting API. It issues
// basic-auth GET requests and decodes the JSON responses.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"wpe/internal/config"
	"wpe/internal/logger"
)

const defaultUserAgent = "wpe-cli"

// Client calls the API on behalf of one credential record.
type Client struct {
	http      *http.Client
	baseURL   string
	userID    string
	password  string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New returns a Client for creds. No request is made.
func New(creds config.Credentials, opts ...Option) *Client {
	c := &Client{
		http:      http.DefaultClient,
		baseURL:   strings.TrimRight(creds.APIURL, "/"),
		userID:    creds.UserID,
		password:  creds.Password,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSites fetches every site in the account, in the order the API returns them.
func (c *Client) ListSites(ctx context.Context) ([]Site, error) {
	u := c.baseURL + "/sites"
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var page struct {
		Results *[]Site `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &Error{Kind: ErrDecode, Method: http.MethodGet, URL: u, Err: err}
	}
	if page.Results == nil {
		return nil, &Error{Kind: ErrDecode, Method: http.MethodGet, URL: u, Err: errors.New(`response has no "results" array`)}
	}
	return *page.Results, nil
}

// GetSite fetches one site and returns the JSON document exactly as received.
func (c *Client) GetSite(ctx context.Context, id string) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("site ID is required")
	}
	return c.get(ctx, c.baseURL+"/sites/"+url.PathEscape(id))
}

func (c *Client) get(ctx context.Context, u string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Kind: ErrRequest, Method: http.MethodGet, URL: u, Err: err}
	}
	req.SetBasicAuth(c.userID, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: ErrRequest, Method: http.MethodGet, URL: u, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("API request", "method", http.MethodGet, "url", u, "status", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrRequest, Method: http.MethodGet, URL: u, StatusCode: resp.StatusCode, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &Error{Kind: ErrAuth, Method: http.MethodGet, URL: u, StatusCode: resp.StatusCode}
	}

	// Other statuses are passed through as long as the body is JSON.
	if !json.Valid(body) {
		kind := ErrDecode
		if resp.StatusCode == http.StatusNotFound {
			kind = ErrNotFound
		}
		logger.Warn("Non-JSON API response", "url", u, "status", resp.StatusCode, "bytes", len(body))
		return nil, &Error{Kind: kind, Method: http.MethodGet, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("body is not valid JSON")}
	}
	return json.RawMessage(body), nil
}
