package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/lcrowe/marquee/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// Client implements domain.CatalogRepository, domain.LookupRepository,
// domain.StatsRepository, and domain.AuthRepository against the catalog
// backend's REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new backend API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetToken replaces the bearer token used on subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// doRequest performs an authenticated HTTP request and classifies failures:
// transport errors map to domain.ErrNetwork, 401 to domain.ErrAuthFailed,
// other non-2xx statuses to *domain.HTTPError.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("backend request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "error", err)
		return nil, domain.ErrNetwork
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrNetwork
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("backend request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, &domain.HTTPError{Status: resp.StatusCode}
	}

	return respBody, nil
}

// decode unmarshals a response body, classifying failures as *domain.DecodeError
func (c *Client) decode(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return &domain.DecodeError{Err: err}
	}
	return nil
}

// FetchMedia returns one page of catalog results for the given params
func (c *Client) FetchMedia(ctx context.Context, params map[string]string) (*domain.MediaPage, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/media", query, nil)
	if err != nil {
		return nil, err
	}

	var resp mediaListResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	return mapMediaPage(resp), nil
}

// FetchGenres returns the genre lookup table
func (c *Client) FetchGenres(ctx context.Context) ([]domain.Genre, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/genres", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []genreDTO
	if err := c.decode(body, &dtos); err != nil {
		return nil, err
	}
	return mapGenres(dtos), nil
}

// FetchTypes returns the media type lookup table
func (c *Client) FetchTypes(ctx context.Context) ([]domain.MediaType, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/types", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []typeDTO
	if err := c.decode(body, &dtos); err != nil {
		return nil, err
	}
	return mapTypes(dtos), nil
}

// FetchDirectors returns the director lookup table
func (c *Client) FetchDirectors(ctx context.Context) ([]domain.Director, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/directors", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []personDTO
	if err := c.decode(body, &dtos); err != nil {
		return nil, err
	}
	return mapDirectors(dtos), nil
}

// FetchProducers returns the producer lookup table
func (c *Client) FetchProducers(ctx context.Context) ([]domain.Producer, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/producers", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []personDTO
	if err := c.decode(body, &dtos); err != nil {
		return nil, err
	}
	return mapProducers(dtos), nil
}

// FetchCategoryStats returns the counters for one statistic category
func (c *Client) FetchCategoryStats(ctx context.Context, cat domain.Category) (*domain.CategoryStats, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/stats/"+string(cat), nil, nil)
	if err != nil {
		return nil, err
	}

	var dto statsDTO
	if err := c.decode(body, &dto); err != nil {
		return nil, err
	}
	return &domain.CategoryStats{
		Total:          dto.Total,
		Active:         dto.Active,
		AddedThisMonth: dto.AddedThisMonth,
	}, nil
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}
	return &domain.Session{Token: resp.Token, User: mapUser(resp.User)}, nil
}

// CurrentUser returns the user owning the given token
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	// token may differ from the client's own during session restore
	cl := *c
	cl.token = token
	body, err := cl.doRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var dto userDTO
	if err := c.decode(body, &dto); err != nil {
		return nil, err
	}
	user := mapUser(dto)
	return &user, nil
}
