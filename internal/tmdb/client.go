package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcrowe/marquee/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client fetches supplemental metadata from a TMDB-compatible API. The
// catalog backend stores only a TMDB reference per item; overview text,
// runtime, and artwork come from here.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new metadata API client
func NewClient(apiKey, baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Enabled reports whether the client has an API key configured
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Detail is the supplemental metadata for one title
type Detail struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	Popularity   float64 `json:"popularity"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
}

// MovieDetail fetches detailed metadata for a TMDB movie ID
func (c *Client) MovieDetail(ctx context.Context, tmdbID int) (*Detail, error) {
	reqURL := fmt.Sprintf("%s/movie/%d?api_key=%s", c.baseURL, tmdbID, c.apiKey)

	c.logger.Debug("fetching metadata detail", "tmdbID", tmdbID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrNetwork
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.HTTPError{Status: resp.StatusCode}
	}

	var detail Detail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, &domain.DecodeError{Err: err}
	}
	return &detail, nil
}
