// Package openlibrary implements the metadata collaborator against the
// Open Library search API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bookshelf/internal/library"
)

const defaultBaseURL = "https://openlibrary.org"

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func NewClient(baseURL, userAgent string, rps int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if rps <= 0 {
		rps = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		logger:    logger,
	}
}

// searchResponse matches search.json
type searchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Title            string   `json:"title"`
		AuthorNames      []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
	} `json:"docs"`
}

// Lookup queries search.json for the ISBN and maps the first document
// to Metadata. A response with no documents returns (nil, nil); callers
// treat errors and nil results as the same absence.
func (c *Client) Lookup(ctx context.Context, isbn string) (*library.Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/search.json?isbn=%s", c.baseURL, url.QueryEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var res searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		c.logger.Debug("no records for isbn", "isbn", isbn)
		return nil, nil
	}

	doc := res.Docs[0]
	title := doc.Title
	if title == "" {
		title = "Unknown Title"
	}
	author := strings.Join(doc.AuthorNames, ", ")
	if author == "" {
		author = "Unknown Author"
	}
	return &library.Metadata{
		Title:           title,
		Author:          author,
		PublicationYear: doc.FirstPublishYear,
	}, nil
}
