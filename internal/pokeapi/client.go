package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pokemon-mcp/internal/buildinfo"
	"pokemon-mcp/internal/logger"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	DefaultTimeout = 30 * time.Second

	// searchListLimit is how many list entries a search scans.
	searchListLimit = 1000
)

var ErrInvalidIdentifier = errors.New("identifier is required")

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client talks to a single PokeAPI host. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

func NewClient() *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: DefaultTimeout},
		BaseURL:   DefaultBaseURL,
		UserAgent: buildinfo.UserAgent(buildinfo.Version),
	}
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	c.HTTP.CloseIdleConnections()
}

// NormalizeIdentifier trims and lower-cases a name or numeric id.
func NormalizeIdentifier(id string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(id))
}

// Get fetches /{kind}/{identifier} and returns the raw JSON body.
func (c *Client) Get(ctx context.Context, kind Resource, identifier string) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, string(kind))
	}
	id := NormalizeIdentifier(identifier)
	if id == "" {
		return nil, fmt.Errorf("%s: %w", kind, ErrInvalidIdentifier)
	}
	return c.fetch(ctx, "/"+string(kind)+"/"+url.PathEscape(id), nil)
}

// List fetches one page of /{kind}. limit is passed through unchecked.
func (c *Client) List(ctx context.Context, kind Resource, limit int, offset int) (*NamedResourceList, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, string(kind))
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	body, err := c.fetch(ctx, "/"+string(kind), q)
	if err != nil {
		return nil, err
	}
	var out NamedResourceList
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unexpected error: decode %s list: %w", kind, err)
	}
	return &out, nil
}

// GetPokemon fetches and decodes a pokemon by name or id.
func (c *Client) GetPokemon(ctx context.Context, idOrName string) (*PokemonRecord, error) {
	body, err := c.Get(ctx, Pokemon, idOrName)
	if err != nil {
		return nil, err
	}
	var out PokemonRecord
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unexpected error: decode pokemon: %w", err)
	}
	return &out, nil
}

// GetType fetches and decodes a type by name or id.
func (c *Client) GetType(ctx context.Context, idOrName string) (*TypeRecord, error) {
	body, err := c.Get(ctx, Type, idOrName)
	if err != nil {
		return nil, err
	}
	var out TypeRecord
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unexpected error: decode type: %w", err)
	}
	return &out, nil
}

// Search scans the first 1000 pokemon and returns up to limit entries whose
// name contains query, case-insensitively.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	list, err := c.List(ctx, Pokemon, searchListLimit, 0)
	if err != nil {
		return nil, err
	}
	needle := NormalizeIdentifier(query)
	matches := make([]NamedAPIResource, 0)
	for _, p := range list.Results {
		if len(matches) >= limit {
			break
		}
		if strings.Contains(NormalizeIdentifier(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return &SearchResult{Query: query, Matches: len(matches), Results: matches}, nil
}

// fetch issues a single GET. There are no retries; the http.Client timeout
// bounds the whole exchange.
func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		logger.Debug("upstream request failed", "method", req.Method, "url", u, "err", err)
		return nil, fmt.Errorf("HTTP error: %s %s: %w", req.Method, u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	logger.Debug("upstream request", "method", req.Method, "url", u, "status", resp.StatusCode, "duration", time.Since(start))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: req.Method, URL: u, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %s %s: read body: %w", req.Method, u, err)
	}
	return body, nil
}
