// Package ibge reads Brazilian states and municipalities from the IBGE
// localidades API.
package ibge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultBaseURL is the public IBGE localidades endpoint.
const DefaultBaseURL = "https://servicodados.ibge.gov.br/api/v1/localidades"

// Client is an IBGE localidades client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client rooted at baseURL.
func NewClient(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type stateResponse struct {
	Sigla string `json:"sigla"`
}

type cityResponse struct {
	Nome string `json:"nome"`
}

// States returns every state abbreviation in alphabetical order.
func (c *Client) States(ctx context.Context) ([]string, error) {
	var states []stateResponse
	if err := c.getJSON(ctx, "/estados", &states); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(states))
	for _, s := range states {
		if s.Sigla != "" {
			out = append(out, s.Sigla)
		}
	}
	sortPortuguese(out)
	return out, nil
}

// Cities returns the municipality names of uf in Portuguese collation order.
func (c *Client) Cities(ctx context.Context, uf string) ([]string, error) {
	var cities []cityResponse
	if err := c.getJSON(ctx, "/estados/"+url.PathEscape(uf)+"/municipios", &cities); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cities))
	for _, city := range cities {
		if city.Nome != "" {
			out = append(out, city.Nome)
		}
	}
	sortPortuguese(out)
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("ibge: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ibge: GET %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ibge: GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("ibge: decode %s: %w", path, err)
	}
	return nil
}

func sortPortuguese(s []string) {
	collate.New(language.BrazilianPortuguese).SortStrings(s)
}
