package museum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"totem/internal/session"
	"totem/pkg/logger"
)

// Client fetches museum data from the upstream API. Lookups never fail the
// caller: any upstream problem resolves to the built-in mock museum so the
// kiosk stays usable offline.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates an upstream museum client.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// FetchMuseum looks up a museum by id via GET museum_totem?museum_id=<id>.
// The upstream returns an array; the first entry is consumed.
func (c *Client) FetchMuseum(ctx context.Context, museumID string) *session.Museum {
	endpoint := fmt.Sprintf("%s/museum_totem?museum_id=%s", c.baseURL, url.QueryEscape(museumID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fallback(ctx, museumID, "request build failed: "+err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fallback(ctx, museumID, "network error: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fallback(ctx, museumID, fmt.Sprintf("upstream returned %d", resp.StatusCode))
	}

	var museums []session.Museum
	if err := json.NewDecoder(resp.Body).Decode(&museums); err != nil {
		return c.fallback(ctx, museumID, "malformed response: "+err.Error())
	}

	if len(museums) == 0 {
		return c.fallback(ctx, museumID, "no museum data in response")
	}

	return &museums[0]
}

func (c *Client) fallback(ctx context.Context, museumID, reason string) *session.Museum {
	if c.log != nil {
		c.log.LogMuseumFallback(ctx, museumID, reason)
	}
	return MockMuseum()
}

// MockMuseum returns the built-in museum used when the upstream is
// unreachable or the id is unknown. Fixed set of 12 languages, not a church.
func MockMuseum() *session.Museum {
	return &session.Museum{
		Name:     "Test Museum",
		Code:     "TESTMUSEUM",
		IsChurch: false,
		MuseumLanguages: []session.Language{
			{LanguageID: 2, Code: "en", Name: "English"},
			{LanguageID: 1, Code: "it", Name: "Italiano"},
			{LanguageID: 6, Code: "fr", Name: "Français"},
			{LanguageID: 7, Code: "de", Name: "Deutsch"},
			{LanguageID: 5, Code: "es", Name: "Español"},
			{LanguageID: 9, Code: "pt", Name: "Português"},
			{LanguageID: 15, Code: "ru", Name: "Русский"},
			{LanguageID: 10, Code: "zh", Name: "中国人 Chinese"},
			{LanguageID: 16, Code: "sl", Name: "slovenščina"},
			{LanguageID: 11, Code: "ja", Name: "日本語 Japanese"},
			{LanguageID: 13, Code: "ar", Name: "عربي Arabic"},
			{LanguageID: 38, Code: "hi", Name: "हिन्दी"},
		},
	}
}
