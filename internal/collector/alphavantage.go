package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// Response keys recognized by the classification, in dispatch priority order.
const (
	keyErrorMessage = "Error Message"
	keyNote         = "Note"
	keyInformation  = "Information"
	keyDailySeries  = "Time Series (Daily)"
)

// rateLimitPhrase marks a Note as a frequency-limit rejection. A Note without
// it falls through to the remaining checks.
const rateLimitPhrase = "API call frequency"

// bodyExcerptLimit caps how much of an unparseable response body is kept.
const bodyExcerptLimit = 500

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage query API.
type AlphaVantageFetcher struct {
	BaseURL    string
	APIKey     string
	Function   string
	OutputSize string
	Client     *http.Client
}

// NewAlphaVantageFetcher creates a new fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, function, outputSize, proxyURL string) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlphaVantageFetcher{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Function:   function,
		OutputSize: outputSize,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// FetchDailySeries issues one GET for symbol and returns exactly the payload
// under "Time Series (Daily)". Error, rate-limit and informational responses
// come back as the typed errors in this package.
func (f *AlphaVantageFetcher) FetchDailySeries(ctx context.Context, symbol string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("function", f.Function)
	q.Set("symbol", symbol)
	q.Set("outputsize", f.OutputSize)
	q.Set("apikey", f.APIKey)
	q.Set("datatype", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body for %s: %w", symbol, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d, body: %s", symbol, resp.StatusCode, excerpt(body))
	}

	return ClassifyResponse(body)
}

// ClassifyResponse dispatches over the known Alpha Vantage response shapes and
// returns the raw daily series on success.
func ClassifyResponse(body []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ParseError{Err: err, Excerpt: excerpt(body)}
	}
	if raw, ok := envelope[keyErrorMessage]; ok {
		return nil, &APIError{Message: rawString(raw)}
	}
	if raw, ok := envelope[keyNote]; ok {
		if note := rawString(raw); strings.Contains(note, rateLimitPhrase) {
			return nil, &RateLimitError{Note: note}
		}
	}
	if raw, ok := envelope[keyInformation]; ok {
		return nil, &InfoError{Message: rawString(raw)}
	}
	series, ok := envelope[keyDailySeries]
	if !ok {
		return nil, &MissingSeriesError{Key: keyDailySeries}
	}
	return series, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}

func excerpt(body []byte) string {
	if len(body) <= bodyExcerptLimit {
		return string(body)
	}
	// Back up to a rune boundary so the cut never splits a multibyte sequence.
	cut := bodyExcerptLimit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
