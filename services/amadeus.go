package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	// priceCurrency is the fixed reference currency for all fare searches
	// and breakdowns. No conversion is performed.
	priceCurrency = "USD"

	// tokenSafetyMargin is how long before expiry a cached token stops
	// being served and a fresh fetch is triggered instead.
	tokenSafetyMargin = 60 * time.Second

	locationCacheTTL = 30 * time.Minute
)

var iataCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// AmadeusConfigFromEnv reads the provider configuration. Missing credentials
// are not an error: the client stays in a silently-degraded mode where every
// lookup reports "unavailable".
func AmadeusConfigFromEnv() AmadeusConfig {
	baseURL := os.Getenv("AMADEUS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
	}
	return AmadeusConfig{
		BaseURL:      baseURL,
		ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
	}
}

// AmadeusClient talks to the Amadeus self-service APIs. It owns the single
// process-wide access token and a small TTL cache of resolved location codes.
type AmadeusClient struct {
	cfg        AmadeusConfig
	httpClient *http.Client
	log        *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	codes *gocache.Cache

	now func() time.Time
}

func NewAmadeusClient(cfg AmadeusConfig, log *zap.Logger) *AmadeusClient {
	return &AmadeusClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log:   log,
		codes: gocache.New(locationCacheTTL, 10*time.Minute),
		now:   time.Now,
	}
}

func (c *AmadeusClient) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// AccessToken returns a provider token, refreshing when the cached one is
// missing or inside the safety margin of its expiry. A failed refresh
// reports false and leaves the previous cache entry untouched.
//
// Refreshes are idempotent, so two callers racing past the expiry check may
// both refresh; the last write wins and the lock is never held across the
// network call.
func (c *AmadeusClient) AccessToken(ctx context.Context) (string, bool) {
	if !c.Configured() {
		return "", false
	}

	c.mu.Lock()
	token, expiry := c.accessToken, c.tokenExpiry
	c.mu.Unlock()

	if token != "" && expiry.Sub(c.now()) > tokenSafetyMargin {
		return token, true
	}
	return c.refreshToken(ctx)
}

func (c *AmadeusClient) refreshToken(ctx context.Context) (string, bool) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	fetchedAt := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("amadeus token request failed", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("amadeus token request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", false
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn("amadeus token response malformed", zap.Error(err))
		return "", false
	}
	if payload.AccessToken == "" || payload.ExpiresIn <= 0 {
		c.log.Warn("amadeus token response incomplete")
		return "", false
	}

	c.mu.Lock()
	c.accessToken = payload.AccessToken
	c.tokenExpiry = fetchedAt.Add(time.Duration(payload.ExpiresIn) * time.Second)
	c.mu.Unlock()

	return payload.AccessToken, true
}

// ResolveLocation maps a free-text location to a three-letter IATA code.
// A literal 3-letter input is trusted and returned upper-cased without any
// network call; anything else goes through the provider's location search,
// preferring an airport code over a city code within each result.
func (c *AmadeusClient) ResolveLocation(ctx context.Context, location string) (string, bool) {
	keyword := strings.TrimSpace(location)
	if keyword == "" {
		return "", false
	}
	if iataCodePattern.MatchString(keyword) {
		return strings.ToUpper(keyword), true
	}

	cacheKey := strings.ToLower(keyword)
	if cached, ok := c.codes.Get(cacheKey); ok {
		return cached.(string), true
	}

	token, ok := c.AccessToken(ctx)
	if !ok {
		return "", false
	}

	params := url.Values{}
	params.Set("subType", "AIRPORT,CITY")
	params.Set("keyword", keyword)
	params.Set("page[limit]", "5")
	params.Set("sort", "analytics.travelers.score")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/v1/reference-data/locations?"+params.Encode(), nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("amadeus location search failed",
			zap.String("keyword", keyword), zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("amadeus location search rejected",
			zap.String("keyword", keyword),
			zap.Int("status", resp.StatusCode))
		return "", false
	}

	var payload struct {
		Data []struct {
			IataCode string `json:"iataCode"`
			Address  struct {
				CityCode string `json:"cityCode"`
			} `json:"address"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn("amadeus location response malformed", zap.Error(err))
		return "", false
	}

	// Results come back in provider relevance order; take the first one
	// that carries a usable code.
	for _, item := range payload.Data {
		code := item.IataCode
		if code == "" {
			code = item.Address.CityCode
		}
		if code != "" {
			code = strings.ToUpper(code)
			c.codes.SetDefault(cacheKey, code)
			return code, true
		}
	}
	return "", false
}

// CheapestFare searches flight offers between two resolved codes and returns
// the minimum valid total price. A missing return date makes the search
// one-way. Unparseable or non-finite offer totals are skipped individually.
func (c *AmadeusClient) CheapestFare(ctx context.Context, originCode, destinationCode, departureDate, returnDate string) (float64, bool) {
	token, ok := c.AccessToken(ctx)
	if !ok {
		return 0, false
	}

	search := map[string]interface{}{
		"currencyCode":            priceCurrency,
		"originLocationCode":      originCode,
		"destinationLocationCode": destinationCode,
		"departureDate":           departureDate,
		"adults":                  1,
		"max":                     20,
	}
	if returnDate != "" {
		search["returnDate"] = returnDate
	}

	body, err := json.Marshal(search)
	if err != nil {
		return 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v2/shopping/flight-offers", bytes.NewReader(body))
	if err != nil {
		return 0, false
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("amadeus fare search failed",
			zap.String("origin", originCode),
			zap.String("destination", destinationCode),
			zap.Error(err))
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("amadeus fare search rejected",
			zap.String("origin", originCode),
			zap.String("destination", destinationCode),
			zap.Int("status", resp.StatusCode))
		return 0, false
	}

	var payload struct {
		Data []struct {
			Price struct {
				Total string `json:"total"`
			} `json:"price"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn("amadeus fare response malformed", zap.Error(err))
		return 0, false
	}

	min := math.Inf(1)
	for _, offer := range payload.Data {
		value, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		if value < min {
			min = value
		}
	}
	if math.IsInf(min, 1) {
		return 0, false
	}
	return min, true
}
