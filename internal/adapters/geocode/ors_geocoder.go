package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/platform/obs"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cache persists geocoding results between requests.
type Cache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Point, error)
	PutMany(ctx context.Context, results map[string]domain.Point) error
}

// ORSGeocoder implements ports.Geocoder using OpenRouteService /geocode/search.
//
// Addresses are normalized, looked up in the cache, and only misses are sent
// to ORS. The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
	backoff time.Duration
	cache   Cache
}

type Option func(*ORSGeocoder)

// WithBaseURL points the geocoder at another ORS deployment.
func WithBaseURL(u string) Option {
	return func(g *ORSGeocoder) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithCountry restricts results to an ISO country code; empty searches worldwide.
func WithCountry(code string) Option {
	return func(g *ORSGeocoder) { g.country = code }
}

func WithBackoff(d time.Duration) Option {
	return func(g *ORSGeocoder) { g.backoff = d }
}

func NewORSGeocoder(apiKey string, cache Cache, opts ...Option) (*ORSGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		backoff: 200 * time.Millisecond,
		cache:   cache,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Normalize collapses whitespace so equal addresses share one cache key.
func (g *ORSGeocoder) Normalize(address string) string {
	return strings.Join(strings.Fields(address), " ")
}

type searchResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves addresses, keyed by their normalized form.
func (g *ORSGeocoder) Geocode(ctx context.Context, addresses []string) (_ map[string]domain.Point, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	keys := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		k := g.Normalize(a)
		if k == "" {
			return nil, errors.New("geocode: address must be non-empty")
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	out := make(map[string]domain.Point, len(keys))
	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("geocode: read cache: %w", err)
		}
		for k, p := range hits {
			out[k] = p
		}
	}

	fresh := make(map[string]domain.Point)
	for _, k := range keys {
		if _, ok := out[k]; ok {
			continue
		}

		p, err := g.search(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", k, err)
		}
		fresh[k] = p
		out[k] = p
	}

	if g.cache != nil && len(fresh) > 0 {
		if err := g.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return out, nil
}

func (g *ORSGeocoder) search(ctx context.Context, address string) (domain.Point, error) {
	q := url.Values{}
	q.Set("text", address)
	q.Set("size", "1")
	if g.country != "" {
		q.Set("boundary.country", g.country)
	}

	resp, err := g.get(ctx, "/geocode/search", q)
	if err != nil {
		return domain.Point{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Point{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Point{}, errors.New("no geocode results")
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Point{}, errors.New("invalid coordinate format")
	}

	// GeoJSON order is [lng, lat].
	return domain.Point{Lat: coords[1], Lng: coords[0]}, nil
}
