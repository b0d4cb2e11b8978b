package geocode

import (
	"context"
	"fmt"
	"ga-route-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu sync.Mutex
	m  map[string]domain.Point
}

func (c *memCache) GetMany(_ context.Context, addresses []string) (map[string]domain.Point, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]domain.Point)
	for _, a := range addresses {
		if p, ok := c.m[a]; ok {
			out[a] = p
		}
	}
	return out, nil
}

func (c *memCache) PutMany(_ context.Context, results map[string]domain.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func newTestGeocoder(t *testing.T, handler http.HandlerFunc, cache Cache) *ORSGeocoder {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewORSGeocoder("test-key", cache, WithBaseURL(srv.URL), WithBackoff(time.Millisecond), WithCountry("RU"))
	require.NoError(t, err)
	return g
}

func TestORSGeocoderUsesCacheAndNormalizes(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "RU", r.URL.Query().Get("boundary.country"))
		assert.Equal(t, "Kremlin Astrakhan", r.URL.Query().Get("text"))

		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[48.0408,46.3497]}}]}`)
	}, &memCache{m: map[string]domain.Point{"Station": {Lat: 1, Lng: 2}}})

	got, err := g.Geocode(context.Background(), []string{"  Kremlin   Astrakhan", "Kremlin Astrakhan", "Station"})
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.Point{
		"Kremlin Astrakhan": {Lat: 46.3497, Lng: 48.0408},
		"Station":           {Lat: 1, Lng: 2},
	}, got)
	assert.Equal(t, int32(1), calls.Load())

	// Second lookup is served from the cache.
	_, err = g.Geocode(context.Background(), []string{"Kremlin Astrakhan"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestORSGeocoderRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[10,20]}}]}`)
	}, nil)

	got, err := g.Geocode(context.Background(), []string{"somewhere"})
	require.NoError(t, err)
	assert.Equal(t, domain.Point{Lat: 20, Lng: 10}, got["somewhere"])
	assert.Equal(t, int32(3), calls.Load())
}

func TestORSGeocoderDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	}, nil)

	_, err := g.Geocode(context.Background(), []string{"somewhere"})
	require.Error(t, err)

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestORSGeocoderNoResults(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[]}`)
	}, nil)

	_, err := g.Geocode(context.Background(), []string{"nowhere"})
	require.ErrorContains(t, err, "no geocode results")
}

func TestORSGeocoderRejectsBlankAddress(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	}, nil)

	_, err := g.Geocode(context.Background(), []string{"   "})
	require.Error(t, err)
}

func TestNewORSGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSGeocoder(" ", nil)
	require.Error(t, err)
}
