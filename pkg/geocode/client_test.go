package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a scripted Provider for cascade tests.
type fakeProvider struct {
	name      string
	result    *Result
	err       error
	available bool
	calls     int
}

func (f *fakeProvider) Name() string    { return f.name }
func (f *fakeProvider) Available() bool { return f.available }

func (f *fakeProvider) Geocode(_ context.Context, _ string) (*Result, error) {
	f.calls++
	return f.result, f.err
}

func TestCacheKeyNormalizes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cacheKey("1 Chome  Chuo"), cacheKey("  1 chome chuo "))
	assert.NotEqual(t, cacheKey("1 Chome Chuo"), cacheKey("2 Chome Chuo"))
	assert.Len(t, cacheKey("x"), 64)
}

func TestCascadeFirstMatchWins(t *testing.T) {
	t.Parallel()

	first := &fakeProvider{name: "a", available: true, result: &Result{Matched: true, Latitude: 1, Longitude: 2, Source: "a"}}
	second := &fakeProvider{name: "b", available: true, result: &Result{Matched: true, Latitude: 9, Longitude: 9, Source: "b"}}

	c := NewCascadeClient([]Provider{first, second})
	result, err := c.Geocode(context.Background(), "somewhere")
	require.NoError(t, err)
	assert.Equal(t, "a", result.Source)
	assert.Zero(t, second.calls)
}

func TestCascadeSkipsErroringAndUnavailable(t *testing.T) {
	t.Parallel()

	down := &fakeProvider{name: "down", available: false}
	broken := &fakeProvider{name: "broken", available: true, err: errors.New("boom")}
	good := &fakeProvider{name: "good", available: true, result: &Result{Matched: true, Source: "good"}}

	c := NewCascadeClient([]Provider{down, broken, good})
	result, err := c.Geocode(context.Background(), "somewhere")
	require.NoError(t, err)
	assert.Equal(t, "good", result.Source)
	assert.Zero(t, down.calls)
	assert.Equal(t, 1, broken.calls)
}

func TestCascadeAllMiss(t *testing.T) {
	t.Parallel()

	miss := &fakeProvider{name: "m", available: true, result: &Result{Matched: false, Source: "m"}}
	c := NewCascadeClient([]Provider{miss})

	result, err := c.Geocode(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.False(t, result.Matched)
}

func TestCascadeCachesResults(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "p", available: true, result: &Result{Matched: true, Source: "p"}}
	c := NewCascadeClient([]Provider{p})

	_, err := c.Geocode(context.Background(), "Chiba Chuo")
	require.NoError(t, err)
	_, err = c.Geocode(context.Background(), "chiba  chuo")
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls, "normalized repeat query must hit the cache")
}

func TestCascadeCachesNegativeResults(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "p", available: true, result: &Result{Matched: false, Source: "p"}}
	c := NewCascadeClient([]Provider{p})

	_, _ = c.Geocode(context.Background(), "nowhere")
	_, _ = c.Geocode(context.Background(), "nowhere")
	assert.Equal(t, 1, p.calls)
}

func TestCascadeCacheDisabled(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "p", available: true, result: &Result{Matched: true, Source: "p"}}
	c := NewCascadeClient([]Provider{p}, WithCacheEnabled(false))

	_, _ = c.Geocode(context.Background(), "somewhere")
	_, _ = c.Geocode(context.Background(), "somewhere")
	assert.Equal(t, 2, p.calls)
}
