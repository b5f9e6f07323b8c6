package routing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"textbook-logistics/internal/domain"
	testlog "textbook-logistics/internal/testutil"
)

type fakeProvider struct {
	geocodeFn func(context.Context, string) (domain.Coordinates, error)
	routeFn   func(context.Context, domain.Coordinates, domain.Coordinates) (domain.Route, error)
}

func (f *fakeProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	return f.geocodeFn(ctx, address)
}

func (f *fakeProvider) Route(ctx context.Context, from, to domain.Coordinates) (domain.Route, error) {
	return f.routeFn(ctx, from, to)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

var errOverQuota = errors.New("maps: OVER_QUERY_LIMIT - You have exceeded your rate-limit")

func TestRetryingProvider_Geocode_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var calls int32
	next := &fakeProvider{
		geocodeFn: func(context.Context, string) (domain.Coordinates, error) {
			switch atomic.AddInt32(&calls, 1) {
			case 1, 2:
				return domain.Coordinates{}, errOverQuota
			default:
				return domain.Coordinates{Lat: 1, Lng: 2}, nil
			}
		},
	}
	ctr := &counterStub{}
	g := NewRetryingProvider(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})

	got, err := g.Geocode(context.Background(), "Kamakwa")
	require.NoError(t, err)
	require.Equal(t, domain.Coordinates{Lat: 1, Lng: 2}, got)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Equal(t, int64(2), ctr.Count())
	require.Len(t, rec.Entries(), 2)
	require.Equal(t, "routing provider retry", rec.Entries()[0].Msg)
}

func TestRetryingProvider_NoRetryOnNoResults(t *testing.T) {
	t.Parallel()

	var calls int32
	next := &fakeProvider{
		geocodeFn: func(context.Context, string) (domain.Coordinates, error) {
			atomic.AddInt32(&calls, 1)
			return domain.Coordinates{}, ErrNoResults
		},
	}
	ctr := &counterStub{}
	g := NewRetryingProvider(next, testlog.New().Logger(), ctr, RetryConfig{MaxAttempts: 5})

	_, err := g.Geocode(context.Background(), "nowhere")
	require.ErrorIs(t, err, ErrNoResults)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.Zero(t, ctr.Count())
}

func TestRetryingProvider_Route_StopsAtMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls int32
	next := &fakeProvider{
		routeFn: func(context.Context, domain.Coordinates, domain.Coordinates) (domain.Route, error) {
			atomic.AddInt32(&calls, 1)
			return domain.Route{}, context.DeadlineExceeded
		},
	}
	g := NewRetryingProvider(next, testlog.New().Logger(), nil, RetryConfig{MaxAttempts: 3})

	_, err := g.Route(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetryingProvider_StopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	next := &fakeProvider{
		geocodeFn: func(context.Context, string) (domain.Coordinates, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return domain.Coordinates{}, errOverQuota
		},
	}
	g := NewRetryingProvider(next, testlog.New().Logger(), nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})

	_, err := g.Geocode(ctx, "x")
	require.Error(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewRetryingProvider_NilNext(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewRetryingProvider(nil, testlog.New().Logger(), nil, RetryConfig{}))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	require.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	require.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 10))
}
