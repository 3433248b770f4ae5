package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(clk *clock) *Cache {
	return New(Options{StaleTime: time.Minute, GCTime: 5 * time.Minute, Now: clk.Now}, zap.NewNop())
}

func counter(calls *atomic.Int32, values ...string) Fetcher[string] {
	return func(ctx context.Context) (string, error) {
		n := calls.Add(1)
		idx := int(n) - 1
		if idx >= len(values) {
			idx = len(values) - 1
		}
		return values[idx], nil
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "owner:12", Key("owner", "12"))
	assert.Equal(t, "bookings", Key("bookings"))
}

func TestFetch_CachesFreshValue(t *testing.T) {
	c := newTestCache(newClock())
	var calls atomic.Int32
	fetch := counter(&calls, "v1", "v2")

	first, err := Fetch(context.Background(), c, "bookings", fetch)
	require.NoError(t, err)
	second, err := Fetch(context.Background(), c, "bookings", fetch)
	require.NoError(t, err)

	assert.Equal(t, "v1", first)
	assert.Equal(t, "v1", second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_DeduplicatesConcurrentLoads(t *testing.T) {
	c := newTestCache(newClock())
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const n = 10
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, "owners", fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestFetch_StaleWhileRevalidate(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	var calls atomic.Int32
	fetch := counter(&calls, "v1", "v2")

	v, err := Fetch(context.Background(), c, "vehicles", fetch)
	require.NoError(t, err)
	require.Equal(t, "v1", v)

	clk.Advance(2 * time.Minute)

	v, err = Fetch(context.Background(), c, "vehicles", fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", v, "stale value is served while the refetch runs")

	require.Eventually(t, func() bool {
		st := c.State("vehicles")
		return calls.Load() == 2 && !st.Fetching
	}, time.Second, time.Millisecond)

	v, err = Fetch(context.Background(), c, "vehicles", fetch)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestFetch_ErrorWithoutValueIsDistinguishable(t *testing.T) {
	c := newTestCache(newClock())
	boom := errors.New("backend down")

	_, err := Fetch(context.Background(), c, "complaints", func(ctx context.Context) ([]string, error) {
		return nil, boom
	})

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "complaints", fetchErr.Key)
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.State("complaints").HasValue)
}

func TestFetch_FailedRevalidateKeepsValue(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	var calls atomic.Int32
	boom := errors.New("backend down")
	fetch := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "v1", nil
		}
		return "", boom
	}

	_, err := Fetch(context.Background(), c, "users", fetch)
	require.NoError(t, err)
	clk.Advance(2 * time.Minute)

	v, err := Fetch(context.Background(), c, "users", fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.Eventually(t, func() bool { return c.State("users").Err != nil }, time.Second, time.Millisecond)
	st := c.State("users")
	assert.True(t, st.HasValue)
	assert.ErrorIs(t, st.Err, boom)
}

func TestFetch_CancelledCallerDoesNotCancelFetch(t *testing.T) {
	c := newTestCache(newClock())
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := Fetch(ctx, c, "dashboard", fetch)
		errCh <- err
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return c.State("dashboard").HasValue }, time.Second, time.Millisecond)

	v, err := Fetch(context.Background(), c, "dashboard", func(ctx context.Context) (string, error) {
		return "unused", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "late", v)
}

func TestInvalidate_MarksKeyAndChildrenStale(t *testing.T) {
	c := newTestCache(newClock())
	ctx := context.Background()
	for _, key := range []string{"owners", "owner:1", "owner:2", "vehicles"} {
		_, err := Fetch(ctx, c, key, func(ctx context.Context) (string, error) { return key, nil })
		require.NoError(t, err)
	}

	c.Invalidate("owner")

	assert.True(t, c.State("owner:1").Stale)
	assert.True(t, c.State("owner:2").Stale)
	assert.False(t, c.State("owners").Stale, "a sibling collection is not a child")
	assert.False(t, c.State("vehicles").Stale)
}

func TestInvalidate_NextReadRefetches(t *testing.T) {
	c := newTestCache(newClock())
	var calls atomic.Int32
	fetch := counter(&calls, "approved-before", "approved-after")

	_, err := Fetch(context.Background(), c, "owner:7", fetch)
	require.NoError(t, err)

	c.Invalidate("owner:7", "owners")

	v, err := Fetch(context.Background(), c, "owner:7", fetch)
	require.NoError(t, err)
	assert.Equal(t, "approved-after", v, "the first read after an invalidation waits for the refetch")
	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, c.State("owner:7").Stale)
}

func TestInvalidate_ReadDoesNotJoinEarlierFetch(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	ctx := context.Background()

	_, err := Fetch(ctx, c, "owner:7", func(ctx context.Context) (string, error) { return "pending", nil })
	require.NoError(t, err)
	clk.Advance(2 * time.Minute)

	release := make(chan struct{})
	started := make(chan struct{})
	v, err := Fetch(ctx, c, "owner:7", func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "pending", nil
	})
	require.NoError(t, err)
	require.Equal(t, "pending", v)
	<-started

	c.Invalidate("owner:7")

	v, err = Fetch(ctx, c, "owner:7", func(ctx context.Context) (string, error) { return "verified", nil })
	require.NoError(t, err)
	assert.Equal(t, "verified", v)

	close(release)
	require.Eventually(t, func() bool { return !c.State("owner:7").Fetching }, time.Second, time.Millisecond)

	v, err = Fetch(ctx, c, "owner:7", func(ctx context.Context) (string, error) { return "unused", nil })
	require.NoError(t, err)
	assert.Equal(t, "verified", v, "a fetch from before the invalidation must not overwrite a newer value")
}

func TestInvalidate_FailedRefetchIsReturned(t *testing.T) {
	c := newTestCache(newClock())
	ctx := context.Background()
	boom := errors.New("backend down")

	_, err := Fetch(ctx, c, "vehicle:5", func(ctx context.Context) (string, error) { return "pending", nil })
	require.NoError(t, err)
	c.Invalidate("vehicle")

	_, err = Fetch(ctx, c, "vehicle:5", func(ctx context.Context) (string, error) { return "", boom })
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, boom)

	st := c.State("vehicle:5")
	assert.True(t, st.HasValue)
	assert.True(t, st.Stale)
}

func TestFetchFresh(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	ctx := context.Background()
	var calls atomic.Int32
	fetch := counter(&calls, "VERIFIED", "DISABLED")

	v, err := FetchFresh(ctx, c, "owner:7", fetch)
	require.NoError(t, err)
	require.Equal(t, "VERIFIED", v)

	v, err = FetchFresh(ctx, c, "owner:7", fetch)
	require.NoError(t, err)
	assert.Equal(t, "VERIFIED", v, "a fresh value is served from the cache")
	assert.Equal(t, int32(1), calls.Load())

	clk.Advance(2 * time.Minute)

	v, err = FetchFresh(ctx, c, "owner:7", fetch)
	require.NoError(t, err)
	assert.Equal(t, "DISABLED", v, "a time-stale value is refetched before returning")
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_DuringFetchLeavesEntryStale(t *testing.T) {
	c := newTestCache(newClock())
	release := make(chan struct{})
	started := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Fetch(context.Background(), c, "bookings", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "old snapshot", nil
		})
		assert.NoError(t, err)
	}()

	<-started
	c.Invalidate("bookings")
	close(release)
	<-done

	st := c.State("bookings")
	assert.True(t, st.HasValue)
	assert.True(t, st.Stale, "a value fetched before the invalidation must not count as fresh")
}

func TestSubscribe_ReceivesOverlappingInvalidations(t *testing.T) {
	c := newTestCache(newClock())

	detail, cancelDetail := c.Subscribe("owner:3")
	defer cancelDetail()
	all, cancelAll := c.Subscribe()
	defer cancelAll()

	c.Invalidate("owner")
	c.Invalidate("vehicles")

	ev := <-detail
	assert.Equal(t, "owner", ev.Key)
	select {
	case ev := <-detail:
		t.Fatalf("unexpected event %v", ev)
	default:
	}

	assert.Equal(t, "owner", (<-all).Key)
	assert.Equal(t, "vehicles", (<-all).Key)
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	c := newTestCache(newClock())
	ch, cancel := c.Subscribe("users")

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, func() { c.Invalidate("users") })
}

func TestSubscribe_SlowSubscriberDoesNotBlock(t *testing.T) {
	c := newTestCache(newClock())
	_, cancel := c.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			c.Invalidate("bookings")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Invalidate blocked on a full subscriber")
	}
}

func TestSweep_EvictsIdleEntries(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	ctx := context.Background()

	_, err := Fetch(ctx, c, "idle", func(ctx context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	clk.Advance(4 * time.Minute)
	_, err = Fetch(ctx, c, "busy", func(ctx context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	clk.Advance(2 * time.Minute)

	assert.Equal(t, 1, c.Sweep())
	assert.False(t, c.State("idle").HasValue)
	assert.True(t, c.State("busy").HasValue)
}

func TestSubscribe_RefetchOnEventSeesNewValue(t *testing.T) {
	c := newTestCache(newClock())
	ctx := context.Background()
	var calls atomic.Int32
	fetch := counter(&calls, "WAITING_VERIFICATION", "VERIFIED")

	_, err := Fetch(ctx, c, "owner:7", fetch)
	require.NoError(t, err)

	events, cancel := c.Subscribe("owner:7")
	defer cancel()
	c.Invalidate("owner:7", "owners")

	ev := <-events
	v, err := Fetch(ctx, c, ev.Key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "VERIFIED", v)
}
