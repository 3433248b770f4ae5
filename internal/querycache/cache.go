// Package querycache is a process-wide cache of backend query results keyed by
// logical resource name ("bookings", "owner:12").
//
// Reads are stale-while-revalidate: a value older than StaleTime is served
// immediately while one background refetch runs. Invalidate is stronger: the
// next read waits for a refetch, so a view reloaded after a mutation shows
// the mutation. Fetches of one key are coalesced per invalidation generation.
// Invalidate notifies subscribers so mounted views can refetch.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleTime = 30 * time.Second
	DefaultGCTime    = 5 * time.Minute

	// refetchTimeout bounds background refetches, which outlive the request that triggered them.
	refetchTimeout = 30 * time.Second

	subscriberBuffer = 16
)

// Options configures a Cache.
type Options struct {
	// StaleTime is how long a fetched value counts as fresh. Zero means values
	// are stale as soon as they are stored and every read revalidates.
	StaleTime time.Duration
	// GCTime is how long an entry may go unread before Sweep evicts it.
	GCTime time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Fetcher loads the current value of one key from the backend.
type Fetcher[T any] func(ctx context.Context) (T, error)

// FetchError reports a failed fetch for a key that had no previous value.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Key, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Event is delivered to subscribers when a key they watch is invalidated.
type Event struct {
	Key string    `json:"key"`
	At  time.Time `json:"at"`
}

// Status describes one cache entry.
type Status struct {
	HasValue  bool
	Stale     bool
	Fetching  bool
	FetchedAt time.Time
	Err       error
}

type entry struct {
	value       any
	hasValue    bool
	fetchedAt   time.Time
	lastUsed    time.Time
	invalidated bool
	inflight    int
	err         error
	// generation is bumped by every invalidation; a fetch that started before
	// an invalidation stores its value but leaves the entry stale.
	generation uint64
	// valueGen is the generation value was fetched in.
	valueGen uint64
}

type subscriber struct {
	keys []string
	ch   chan Event
}

// Cache is safe for concurrent use.
type Cache struct {
	opts   Options
	logger *zap.Logger
	group  singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	subs    map[uint64]*subscriber
	nextSub uint64
}

// New creates a Cache. A zero GCTime falls back to DefaultGCTime.
func New(opts Options, logger *zap.Logger) *Cache {
	if opts.StaleTime < 0 {
		opts.StaleTime = 0
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultGCTime
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		opts:    opts,
		logger:  logger,
		entries: make(map[string]*entry),
		subs:    make(map[uint64]*subscriber),
	}
}

// Key joins resource name parts into a cache key, e.g. Key("owner", "12") == "owner:12".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Matches reports whether two keys overlap: equal, or one is a parent of the other.
func Matches(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+":") || strings.HasPrefix(b, a+":")
}

func (c *Cache) stale(e *entry, now time.Time) bool {
	return e.invalidated || now.Sub(e.fetchedAt) >= c.opts.StaleTime
}

// Fetch returns the value for key, fetching it with fn when needed.
//
// A fresh value is returned as is. A value that merely outlived StaleTime is
// returned immediately and a background refetch is started. A value that was
// invalidated is never returned: the call waits for a fetch that started
// after the invalidation. Without a usable value a failure is returned as
// *FetchError. Cancelling ctx stops the wait, not the fetch: its result still
// lands in the cache.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn Fetcher[T]) (T, error) {
	return fetch(ctx, c, key, fn, false)
}

// FetchFresh is Fetch without stale-while-revalidate: any stale value, time
// stale or invalidated, is refetched and the call waits for the result. Use
// it for reads that decide whether a mutation is sent.
func FetchFresh[T any](ctx context.Context, c *Cache, key string, fn Fetcher[T]) (T, error) {
	return fetch(ctx, c, key, fn, true)
}

func fetch[T any](ctx context.Context, c *Cache, key string, fn Fetcher[T], fresh bool) (T, error) {
	now := c.opts.Now()
	run := func(ctx context.Context) (any, error) { return fn(ctx) }

	c.mu.Lock()
	e := c.entryLocked(key)
	e.lastUsed = now
	gen := e.generation
	if e.hasValue {
		if v, isT := e.value.(T); isT {
			switch {
			case !c.stale(e, now):
				c.mu.Unlock()
				return v, nil
			case !e.invalidated && !fresh:
				c.mu.Unlock()
				c.revalidate(ctx, key, gen, run)
				return v, nil
			}
		}
	}
	c.mu.Unlock()

	return load[T](ctx, c, key, gen, run)
}

// flightKey scopes singleflight calls to one generation of key, so a read
// after an invalidation never joins a fetch that started before it.
func flightKey(key string, gen uint64) string {
	return fmt.Sprintf("%s@%d", key, gen)
}

func load[T any](ctx context.Context, c *Cache, key string, gen uint64, fn func(context.Context) (any, error)) (T, error) {
	var zero T

	ch := c.group.DoChan(flightKey(key, gen), c.runner(context.WithoutCancel(ctx), key, gen, fn))

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, &FetchError{Key: key, Err: res.Err}
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, &FetchError{Key: key, Err: fmt.Errorf("cached value has type %T", res.Val)}
		}
		return v, nil
	}
}

func (c *Cache) revalidate(ctx context.Context, key string, gen uint64, fn func(context.Context) (any, error)) {
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), refetchTimeout)
	ch := c.group.DoChan(flightKey(key, gen), c.runner(bg, key, gen, fn))
	go func() {
		defer cancel()
		if res := <-ch; res.Err != nil {
			c.logger.Warn("background refetch failed", zap.String("key", key), zap.Error(res.Err))
		}
	}()
}

// runner wraps a fetch of generation gen so that its outcome is recorded in
// the entry for key. A result older than the stored value is handed to its
// own callers but not stored.
func (c *Cache) runner(ctx context.Context, key string, gen uint64, fn func(context.Context) (any, error)) func() (any, error) {
	return func() (any, error) {
		c.mu.Lock()
		c.entryLocked(key).inflight++
		c.mu.Unlock()

		val, err := fn(ctx)

		now := c.opts.Now()
		c.mu.Lock()
		defer c.mu.Unlock()
		e := c.entryLocked(key)
		e.inflight--
		older := e.hasValue && gen < e.valueGen
		if err != nil {
			if !older {
				e.err = err
			}
			return nil, err
		}
		if older {
			return val, nil
		}
		e.value = val
		e.valueGen = gen
		e.hasValue = true
		e.err = nil
		e.fetchedAt = now
		e.lastUsed = now
		e.invalidated = e.generation != gen
		return val, nil
	}
}

func (c *Cache) entryLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// Invalidate marks every entry matching one of keys as stale. A key matches
// itself and every key below it: "owner" matches "owner:12". Subscribers
// watching an overlapping key receive one Event per invalidated key.
func (c *Cache) Invalidate(keys ...string) {
	now := c.opts.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		for _, key := range keys {
			if k == key || strings.HasPrefix(k, key+":") {
				e.invalidated = true
				e.generation++
				break
			}
		}
	}

	for _, key := range keys {
		ev := Event{Key: key, At: now}
		for _, sub := range c.subs {
			if !sub.wants(key) {
				continue
			}
			select {
			case sub.ch <- ev:
			default:
				c.logger.Debug("dropping invalidation event for slow subscriber", zap.String("key", key))
			}
		}
	}
	c.logger.Debug("invalidated", zap.Strings("keys", keys))
}

func (s *subscriber) wants(key string) bool {
	if len(s.keys) == 0 {
		return true
	}
	for _, k := range s.keys {
		if Matches(k, key) {
			return true
		}
	}
	return false
}

// Subscribe returns a channel of invalidation events for keys (all keys when
// none are given) and a cancel func that tears the subscription down and
// closes the channel. Events are dropped rather than blocking Invalidate.
func (c *Cache) Subscribe(keys ...string) (<-chan Event, func()) {
	sub := &subscriber{keys: keys, ch: make(chan Event, subscriberBuffer)}

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = sub
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// State reports the status of key.
func (c *Cache) State(key string) Status {
	now := c.opts.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Status{Stale: true}
	}
	return Status{
		HasValue:  e.hasValue,
		Stale:     !e.hasValue || c.stale(e, now),
		Fetching:  e.inflight > 0,
		FetchedAt: e.fetchedAt,
		Err:       e.err,
	}
}

// Sweep evicts entries that have not been read for GCTime and are not being fetched.
func (c *Cache) Sweep() int {
	now := c.opts.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for k, e := range c.entries {
		if e.inflight > 0 {
			continue
		}
		if now.Sub(e.lastUsed) >= c.opts.GCTime {
			delete(c.entries, k)
			evicted++
		}
	}
	return evicted
}

// Run sweeps periodically until ctx is done.
func (c *Cache) Run(ctx context.Context) {
	interval := c.opts.GCTime / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.logger.Debug("evicted idle cache entries", zap.Int("count", n))
			}
		}
	}
}
