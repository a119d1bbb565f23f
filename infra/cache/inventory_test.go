package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type slowSource struct {
	level int
	err   error
	delay time.Duration
	hits  atomic.Int32
}

func (s *slowSource) Level(ctx context.Context) (int, error) {
	s.hits.Add(1)
	select {
	case <-time.After(s.delay):
		return s.level, s.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func TestInventoryCache_CollapsesConcurrentMisses(t *testing.T) {
	src := &slowSource{level: 5, delay: 100 * time.Millisecond}
	c := NewInventoryCache(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			level, err := c.Level(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if level != 5 {
				t.Errorf("expected level 5, got %d", level)
			}
		}()
	}
	wg.Wait()

	if hits := src.hits.Load(); hits != 1 {
		t.Errorf("expected 1 source hit, got %d", hits)
	}
}

func TestInventoryCache_ExpiresAfterTTL(t *testing.T) {
	src := &slowSource{level: 3}
	c := NewInventoryCache(src, time.Second)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	if _, err := c.Level(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src.level = 8
	level, _ := c.Level(context.Background())
	if level != 3 {
		t.Errorf("expected cached level 3, got %d", level)
	}

	now = now.Add(2 * time.Second)
	level, _ = c.Level(context.Background())
	if level != 8 {
		t.Errorf("expected refreshed level 8, got %d", level)
	}
	if hits := src.hits.Load(); hits != 2 {
		t.Errorf("expected 2 source hits, got %d", hits)
	}
}

func TestInventoryCache_Invalidate(t *testing.T) {
	src := &slowSource{level: 1}
	c := NewInventoryCache(src, time.Hour)

	c.Level(context.Background())
	c.Invalidate()
	c.Level(context.Background())

	if hits := src.hits.Load(); hits != 2 {
		t.Errorf("expected 2 source hits, got %d", hits)
	}
}

func TestInventoryCache_ErrorsAreNotCached(t *testing.T) {
	srcErr := errors.New("unavailable")
	src := &slowSource{err: srcErr}
	c := NewInventoryCache(src, time.Hour)

	if _, err := c.Level(context.Background()); !errors.Is(err, srcErr) {
		t.Fatalf("expected source error, got %v", err)
	}
	src.err = nil
	src.level = 4
	level, err := c.Level(context.Background())
	if err != nil || level != 4 {
		t.Errorf("expected level 4 after recovery, got %d, %v", level, err)
	}
}

type gatedSource struct {
	level   int
	started chan struct{}
	release chan struct{}
	hits    atomic.Int32
}

func (s *gatedSource) Level(ctx context.Context) (int, error) {
	if s.hits.Add(1) == 1 {
		close(s.started)
	}
	select {
	case <-s.release:
		return s.level, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func TestInventoryCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &gatedSource{level: 7, started: make(chan struct{}), release: make(chan struct{})}
	c := NewInventoryCache(src, time.Minute)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Level(ctxA)
		errA <- err
	}()
	<-src.started

	type result struct {
		level int
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		level, err := c.Level(context.Background())
		resB <- result{level, err}
	}()

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled caller to get context.Canceled, got %v", err)
	}

	close(src.release)
	got := <-resB
	if got.err != nil {
		t.Fatalf("unexpected error for second caller: %v", got.err)
	}
	if got.level != 7 {
		t.Errorf("expected level 7, got %d", got.level)
	}

	level, err := c.Level(context.Background())
	if err != nil || level != 7 {
		t.Errorf("expected cached level 7, got %d, %v", level, err)
	}
	if hits := src.hits.Load(); hits != 1 {
		t.Errorf("expected 1 source hit, got %d", hits)
	}
}
