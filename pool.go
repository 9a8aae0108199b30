package bnccdoc

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps open tabs to limit browser memory.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// errPoolClosed is returned by acquire after close.
var errPoolClosed = errors.New("page pool closed")

// pagePool hands out up to size pages of one guarded browser.
// Pages are created lazily on first acquire to avoid opening tabs that a
// small batch never uses.
type pagePool struct {
	guard   *browserGuard
	size    int
	pages   []pageSession
	sem     chan pageSession
	mu      sync.Mutex
	created int
	closed  bool
}

// newPagePool creates a pool with capacity for n pages on guard.
func newPagePool(guard *browserGuard, n int) *pagePool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &pagePool{
		guard: guard,
		size:  n,
		pages: make([]pageSession, 0, n),
		sem:   make(chan pageSession, n),
	}
}

// acquire gets an idle page, opening one if capacity remains.
// Blocks until a page is released or ctx is done.
func (p *pagePool) acquire(ctx context.Context) (pageSession, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, errPoolClosed
	}

	select {
	case page, ok := <-p.sem:
		if !ok {
			return nil, errPoolClosed
		}
		return page, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Open the page outside the lock
		page, err := p.guard.NewPage(ctx)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.pages = append(p.pages, page)
		p.mu.Unlock()
		return page, nil
	}
	p.mu.Unlock()

	select {
	case page, ok := <-p.sem:
		if !ok {
			return nil, errPoolClosed
		}
		return page, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// release returns a page to the pool.
// The lock is held while sending so close cannot race the channel; the
// channel has room for every page so the send never blocks.
func (p *pagePool) release(page pageSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- page
}

// close closes every opened page. The browser itself stays with the guard.
func (p *pagePool) close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	pages := p.pages
	p.mu.Unlock()

	var errs []error
	for _, page := range pages {
		if err := page.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResolvePoolSize determines the number of concurrent pages.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// The result is always within [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return min(workers, MaxPoolSize)
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
