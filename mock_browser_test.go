package bnccdoc

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// Compile-time interface checks.
var (
	_ browserLauncher = (*mockLauncher)(nil)
	_ browserSession  = (*mockSession)(nil)
	_ pageSession     = (*mockPage)(nil)
)

// mockLauncher records launches and hands out one mockSession per call.
type mockLauncher struct {
	LaunchErr error
	Page      mockPageBehavior

	mu       sync.Mutex
	sessions []*mockSession
}

// mockPageBehavior configures every page a session opens.
type mockPageBehavior struct {
	NewPageErr error
	LoadErr    error
	PDFErr     error
	// BlockLoad makes Load wait for its timeout or the context, like a
	// page whose load event never fires.
	BlockLoad bool
	// FailOnLoad fails the Nth Load call (1-based) across the session.
	FailOnLoad int
	// LoadDelay slows every Load down.
	LoadDelay time.Duration
}

func (l *mockLauncher) Launch(ctx context.Context) (browserSession, error) {
	if l.LaunchErr != nil {
		return nil, l.LaunchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &mockSession{behavior: l.Page}
	l.mu.Lock()
	l.sessions = append(l.sessions, s)
	l.mu.Unlock()
	return s, nil
}

func (l *mockLauncher) Sessions() []*mockSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*mockSession(nil), l.sessions...)
}

// mockSession counts pages and close calls.
type mockSession struct {
	behavior mockPageBehavior

	mu     sync.Mutex
	pages  []*mockPage
	loads  int
	closes atomic.Int32
	active atomic.Int32
	peak   atomic.Int32
}

func (s *mockSession) NewPage(ctx context.Context) (pageSession, error) {
	if s.behavior.NewPageErr != nil {
		return nil, s.behavior.NewPageErr
	}
	p := &mockPage{session: s}
	s.mu.Lock()
	s.pages = append(s.pages, p)
	s.mu.Unlock()
	return p, nil
}

func (s *mockSession) Close() error {
	s.closes.Add(1)
	return nil
}

func (s *mockSession) Closes() int { return int(s.closes.Load()) }

func (s *mockSession) Pages() []*mockPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mockPage(nil), s.pages...)
}

// nextLoad returns the 1-based index of a Load call within the session.
func (s *mockSession) nextLoad() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.loads
}

// mockPage prints the loaded HTML back as the "PDF" so tests can tell
// documents apart.
type mockPage struct {
	session *mockSession

	mu        sync.Mutex
	html      string
	urls      []string
	printOpts []*proto.PagePrintToPDF
	closed    int
}

func (p *mockPage) Load(ctx context.Context, url string, timeout time.Duration) error {
	b := p.session.behavior
	n := p.session.nextLoad()

	active := p.session.active.Add(1)
	defer p.session.active.Add(-1)
	for {
		peak := p.session.peak.Load()
		if active <= peak || p.session.peak.CompareAndSwap(peak, active) {
			break
		}
	}

	if b.BlockLoad {
		select {
		case <-time.After(timeout):
			return errors.Join(ErrRenderTimeout, ErrPageLoad)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.LoadDelay > 0 {
		select {
		case <-time.After(b.LoadDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.LoadErr != nil {
		return b.LoadErr
	}
	if b.FailOnLoad > 0 && n == b.FailOnLoad {
		return ErrPageLoad
	}

	data, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.html = string(data)
	p.urls = append(p.urls, url)
	p.mu.Unlock()
	return nil
}

func (p *mockPage) PDF(ctx context.Context, opts *proto.PagePrintToPDF) ([]byte, error) {
	if p.session.behavior.PDFErr != nil {
		return nil, p.session.behavior.PDFErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printOpts = append(p.printOpts, opts)
	return []byte("%PDF-mock\n" + p.html), nil
}

func (p *mockPage) Close() error {
	p.mu.Lock()
	p.closed++
	p.mu.Unlock()
	return nil
}

func (p *mockPage) Closed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *mockPage) LastPrintOptions() *proto.PagePrintToPDF {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.printOpts) == 0 {
		return nil
	}
	return p.printOpts[len(p.printOpts)-1]
}
