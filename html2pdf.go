package bnccdoc

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-bnccdoc/internal/dateutil"
	"github.com/alnah/go-bnccdoc/internal/process"
)

// browserLauncher starts one headless browser per request or batch.
type browserLauncher interface {
	Launch(ctx context.Context) (browserSession, error)
}

// browserSession is a running browser. Close must terminate the process.
type browserSession interface {
	NewPage(ctx context.Context) (pageSession, error)
	Close() error
}

// pageSession is one tab. A page may be reused for several documents.
type pageSession interface {
	Load(ctx context.Context, url string, timeout time.Duration) error
	PDF(ctx context.Context, opts *proto.PagePrintToPDF) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ browserLauncher = (*rodLauncher)(nil)
	_ browserSession  = (*rodSession)(nil)
	_ pageSession     = (*rodPage)(nil)
)

// Viewport used for layout before printing.
const (
	viewportWidth  = 1200
	viewportHeight = 1600
)

// rodLauncher launches Chrome through go-rod's launcher.
// Rod downloads Chromium on first run if no binary is found.
type rodLauncher struct {
	bin       string
	noSandbox bool
	log       *zap.Logger
}

func newRodLauncher(bin string, noSandbox bool, log *zap.Logger) *rodLauncher {
	return &rodLauncher{bin: bin, noSandbox: noSandbox, log: log}
}

// Launch starts the browser and connects to it.
func (r *rodLauncher) Launch(ctx context.Context) (browserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("font-render-hinting", "none")

	bin := r.bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox is required in CI and most containers.
	if r.noSandbox || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.log.Debug("browser launched", zap.Int("pid", l.PID()))
	return &rodSession{browser: browser, launcher: l}, nil
}

// rodSession owns the browser connection and its process.
type rodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// NewPage opens a blank tab sized to the layout viewport.
func (s *rodSession) NewPage(ctx context.Context) (pageSession, error) {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}
	return &rodPage{page: page}, nil
}

// Close closes the connection and kills the browser process tree.
func (s *rodSession) Close() error {
	err := s.browser.Close()
	killLauncher(s.launcher)
	return err
}

func killLauncher(l *launcher.Launcher) {
	pid := l.PID()
	l.Kill()
	process.KillProcessGroup(pid)
}

// rodPage wraps one rod tab.
type rodPage struct {
	page *rod.Page
}

// Load navigates to url and waits for the load event within timeout.
// Exceeding the timeout yields ErrRenderTimeout wrapping ErrPageLoad.
func (p *rodPage) Load(ctx context.Context, url string, timeout time.Duration) error {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %w: no time left", ErrRenderTimeout, ErrPageLoad)
	}

	page := p.page.Context(ctx).Timeout(timeout)
	err := page.Navigate(url)
	if err == nil {
		err = page.WaitLoad()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w: load exceeded %s", ErrRenderTimeout, ErrPageLoad, timeout)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return nil
}

// PDF prints the loaded document.
func (p *rodPage) PDF(ctx context.Context, opts *proto.PagePrintToPDF) ([]byte, error) {
	reader, err := p.page.Context(ctx).PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return buf, nil
}

// Close closes the tab.
func (p *rodPage) Close() error {
	return p.page.Close()
}

// browserGuard scopes one browser to a request or a batch. Release is
// idempotent and safe to defer alongside an explicit early release.
type browserGuard struct {
	session browserSession
	log     *zap.Logger
	started time.Time

	once sync.Once
	err  error
}

// acquireBrowser launches a browser and wraps it in a guard.
func acquireBrowser(ctx context.Context, l browserLauncher, log *zap.Logger) (*browserGuard, error) {
	session, err := l.Launch(ctx)
	if err != nil {
		return nil, err
	}
	return &browserGuard{session: session, log: log, started: time.Now()}, nil
}

// NewPage opens a page on the guarded browser.
func (g *browserGuard) NewPage(ctx context.Context) (pageSession, error) {
	return g.session.NewPage(ctx)
}

// Release closes the browser exactly once and returns the close error on
// every call.
func (g *browserGuard) Release() error {
	g.once.Do(func() {
		g.err = g.session.Close()
		fields := []zap.Field{zap.Duration("held", time.Since(g.started))}
		if g.err != nil {
			g.log.Warn("browser release failed", append(fields, zap.Error(g.err))...)
			return
		}
		g.log.Debug("browser released", fields...)
	})
	return g.err
}

// PDFProfile selects margins and running header/footer of a PDF.
type PDFProfile int

// Profiles for the three PDF outputs.
const (
	// ProfilePlan is a single-plan download: 2.5cm margins, brand header,
	// issue-date footer with page number.
	ProfilePlan PDFProfile = iota
	// ProfileYearly is the yearly aggregate: 2cm margins, curriculum header,
	// brand footer with page number.
	ProfileYearly
	// ProfileArchive is a batch archive entry: 2.5cm margins, no header or footer.
	ProfileArchive
)

// A4 in inches, as Chrome expects.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	cmPerInch      = 2.54
)

// String returns the profile name used in logs.
func (p PDFProfile) String() string {
	switch p {
	case ProfilePlan:
		return "plan"
	case ProfileYearly:
		return "yearly"
	case ProfileArchive:
		return "archive"
	}
	return fmt.Sprintf("profile(%d)", int(p))
}

// marginCM returns the uniform page margin of the profile.
func (p PDFProfile) marginCM() float64 {
	if p == ProfileYearly {
		return 2
	}
	return 2.5
}

// printOptions builds the Chrome print request for a profile.
func (p PDFProfile) printOptions(brand string, issued time.Time) *proto.PagePrintToPDF {
	margin := p.marginCM() / cmPerInch
	opts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(a4WidthInches),
		PaperHeight:     floatPtr(a4HeightInches),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}

	switch p {
	case ProfilePlan:
		opts.DisplayHeaderFooter = true
		opts.HeaderTemplate = buildHeaderTemplate(brand+" – PLANEJAMENTO PEDAGÓGICO ESTRUTURADO", "1cm")
		opts.FooterTemplate = buildFooterTemplate("Gerado em "+dateutil.FormatDateBR(issued), p.marginCM())
	case ProfileYearly:
		opts.DisplayHeaderFooter = true
		opts.HeaderTemplate = buildHeaderTemplate("CURRÍCULO ANUAL PROGRESSIVO – "+brand, "0.5cm")
		opts.FooterTemplate = buildFooterTemplate(brand, p.marginCM())
	}
	return opts
}

// headerFooterFont is applied inline: Chrome does not load page styles into
// header and footer templates.
const headerFooterFont = "Arial, sans-serif"

// buildHeaderTemplate renders a centered running header.
func buildHeaderTemplate(text, paddingTop string) string {
	return fmt.Sprintf(`<div style="font-size: 8px; width: 100%%; text-align: center; color: #ccc; font-family: %s; padding-top: %s;">%s</div>`,
		headerFooterFont, paddingTop, html.EscapeString(text))
}

// buildFooterTemplate renders text on the left and Chrome's pageNumber
// placeholder on the right.
func buildFooterTemplate(text string, paddingCM float64) string {
	return fmt.Sprintf(`<div style="font-size: 9px; width: 100%%; display: flex; justify-content: space-between; padding: 0 %gcm; color: #999; font-family: %s;"><span>%s</span><span class="pageNumber"></span></div>`,
		paddingCM, headerFooterFont, html.EscapeString(text))
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
