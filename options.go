package bnccdoc

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-bnccdoc/internal/assets"
	"github.com/alnah/go-bnccdoc/internal/pipeline"
)

// Defaults shared by the composer and the render engine.
const (
	DefaultDomain        = "bncc-ia.app"
	DefaultBrand         = "BNCC IA"
	DefaultLoadTimeout   = 60 * time.Second
	DefaultRenderTimeout = 2 * time.Minute
)

// Option configures a Composer, an Engine or a BatchExporter. Each
// constructor reads only the fields it needs.
type Option func(*options)

type options struct {
	logger        *zap.Logger
	now           func() time.Time
	domain        string
	brand         string
	converter     pipeline.HTMLConverter
	qr            QREncoder
	qrSet         bool
	assetLoader   assets.AssetLoader
	launcher      browserLauncher
	browserBin    string
	noSandbox     bool
	loadTimeout   time.Duration
	renderTimeout time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:        zap.NewNop(),
		now:           time.Now,
		domain:        DefaultDomain,
		brand:         DefaultBrand,
		loadTimeout:   DefaultLoadTimeout,
		renderTimeout: DefaultRenderTimeout,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the structured logger. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the time source for issue dates and PDF footers.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDomain sets the host printed in verification URLs.
func WithDomain(domain string) Option {
	return func(o *options) {
		if domain != "" {
			o.domain = domain
		}
	}
}

// WithBrand sets the product name printed on headers, footers and closing pages.
func WithBrand(brand string) Option {
	return func(o *options) {
		if brand != "" {
			o.brand = brand
		}
	}
}

// WithConverter replaces the markdown converter.
func WithConverter(c pipeline.HTMLConverter) Option {
	return func(o *options) { o.converter = c }
}

// WithQREncoder replaces the QR encoder. A nil encoder disables QR codes.
func WithQREncoder(q QREncoder) Option {
	return func(o *options) {
		o.qr = q
		o.qrSet = true
	}
}

// WithAssetLoader sets the source of the stylesheet and document templates.
func WithAssetLoader(l assets.AssetLoader) Option {
	return func(o *options) { o.assetLoader = l }
}

// WithBrowser selects the Chrome binary and sandbox mode for rod.
// An empty bin keeps rod's lookup (ROD_BROWSER_BIN or a downloaded Chromium).
func WithBrowser(bin string, noSandbox bool) Option {
	return func(o *options) {
		o.browserBin = bin
		o.noSandbox = noSandbox
	}
}

// WithLoadTimeout bounds the page load of every rendered document.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.loadTimeout = d
		}
	}
}

// WithRenderTimeout bounds one whole single-document render.
func WithRenderTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.renderTimeout = d
		}
	}
}

// withLauncher injects a browser launcher. Tests use it to run without Chrome.
func withLauncher(l browserLauncher) Option {
	return func(o *options) { o.launcher = l }
}
