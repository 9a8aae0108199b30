package bnccdoc

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-bnccdoc/internal/assets"
	"github.com/alnah/go-bnccdoc/internal/dateutil"
	"github.com/alnah/go-bnccdoc/internal/pipeline"
)

// Cover placeholders for absent plan and user fields.
const (
	notInformed          = "Não informado"
	notInformedFeminine  = "Não informada"
	schoolYearPhraseNone = "ano escolar informado"
)

// PlanInput is everything a single-plan document is composed from.
// Settings and User may be nil.
type PlanInput struct {
	Plan     *Plan
	Settings *Settings
	User     *User
}

// YearlyInput is everything a yearly aggregate is composed from. Plans are
// rendered in the given order. Settings and User may be nil.
type YearlyInput struct {
	Year     string
	Plans    []*Plan
	Settings *Settings
	User     *User
}

// Composer turns plans into self-contained A4 HTML documents.
// It is safe for concurrent use and never mutates its inputs.
type Composer struct {
	converter pipeline.HTMLConverter
	qr        QREncoder
	plan      *template.Template
	yearly    *template.Template
	css       template.CSS
	domain    string
	brand     string
	now       func() time.Time
	log       *zap.Logger
}

// NewComposer loads the stylesheet and templates and returns a ready
// composer. Without WithAssetLoader the embedded assets are used.
func NewComposer(opts ...Option) (*Composer, error) {
	o := applyOptions(opts)

	loader := o.assetLoader
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	set, err := assets.LoadDocumentSet(loader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	planTmpl, err := template.New(assets.PlanTemplate).Parse(set.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: plan: %v", ErrTemplate, err)
	}
	yearlyTmpl, err := template.New(assets.YearlyTemplate).Parse(set.Yearly)
	if err != nil {
		return nil, fmt.Errorf("%w: yearly: %v", ErrTemplate, err)
	}

	c := &Composer{
		converter: o.converter,
		qr:        o.qr,
		plan:      planTmpl,
		yearly:    yearlyTmpl,
		css:       template.CSS(pipeline.SanitizeCSS(set.Style)), // #nosec G203 -- stylesheet comes from operator-controlled assets
		domain:    o.domain,
		brand:     o.brand,
		now:       o.now,
		log:       o.logger,
	}
	if c.converter == nil {
		c.converter = pipeline.NewGoldmarkConverter()
	}
	if !o.qrSet {
		c.qr = NewQREncoder()
	}
	return c, nil
}

// institutionView is the branding block of the cover.
type institutionView struct {
	Secretariat      string
	Municipality     string
	State            string
	MunicipalityLogo template.URL
	SecretariatLogo  template.URL
}

// sectionView is one rendered content page. Raw sections carry the original
// markdown as escaped, pre-wrapped text.
type sectionView struct {
	Title string
	Kind  string
	Body  template.HTML
	Raw   bool
	Text  string
}

// documentView is the data both templates execute against.
type documentView struct {
	// Single-plan fields.
	SkillCode        string
	Axis             string
	SchoolYear       string
	SchoolYearPhrase string

	// Yearly fields.
	Year      string
	PlanCount int

	CSS            template.CSS
	Institution    institutionView
	Teacher        string
	School         string
	IssueDate      string
	IssuedAt       string
	TOC            []TOCEntry
	Sections       []sectionView
	Brand          string
	SignatureImage template.URL
	Signatory      string
	Code           string
	VerifyURL      string
	QR             template.URL
}

// ComposePlan builds the document of one plan: cover, title page, table of
// contents, the gated theory and lesson sections, references, and the
// closing page with validation code and QR code.
func (c *Composer) ComposePlan(ctx context.Context, in PlanInput) (string, error) {
	if in.Plan == nil {
		return "", ErrNilPlan
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	settings := c.resolveSettings(in.Settings)
	exportCfg, err := ParseExportConfig(settings.ExportConfig)
	if err != nil {
		c.log.Warn("export config unreadable, using defaults",
			zap.Int64("plan_id", in.Plan.ID), zap.Error(err))
	}

	sections := planSections(in.Plan, exportCfg)
	code := PlanValidationCode(in.Plan)

	view := c.baseView(settings, in.User, code)
	view.SkillCode = in.Plan.SkillCode
	view.Axis = orDefault(in.Plan.Axis, notInformed)
	view.SchoolYear = orDefault(in.Plan.SchoolYear, notInformed)
	view.SchoolYearPhrase = orDefault(in.Plan.SchoolYear, schoolYearPhraseNone)
	view.TOC = buildTOC(sections)

	view.Sections, err = c.renderSections(ctx, sections)
	if err != nil {
		return "", err
	}

	return c.execute(c.plan, view)
}

// ComposeYearly builds the aggregate of every plan of one school year for
// one teacher. Export flags do not apply; every populated stage is included.
func (c *Composer) ComposeYearly(ctx context.Context, in YearlyInput) (string, error) {
	if strings.TrimSpace(in.Year) == "" {
		return "", ErrEmptyYear
	}
	plans := nonNilPlans(in.Plans)
	if len(plans) == 0 {
		return "", ErrEmptyPlanSet
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var userID int64
	if in.User != nil {
		userID = in.User.ID
	}
	settings := c.resolveSettings(in.Settings)
	sections := yearlySections(plans)
	code := YearlyValidationCode(in.Year, userID)

	view := c.baseView(settings, in.User, code)
	view.Year = in.Year
	view.PlanCount = len(plans)
	view.TOC = buildTOC(sections)

	var err error
	view.Sections, err = c.renderSections(ctx, sections)
	if err != nil {
		return "", err
	}

	return c.execute(c.yearly, view)
}

func (c *Composer) resolveSettings(s *Settings) *Settings {
	if s == nil {
		return DefaultSettings()
	}
	return s
}

// baseView fills the fields shared by both document kinds.
func (c *Composer) baseView(s *Settings, u *User, code string) documentView {
	now := c.now()
	verifyURL := VerificationURL(c.domain, code)

	teacher, school := DefaultTeacherName, notInformedFeminine
	if u != nil {
		teacher = orDefault(u.Name, DefaultTeacherName)
		school = orDefault(u.School, notInformedFeminine)
	}

	return documentView{
		CSS: c.css,
		Institution: institutionView{
			Secretariat:      orDefault(s.SecretariatName, DefaultSecretariatName),
			Municipality:     orDefault(s.MunicipalityName, DefaultMunicipalityName),
			State:            orDefault(s.StateName, DefaultStateName),
			MunicipalityLogo: imageURL(s.MunicipalityLogo),
			SecretariatLogo:  imageURL(s.SecretariatLogo),
		},
		Teacher:        teacher,
		School:         school,
		IssueDate:      dateutil.FormatDateBR(now),
		IssuedAt:       dateutil.FormatDateTimeBR(now),
		Brand:          c.brand,
		SignatureImage: imageURL(s.SignatureImage),
		Signatory:      strings.TrimSpace(s.SignatoryName),
		Code:           code,
		VerifyURL:      verifyURL,
		QR:             imageURL(encodeQRSoftly(c.qr, verifyURL, c.log)),
	}
}

// renderSections converts every section, degrading a failed section to its
// raw text. Only cancellation aborts composition.
func (c *Composer) renderSections(ctx context.Context, sections []Section) ([]sectionView, error) {
	views := make([]sectionView, len(sections))
	for i, s := range sections {
		views[i] = sectionView{Title: s.Title, Kind: string(s.Kind)}

		body, err := c.renderMarkdown(ctx, s.Content)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.log.Warn("section markdown failed, rendering raw text",
				zap.String("section", s.Title), zap.Error(err))
			views[i].Raw = true
			views[i].Text = s.Content
			continue
		}
		views[i].Body = template.HTML(body) // #nosec G203 -- goldmark output with raw HTML disabled
	}
	return views, nil
}

// renderMarkdown shields composition from converter panics.
func (c *Composer) renderMarkdown(ctx context.Context, content string) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", pipeline.ErrHTMLConversion, r)
		}
	}()
	return c.converter.ToHTML(ctx, content)
}

func (c *Composer) execute(t *template.Template, view documentView) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return b.String(), nil
}

// imageURL admits inline images and web URLs; anything else is dropped so a
// malformed settings value cannot inject a script URL.
func imageURL(s string) template.URL {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "data:image/"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"):
		return template.URL(s) // #nosec G203 -- scheme checked above
	}
	return ""
}

func nonNilPlans(plans []*Plan) []*Plan {
	out := make([]*Plan, 0, len(plans))
	for _, p := range plans {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
