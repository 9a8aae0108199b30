package assets

// AssetLoader loads the stylesheet and templates of composed documents.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	LoadTemplate(name string) (string, error)
}

// Built-in asset names.
const (
	DocumentStyle  = "document"
	PlanTemplate   = "plan"
	YearlyTemplate = "yearly"
)

// DocumentSet groups the assets needed to compose both document kinds.
type DocumentSet struct {
	Style  string
	Plan   string
	Yearly string
}

// LoadDocumentSet loads the stylesheet and both document templates.
func LoadDocumentSet(l AssetLoader) (*DocumentSet, error) {
	style, err := l.LoadStyle(DocumentStyle)
	if err != nil {
		return nil, err
	}
	plan, err := l.LoadTemplate(PlanTemplate)
	if err != nil {
		return nil, err
	}
	yearly, err := l.LoadTemplate(YearlyTemplate)
	if err != nil {
		return nil, err
	}
	return &DocumentSet{Style: style, Plan: plan, Yearly: yearly}, nil
}
