package bnccdoc

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is a user's access profile.
type Role string

// Known roles. Gestor is the administrative role: it may change settings and
// run the bulk export.
const (
	RoleProfessor   Role = "Professor"
	RoleCoordinator Role = "Coordenador"
	RoleManager     Role = "Gestor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleProfessor, RoleCoordinator, RoleManager:
		return true
	}
	return false
}

// IsAdmin reports whether r carries export and settings privileges.
func (r Role) IsAdmin() bool {
	return r == RoleManager
}

// LessonStages is the number of lesson stages following the theory stage.
const LessonStages = 5

// TheoryStage is the stage index of the foundational theory content.
const TheoryStage = 0

// Plan is a per-skill pedagogical record. Stage 0 is the theory, stages 1
// to LessonStages are the lessons.
type Plan struct {
	ID         int64
	OwnerID    int64
	SkillCode  string
	SchoolYear string
	Axis       string
	Theory     string
	Lessons    [LessonStages]string
	Progress   int
	Completed  bool
	CreatedAt  time.Time
}

// Stage returns the content of stage n, or "" when n is out of range.
func (p *Plan) Stage(n int) string {
	switch {
	case n == TheoryStage:
		return p.Theory
	case n >= 1 && n <= LessonStages:
		return p.Lessons[n-1]
	}
	return ""
}

// PopulatedLessons counts the lesson stages holding non-blank content.
func (p *Plan) PopulatedLessons() int {
	n := 0
	for _, l := range p.Lessons {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return n
}

// Settings is the institutional profile used for document branding.
type Settings struct {
	SecretariatName  string
	MunicipalityName string
	StateName        string
	MunicipalityLogo string // data URI
	SecretariatLogo  string // data URI
	SignatoryName    string
	SignatureImage   string // data URI
	ExportConfig     string // raw JSON
}

// Institutional defaults used when no settings record is available.
const (
	DefaultSecretariatName  = "Secretaria Municipal de Educação"
	DefaultMunicipalityName = "Município"
	DefaultStateName        = "Estado"
	DefaultExportConfigJSON = `{"include_fase_zero": true, "include_planos": true, "resumida": false}`
)

// DefaultSettings returns the generic institutional profile.
func DefaultSettings() *Settings {
	return &Settings{
		SecretariatName:  DefaultSecretariatName,
		MunicipalityName: DefaultMunicipalityName,
		StateName:        DefaultStateName,
		ExportConfig:     DefaultExportConfigJSON,
	}
}

// ExportConfig holds the content flags stored in Settings.ExportConfig.
// Stored records may also carry "resumida"; it has no effect on the
// document and is ignored when decoding.
type ExportConfig struct {
	IncludeTheory  bool `json:"include_fase_zero"`
	IncludeLessons bool `json:"include_planos"`
}

// DefaultExportConfig enables every content category.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{IncludeTheory: true, IncludeLessons: true}
}

// ParseExportConfig decodes a raw export configuration. An empty string
// yields the default. Malformed input yields the default together with an
// ErrInvalidExportConfig so callers can log it; the returned config is
// always usable. Keys absent from valid JSON decode as false.
func ParseExportConfig(raw string) (ExportConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultExportConfig(), nil
	}
	var cfg ExportConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return DefaultExportConfig(), fmt.Errorf("%w: %v", ErrInvalidExportConfig, err)
	}
	return cfg, nil
}

// User is the attribution source for cover and signature blocks.
type User struct {
	ID     int64
	Name   string
	Email  string
	School string
	Role   Role
}

// DefaultTeacherName is shown when a document has no user attached.
const DefaultTeacherName = "Professor"

// SectionKind is the semantic kind of a content section.
type SectionKind string

// Section kinds drive the heading layout of each content page.
const (
	KindChapter     SectionKind = "chapter"
	KindLessonPlan  SectionKind = "lesson-plan"
	KindSkillHeader SectionKind = "skill-header"
	KindStandard    SectionKind = "standard"
)

// Section is one content page of a composed document.
type Section struct {
	Title   string
	Kind    SectionKind
	Content string // markdown
}
