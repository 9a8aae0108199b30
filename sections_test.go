package bnccdoc

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// scenarioPlan is plan 42 (EF05CO01, owner 7) with theory and lesson 1.
func scenarioPlan() *Plan {
	p := &Plan{
		ID:         42,
		OwnerID:    7,
		SkillCode:  "EF05CO01",
		SchoolYear: "5º Ano",
		Axis:       "Pensamento Computacional",
		Theory:     "# Teoria\n\nConceitos de **decomposição**.",
		Progress:   1,
	}
	p.Lessons[0] = "## Abertura\n\n| Etapa | Tempo |\n|---|---|\n| Abertura | 10 min |"
	return p
}

func fullPlan() *Plan {
	p := scenarioPlan()
	for i := range p.Lessons {
		p.Lessons[i] = "Aula " + string(rune('1'+i))
	}
	p.Progress = LessonStages
	return p
}

func sectionTitles(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Title
	}
	return out
}

// ---------------------------------------------------------------------------
// TestPlanSections - Gating by export config
// ---------------------------------------------------------------------------

func TestPlanSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		plan *Plan
		cfg  ExportConfig
		want []string
	}{
		{
			name: "theory and first lesson",
			plan: scenarioPlan(),
			cfg:  DefaultExportConfig(),
			want: []string{"Fundamentação Teórica", "PLANO DE AULA 01", "Referências"},
		},
		{
			name: "all stages",
			plan: fullPlan(),
			cfg:  DefaultExportConfig(),
			want: []string{"Fundamentação Teórica", "PLANO DE AULA 01", "PLANO DE AULA 02", "PLANO DE AULA 03", "PLANO DE AULA 04", "PLANO DE AULA 05", "Referências"},
		},
		{
			name: "theory disabled",
			plan: fullPlan(),
			cfg:  ExportConfig{IncludeLessons: true},
			want: []string{"PLANO DE AULA 01", "PLANO DE AULA 02", "PLANO DE AULA 03", "PLANO DE AULA 04", "PLANO DE AULA 05", "Referências"},
		},
		{
			name: "lessons disabled",
			plan: fullPlan(),
			cfg:  ExportConfig{IncludeTheory: true},
			want: []string{"Fundamentação Teórica", "Referências"},
		},
		{
			name: "everything disabled keeps references",
			plan: fullPlan(),
			cfg:  ExportConfig{},
			want: []string{"Referências"},
		},
		{
			name: "empty plan keeps references",
			plan: &Plan{ID: 1, SkillCode: "EF01CO01"},
			cfg:  DefaultExportConfig(),
			want: []string{"Referências"},
		},
		{
			name: "blank stages skipped without renumbering",
			plan: func() *Plan {
				p := &Plan{ID: 2, Theory: "   \n"}
				p.Lessons[2] = "terceira"
				return p
			}(),
			cfg:  DefaultExportConfig(),
			want: []string{"PLANO DE AULA 03", "Referências"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sectionTitles(planSections(tt.plan, tt.cfg))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("planSections() titles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlanSections_Kinds(t *testing.T) {
	t.Parallel()

	sections := planSections(scenarioPlan(), DefaultExportConfig())
	want := []SectionKind{KindChapter, KindLessonPlan, KindStandard}
	if len(sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(sections), len(want))
	}
	for i, s := range sections {
		if s.Kind != want[i] {
			t.Errorf("section %d kind = %q, want %q", i, s.Kind, want[i])
		}
	}
	if sections[0].Content != scenarioPlan().Theory {
		t.Error("theory section should carry the plan's theory verbatim")
	}
}

// ---------------------------------------------------------------------------
// TestYearlySections
// ---------------------------------------------------------------------------

func TestYearlySections(t *testing.T) {
	t.Parallel()

	second := &Plan{ID: 9, SkillCode: "EF05CO02"}
	second.Lessons[1] = "segunda aula"

	got := yearlySections([]*Plan{scenarioPlan(), nil, second})
	want := []string{
		"Habilidade EF05CO01",
		"Fundamentação Teórica (EF05CO01)",
		"Plano 01 (EF05CO01)",
		"Habilidade EF05CO02",
		"Plano 02 (EF05CO02)",
	}
	if strings.Join(sectionTitles(got), "|") != strings.Join(want, "|") {
		t.Errorf("yearlySections() titles = %v, want %v", sectionTitles(got), want)
	}
	if got[0].Kind != KindSkillHeader {
		t.Errorf("first kind = %q, want %q", got[0].Kind, KindSkillHeader)
	}
	for _, s := range got {
		if s.Title == referencesTitle {
			t.Error("yearly aggregate must not include references")
		}
	}
}

func TestSkillHeaderContent(t *testing.T) {
	t.Parallel()

	got := skillHeaderContent(&Plan{SkillCode: "EF09CO10"})
	for _, want := range []string{"Habilidade EF09CO10", "**Eixo:** Não informado", "**Ano Escolar:** Não informado"} {
		if !strings.Contains(got, want) {
			t.Errorf("skillHeaderContent() missing %q in %q", want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBuildTOC - Parity with sections
// ---------------------------------------------------------------------------

func TestBuildTOC(t *testing.T) {
	t.Parallel()

	for _, p := range []*Plan{scenarioPlan(), fullPlan(), {ID: 3}} {
		sections := planSections(p, DefaultExportConfig())
		toc := buildTOC(sections)

		if len(toc) != len(sections) {
			t.Fatalf("plan %d: %d TOC entries for %d sections", p.ID, len(toc), len(sections))
		}
		for i := range toc {
			if toc[i].Title != sections[i].Title {
				t.Errorf("plan %d: TOC[%d] = %q, section = %q", p.ID, i, toc[i].Title, sections[i].Title)
			}
			if toc[i].Page != i+4 {
				t.Errorf("plan %d: TOC[%d] page = %d, want %d", p.ID, i, toc[i].Page, i+4)
			}
		}
	}
}

func TestOrDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, fallback, want string
	}{
		{"", "x", "x"},
		{"  \t", "x", "x"},
		{"a", "x", "a"},
	}
	for _, tt := range tests {
		if got := orDefault(tt.in, tt.fallback); got != tt.want {
			t.Errorf("orDefault(%q, %q) = %q, want %q", tt.in, tt.fallback, got, tt.want)
		}
	}
}
