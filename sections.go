package bnccdoc

import (
	"fmt"
	"strings"
)

// tocPageOffset reserves the cover, title page and table of contents.
const tocPageOffset = 4

// Section titles.
const (
	theoryTitle     = "Fundamentação Teórica"
	referencesTitle = "Referências"
)

// referencesContent is the fixed bibliography closing every single-plan document.
const referencesContent = `- BRASIL. Ministério da Educação. Base Nacional Comum Curricular. Brasília, 2018.
- BRASIL. Complemento à BNCC: Computação. Brasília, 2022.
- WING, J. M. Computational Thinking. Communications of the ACM, 2006.
- SBC. Referenciais de Formação em Computação da Educação Básica. 2017.`

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	Title string
	Page  int
}

// planSections builds the ordered sections of a single-plan document.
// Blank stages are skipped; references are always appended.
func planSections(p *Plan, cfg ExportConfig) []Section {
	sections := make([]Section, 0, LessonStages+2)

	if cfg.IncludeTheory && hasContent(p.Theory) {
		sections = append(sections, Section{Title: theoryTitle, Kind: KindChapter, Content: p.Theory})
	}

	if cfg.IncludeLessons {
		for i, lesson := range p.Lessons {
			if !hasContent(lesson) {
				continue
			}
			sections = append(sections, Section{
				Title:   fmt.Sprintf("PLANO DE AULA %02d", i+1),
				Kind:    KindLessonPlan,
				Content: lesson,
			})
		}
	}

	return append(sections, Section{Title: referencesTitle, Kind: KindStandard, Content: referencesContent})
}

// yearlySections flattens every plan into one section list, in caller order.
// Export flags do not apply to the yearly aggregate.
func yearlySections(plans []*Plan) []Section {
	sections := make([]Section, 0, len(plans)*(LessonStages+2))

	for _, p := range plans {
		if p == nil {
			continue
		}
		sections = append(sections, Section{
			Title:   "Habilidade " + p.SkillCode,
			Kind:    KindSkillHeader,
			Content: skillHeaderContent(p),
		})

		if hasContent(p.Theory) {
			sections = append(sections, Section{
				Title:   fmt.Sprintf("%s (%s)", theoryTitle, p.SkillCode),
				Kind:    KindChapter,
				Content: p.Theory,
			})
		}

		for i, lesson := range p.Lessons {
			if !hasContent(lesson) {
				continue
			}
			sections = append(sections, Section{
				Title:   fmt.Sprintf("Plano %02d (%s)", i+1, p.SkillCode),
				Kind:    KindLessonPlan,
				Content: lesson,
			})
		}
	}

	return sections
}

func skillHeaderContent(p *Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Planejamento para a Habilidade %s\n\n", p.SkillCode)
	fmt.Fprintf(&b, "**Eixo:** %s\n", orDefault(p.Axis, "Não informado"))
	fmt.Fprintf(&b, "**Ano Escolar:** %s", orDefault(p.SchoolYear, "Não informado"))
	return b.String()
}

// buildTOC returns one entry per section, in section order.
func buildTOC(sections []Section) []TOCEntry {
	toc := make([]TOCEntry, len(sections))
	for i, s := range sections {
		toc[i] = TOCEntry{Title: s.Title, Page: i + tocPageOffset}
	}
	return toc
}

func hasContent(s string) bool {
	return strings.TrimSpace(s) != ""
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
