// Package curriculum holds the skills of the BNCC Computing complement for
// the Ensino Fundamental (1º to 9º Ano).
package curriculum

import (
	"slices"
	"strings"
)

// Axis is one of the three strands of the Computing complement.
type Axis string

// The three axes of the BNCC Computing complement.
const (
	AxisComputationalThinking Axis = "Pensamento Computacional"
	AxisDigitalWorld          Axis = "Mundo Digital"
	AxisDigitalCulture        Axis = "Cultura Digital"
)

// Placeholders used when a code is not in the table.
const (
	UnknownYear = "Ano não especificado"
	UnknownAxis = "Eixo não especificado"
)

// Skill is one curriculum entry.
type Skill struct {
	Code        string `json:"codigo"`
	Axis        Axis   `json:"eixo"`
	Year        string `json:"ano"`
	Description string `json:"descricao"`
}

var byCode = func() map[string]Skill {
	m := make(map[string]Skill, len(skills))
	for _, s := range skills {
		m[s.Code] = s
	}
	return m
}()

// Lookup returns the skill with the given code. Matching ignores case and
// surrounding whitespace.
func Lookup(code string) (Skill, bool) {
	s, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	return s, ok
}

// Describe returns the school year, axis and description of code, using
// placeholders for unknown codes.
func Describe(code string) (year, axis, description string) {
	s, ok := Lookup(code)
	if !ok {
		return UnknownYear, UnknownAxis, ""
	}
	return s.Year, string(s.Axis), s.Description
}

// All returns every skill in curriculum order.
func All() []Skill {
	return slices.Clone(skills)
}

// Filter returns the skills matching year and axis, in curriculum order.
// An empty argument matches everything.
func Filter(year string, axis Axis) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if year != "" && s.Year != year {
			continue
		}
		if axis != "" && s.Axis != axis {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ByYear returns the skills of one school year.
func ByYear(year string) []Skill {
	return Filter(year, "")
}

// Years lists the school years in curriculum order.
func Years() []string {
	var years []string
	for _, s := range skills {
		if !slices.Contains(years, s.Year) {
			years = append(years, s.Year)
		}
	}
	return years
}

// Axes lists the three axes.
func Axes() []Axis {
	return []Axis{AxisComputationalThinking, AxisDigitalWorld, AxisDigitalCulture}
}
