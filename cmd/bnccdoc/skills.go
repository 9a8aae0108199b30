package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alnah/go-bnccdoc/internal/curriculum"
)

// runSkills prints the curriculum catalog, optionally filtered.
func runSkills(args []string, env *Environment) error {
	f, err := parseSkillsFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	skills := curriculum.Filter(f.year, curriculum.Axis(f.axis))
	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(skills)
	}

	year := ""
	for _, s := range skills {
		if s.Year != year {
			if year != "" {
				fmt.Fprintln(env.Stdout)
			}
			year = s.Year
			fmt.Fprintln(env.Stdout, year)
		}
		fmt.Fprintf(env.Stdout, "  %s  [%s] %s\n", s.Code, s.Axis, s.Description)
	}
	if len(skills) == 0 {
		fmt.Fprintf(env.Stderr, "no skills match the given filters (years: %s)\n", strings.Join(curriculum.Years(), ", "))
	}
	return nil
}
