// Package recommend suggests a starting selection from school size and grade segments.
package recommend

import (
	"strings"

	"github.com/littlemaker/configurador/internal/selection"
)

// Segment is a grade band served by the school.
type Segment string

const (
	EarlyChildhood Segment = "EI"   // Educação Infantil
	ElementaryLow  Segment = "EFAI" // Ens. Fundamental Anos Iniciais
	ElementaryHigh Segment = "EFAF" // Ens. Fundamental Anos Finais
	HighSchool     Segment = "EM"   // Ensino Médio
)

var labels = map[string]Segment{
	"educação infantil":              EarlyChildhood,
	"ens. fundamental anos iniciais": ElementaryLow,
	"ens. fundamental anos finais":   ElementaryHigh,
	"ensino médio":                   HighSchool,
}

// Label returns the Portuguese name shown on proposals.
func (s Segment) Label() string {
	switch s {
	case EarlyChildhood:
		return "Educação Infantil"
	case ElementaryLow:
		return "Ens. Fundamental Anos Iniciais"
	case ElementaryHigh:
		return "Ens. Fundamental Anos Finais"
	case HighSchool:
		return "Ensino Médio"
	}
	return string(s)
}

// ParseSegment accepts a segment code or its Portuguese label.
func ParseSegment(v string) (Segment, bool) {
	v = strings.TrimSpace(v)
	switch s := Segment(strings.ToUpper(v)); s {
	case EarlyChildhood, ElementaryLow, ElementaryHigh, HighSchool:
		return s, true
	}
	s, ok := labels[strings.ToLower(v)]
	return s, ok
}

// ParseSegments parses every recognised value and skips the rest.
func ParseSegments(vs []string) []Segment {
	var out []Segment
	for _, v := range vs {
		if s, ok := ParseSegment(v); ok {
			out = append(out, s)
		}
	}
	return out
}

func has(segs []Segment, want Segment) bool {
	for _, s := range segs {
		if s == want {
			return true
		}
	}
	return false
}

// Selection returns the suggested bundle. The thresholds are business rules.
func Selection(students int, segments []Segment) selection.Set {
	hasEI := has(segments, EarlyChildhood)
	hasUpper := has(segments, ElementaryHigh) || has(segments, HighSchool)
	hasMaker := has(segments, ElementaryLow) || hasUpper

	s := selection.Set{}
	if hasEI {
		switch {
		case hasMaker, students < 200:
			add(s, "infantil_carrinho", "infantil_ferr_18")
		default:
			add(s, "infantil_padrao_18", "infantil_ferr_18")
			if students >= 400 {
				s.Add("infantil_up_12")
			}
		}
	}

	if !hasMaker {
		return s
	}
	switch {
	case students <= 120:
		add(s, "maker_minima", "maker_ferr_red_18")
	case students <= 250:
		s.Add("maker_minima")
		if hasUpper {
			s.Add("maker_ferr_padrao")
		} else {
			s.Add("maker_ferr_red_18")
		}
	case students <= 600:
		add(s, "maker_padrao_24", "maker_ferr_padrao")
	default:
		add(s, "maker_padrao_24", "maker_up_6", "maker_ferr_padrao", "maker_ferr_digitais", "maker_ferr_pc")
		if students >= 800 {
			add(s, "midia_padrao_24", "midia_up_6", "midia_ferr_padrao")
		}
	}
	return s
}

func add(s selection.Set, ids ...string) {
	for _, id := range ids {
		s.Add(id)
	}
}

// ShouldApply reports whether a suggestion may replace the current selection:
// only for an unsaved proposal that has nothing selected yet.
func ShouldApply(proposalID string, current selection.Set) bool {
	return proposalID == "" && current.Len() == 0
}
