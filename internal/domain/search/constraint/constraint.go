// Package constraint extracts structured search constraints (year level, weekday,
// subject) from free-text queries using fixed vocabularies.
//
// Each vocabulary is scanned in table order; every whole-word hit overwrites the
// dimension's value and is removed from the residual query. The value kept is therefore
// the last hit in table order, not the last mention in the query.
package constraint

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/coursesearch/internal/domain/catalog"
)

// Set is a ConstraintSet. Zero values mean "unset".
type Set struct {
	Year    int    // 1-9, 0 = unset
	Day     string // day code, "" = unset
	Subject string // subject code, "" = unset
}

// IsEmpty reports whether no dimension is set.
func (s Set) IsEmpty() bool {
	return s.Year == 0 && s.Day == "" && s.Subject == ""
}

// WithoutDay returns a copy with the day dimension cleared.
func (s Set) WithoutDay() Set {
	s.Day = ""
	return s
}

// Matches reports whether a section satisfies every set dimension.
func (s Set) Matches(sec *catalog.Section) bool {
	if s.Year != 0 && sec.Year != s.Year {
		return false
	}
	if s.Day != "" && !sec.MeetsOn(s.Day) {
		return false
	}
	if s.Subject != "" && sec.SubjectCode != s.Subject {
		return false
	}
	return true
}

type entry struct {
	patterns []*regexp.Regexp
	value    string
}

// subjectKeywords is the curated keyword -> subject code table.
var subjectKeywords = []struct {
	keyword string
	code    string
}{
	{"comp sci", "CSCI"},
	{"computer science", "CSCI"},
	{"math", "MATH"},
	{"statistics", "STAT"},
	{"gender studies", "GWST"},
	{"gwst", "GWST"},
}

var (
	yearTable    = buildYearTable()
	dayTable     = buildDayTable()
	subjectTable = buildSubjectTable()
)

func wordPattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

func buildYearTable() []entry {
	out := make([]entry, 0, len(catalog.Ordinals))
	for year := 1; year <= 9; year++ {
		out = append(out, entry{
			patterns: []*regexp.Regexp{wordPattern(catalog.Ordinals[year] + " year")},
			value:    strconv.Itoa(year),
		})
	}
	return out
}

// buildDayTable matches the full weekday name, the name without its last letter,
// and the name without its "day" suffix ("tues", "thurs").
func buildDayTable() []entry {
	out := make([]entry, 0, len(catalog.DayOrder))
	for _, code := range catalog.DayOrder {
		name := strings.ToLower(catalog.DayNames[code])
		forms := []string{name, name[:len(name)-1]}
		if short := strings.TrimSuffix(name, "day"); short != name && short != "" {
			forms = append(forms, short)
		}
		e := entry{value: code}
		for _, f := range forms {
			e.patterns = append(e.patterns, wordPattern(f))
		}
		out = append(out, e)
	}
	return out
}

func buildSubjectTable() []entry {
	out := make([]entry, 0, len(subjectKeywords))
	for _, kw := range subjectKeywords {
		out = append(out, entry{
			patterns: []*regexp.Regexp{wordPattern(kw.keyword)},
			value:    kw.code,
		})
	}
	return out
}

// Extract parses constraints out of query and returns them with the residual query:
// the query with every matched phrase removed, whitespace-collapsed and trimmed.
func Extract(query string) (Set, string) {
	var set Set
	working := query

	if v, ok := scan(yearTable, query, &working); ok {
		set.Year, _ = strconv.Atoi(v)
	}
	if v, ok := scan(dayTable, query, &working); ok {
		set.Day = v
	}
	if v, ok := scan(subjectTable, query, &working); ok {
		set.Subject = v
	}

	return set, strings.Join(strings.Fields(working), " ")
}

// scan detects against the original query and strips from the working copy.
func scan(table []entry, original string, working *string) (string, bool) {
	var value string
	var found bool
	for _, e := range table {
		hit := false
		for _, p := range e.patterns {
			if p.MatchString(original) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		value, found = e.value, true
		for _, p := range e.patterns {
			*working = p.ReplaceAllString(*working, "")
		}
	}
	return value, found
}
