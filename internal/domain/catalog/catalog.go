// Package catalog holds the course catalog model: raw courses as loaded from the
// catalog snapshot, subjects, and the per-meeting-pattern Section derived from them.
package catalog

import (
	"fmt"
	"strings"
)

const (
	// SubjectCodeLen is the length of the subject prefix of a course code.
	SubjectCodeLen = 4
	// yearLevelOffset is the position of the year-level digit in a course code.
	yearLevelOffset = 4
)

// DayNames maps the closed day-code alphabet to full weekday names.
var DayNames = map[string]string{
	"M": "Monday",
	"T": "Tuesday",
	"W": "Wednesday",
	"R": "Thursday",
	"F": "Friday",
	"S": "Saturday",
}

// DayOrder is the iteration order of DayNames.
var DayOrder = []string{"M", "T", "W", "R", "F", "S"}

// Ordinals maps a year-level digit to its ordinal word.
var Ordinals = map[int]string{
	1: "first", 2: "second", 3: "third", 4: "fourth", 5: "fifth",
	6: "sixth", 7: "seventh", 8: "eighth", 9: "ninth",
}

// TimeRange is the meeting time of a term class.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TermClass is one scheduled meeting pattern of a course.
type TermClass struct {
	Days        []string   `json:"days"`
	Time        *TimeRange `json:"time"`
	Instructors []string   `json:"instructors"`
}

// Course is one catalog entry keyed by course code.
type Course struct {
	Code        string      `json:"-"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TermClasses []TermClass `json:"termClasses"`
}

// Subject describes a subject area.
type Subject struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog is a complete snapshot: courses in source order plus subjects.
type Catalog struct {
	Courses  []Course
	Subjects []Subject
}

// SubjectIndex returns a lookup by subject code. The first entry wins on duplicates.
func (c Catalog) SubjectIndex() map[string]Subject {
	idx := make(map[string]Subject, len(c.Subjects))
	for _, s := range c.Subjects {
		if _, ok := idx[s.Code]; !ok {
			idx[s.Code] = s
		}
	}
	return idx
}

// ParseCode splits a course code into its subject code and year-level digit.
// Year is 0 when the year character is not a digit.
func ParseCode(code string) (subject string, year int, err error) {
	if len(code) <= yearLevelOffset {
		return "", 0, fmt.Errorf("course code %q shorter than %d characters", code, yearLevelOffset+1)
	}
	subject = code[:SubjectCodeLen]
	if c := code[yearLevelOffset]; c >= '0' && c <= '9' {
		year = int(c - '0')
	}
	return subject, year, nil
}

// Section is one meeting-pattern offering of a course, with its subject resolved.
type Section struct {
	CourseCode         string
	Title              string
	Year               int
	SubjectCode        string
	SubjectName        string
	SubjectDescription string
	Description        string
	DayCodes           []string
	Days               []string
	Time               string
	Instructors        []string
}

// MeetsOn reports whether the section meets on the given day code.
func (s *Section) MeetsOn(day string) bool {
	for _, d := range s.DayCodes {
		if d == day {
			return true
		}
	}
	return false
}

// Display renders the section the way the assistant shows it to users.
func (s *Section) Display() string {
	return fmt.Sprintf("%s - %s\nYear: %s, Days: %s\nTime: %s\nDescription: %s",
		s.CourseCode, s.Title, s.yearString(), strings.Join(s.Days, ", "), s.Time, s.Description)
}

func (s *Section) yearString() string {
	if len(s.CourseCode) > yearLevelOffset {
		return s.CourseCode[yearLevelOffset : yearLevelOffset+1]
	}
	return ""
}

// FormatTime renders a term-class time range, "TBD" when absent.
func FormatTime(t *TimeRange) string {
	if t == nil || (t.Start == "" && t.End == "") {
		return "TBD"
	}
	return t.Start + "-" + t.End
}
