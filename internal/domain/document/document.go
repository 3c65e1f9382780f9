package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/coursesearch/internal/domain/catalog"
)

// Document is a searchable rendering of one course section (immutable value object).
type Document struct {
	text    string
	lower   string
	section catalog.Section
}

// New creates a Document from composed text and its section metadata.
func New(text string, section catalog.Section) Document {
	return Document{text: text, lower: strings.ToLower(text), section: section}
}

// Text returns the composed text blob fed to the embedder.
func (d *Document) Text() string { return d.text }

// LowerText returns the lower-cased text used for lexical matching.
func (d *Document) LowerText() string { return d.lower }

// Section returns the section metadata.
func (d *Document) Section() *catalog.Section { return &d.section }

// Compose turns one course into one Document per term class.
// Field repetition weights identity fields (title, code, subject) in the embedding.
func Compose(course catalog.Course, subjects map[string]catalog.Subject) ([]Document, error) {
	subjectCode, year, err := catalog.ParseCode(course.Code)
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", course.Code, err)
	}
	subject := subjects[subjectCode]

	docs := make([]Document, 0, len(course.TermClasses))
	for _, tc := range course.TermClasses {
		section := catalog.Section{
			CourseCode:         course.Code,
			Title:              course.Title,
			Year:               year,
			SubjectCode:        subjectCode,
			SubjectName:        subject.Name,
			SubjectDescription: subject.Description,
			Description:        course.Description,
			DayCodes:           nonNil(tc.Days),
			Days:               dayNames(tc.Days),
			Time:               catalog.FormatTime(tc.Time),
			Instructors:        nonNil(tc.Instructors),
		}
		docs = append(docs, New(composeText(&section), section))
	}
	return docs, nil
}

func composeText(s *catalog.Section) string {
	parts := []string{
		s.Title, s.Title, s.Title,
		s.CourseCode, s.CourseCode,
		s.SubjectCode, s.SubjectName, s.SubjectName,
		yearPhrase(s),
		s.SubjectDescription,
		strings.Join(s.DayCodes, " "),
		strings.Join(s.Days, " "),
		s.Time,
		s.Description,
	}
	return strings.Join(parts, " ")
}

// yearPhrase renders the year level as "<ordinal> year level <digit>".
func yearPhrase(s *catalog.Section) string {
	digit := ""
	if len(s.CourseCode) > catalog.SubjectCodeLen {
		digit = s.CourseCode[catalog.SubjectCodeLen : catalog.SubjectCodeLen+1]
	}
	ordinal := catalog.Ordinals[s.Year]
	if ordinal == "" {
		return "level " + digit
	}
	return ordinal + " year level " + strconv.Itoa(s.Year)
}

func dayNames(codes []string) []string {
	names := make([]string, 0, len(codes))
	for _, c := range codes {
		if name, ok := catalog.DayNames[c]; ok {
			names = append(names, name)
		}
	}
	return names
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
