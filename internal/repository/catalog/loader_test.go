package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/domain"
)

const coursesJSON = `{
  "MATH1000": {"title": "Calculus", "description": "Limits.", "termClasses": [
    {"days": ["M", "W"], "time": {"start": "09:00", "end": "10:00"}, "instructors": ["Ada"]}
  ]},
  "CSCI2110": {"title": "Data Structures", "description": "Trees.", "termClasses": [
    {"days": ["T"], "time": null, "instructors": []},
    {"days": ["F"]}
  ]},
  "BIOL1010": {"title": "Biology", "description": "Cells.", "termClasses": []}
}`

const subjectsJSON = `[
  {"code": "CSCI", "name": "Computer Science", "description": "Study of computation"},
  {"code": "MATH", "name": "Mathematics", "description": "Numbers"}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDecodeCourses_PreservesOrder(t *testing.T) {
	courses, err := DecodeCourses(strings.NewReader(coursesJSON))
	if err != nil {
		t.Fatalf("DecodeCourses: %v", err)
	}

	want := []string{"MATH1000", "CSCI2110", "BIOL1010"}
	if len(courses) != len(want) {
		t.Fatalf("expected %d courses, got %d", len(want), len(courses))
	}
	for i, c := range courses {
		if c.Code != want[i] {
			t.Errorf("course %d = %s, want %s", i, c.Code, want[i])
		}
	}

	cs := courses[1]
	if len(cs.TermClasses) != 2 {
		t.Fatalf("expected 2 term classes, got %d", len(cs.TermClasses))
	}
	if cs.TermClasses[0].Time != nil {
		t.Error("null time should decode to nil")
	}
	if courses[0].TermClasses[0].Time.Start != "09:00" {
		t.Errorf("unexpected time: %+v", courses[0].TermClasses[0].Time)
	}
}

func TestDecodeCourses_Malformed(t *testing.T) {
	tests := map[string]string{
		"array":     `[1, 2]`,
		"truncated": `{"MATH1000": {"title": "x"`,
		"bad value": `{"MATH1000": 5}`,
		"empty":     ``,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeCourses(strings.NewReader(input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDecodeCourses_EmptyObject(t *testing.T) {
	courses, err := DecodeCourses(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("expected no courses, got %d", len(courses))
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(
		writeFile(t, dir, "courses.json", coursesJSON),
		writeFile(t, dir, "subjects.json", subjectsJSON),
		zap.NewNop(),
	)

	cat, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Courses) != 3 || len(cat.Subjects) != 2 {
		t.Fatalf("unexpected catalog shape: %d courses, %d subjects", len(cat.Courses), len(cat.Subjects))
	}
	if cat.SubjectIndex()["CSCI"].Name != "Computer Science" {
		t.Error("subject index missing CSCI")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(filepath.Join(dir, "nope.json"), writeFile(t, dir, "subjects.json", subjectsJSON), zap.NewNop())

	_, err := l.Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected underlying not-exist error, got %v", err)
	}
}

func TestLoader_MalformedSubjects(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(
		writeFile(t, dir, "courses.json", coursesJSON),
		writeFile(t, dir, "subjects.json", `{"code": "CSCI"}`),
		zap.NewNop(),
	)

	_, err := l.Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}
