// Package catalog loads the course catalog and subject list from JSON snapshots.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/domain"
	domcat "github.com/kailas-cloud/coursesearch/internal/domain/catalog"
)

// Loader reads the catalog from two files: a course-code keyed object and a subject array.
type Loader struct {
	coursesPath  string
	subjectsPath string
	logger       *zap.Logger
}

// NewLoader creates a file-backed catalog loader.
func NewLoader(coursesPath, subjectsPath string, logger *zap.Logger) *Loader {
	return &Loader{coursesPath: coursesPath, subjectsPath: subjectsPath, logger: logger}
}

// Load reads both files. Any read or parse failure wraps domain.ErrCatalogUnavailable.
func (l *Loader) Load(_ context.Context) (domcat.Catalog, error) {
	courses, err := readFile(l.coursesPath, DecodeCourses)
	if err != nil {
		return domcat.Catalog{}, err
	}
	subjects, err := readFile(l.subjectsPath, DecodeSubjects)
	if err != nil {
		return domcat.Catalog{}, err
	}

	l.logger.Info("Catalog loaded",
		zap.String("courses_path", l.coursesPath),
		zap.Int("courses", len(courses)),
		zap.Int("subjects", len(subjects)),
	)
	return domcat.Catalog{Courses: courses, Subjects: subjects}, nil
}

func readFile[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, domain.ErrCatalogUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	items, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", path, domain.ErrCatalogUnavailable, err)
	}
	return items, nil
}

// DecodeCourses decodes a JSON object of course code to course, keeping the key order
// of the source document.
func DecodeCourses(r io.Reader) ([]domcat.Course, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var courses []domcat.Course
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read course code: %w", err)
		}
		code, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v for course code", tok)
		}

		var course domcat.Course
		if err := dec.Decode(&course); err != nil {
			return nil, fmt.Errorf("decode course %s: %w", code, err)
		}
		course.Code = code
		courses = append(courses, course)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return courses, nil
}

// DecodeSubjects decodes a JSON array of subjects.
func DecodeSubjects(r io.Reader) ([]domcat.Subject, error) {
	var subjects []domcat.Subject
	if err := json.NewDecoder(r).Decode(&subjects); err != nil {
		return nil, fmt.Errorf("decode subjects: %w", err)
	}
	return subjects, nil
}

var errUnexpectedJSON = errors.New("unexpected JSON structure")

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", errUnexpectedJSON, want, tok)
	}
	return nil
}
