package result

import (
	"testing"

	"github.com/kailas-cloud/coursesearch/internal/domain/catalog"
)

func TestNew(t *testing.T) {
	sec := &catalog.Section{CourseCode: "CSCI2110"}
	r := New(1.25, 0.8, 4, sec)

	if r.Score() != 1.25 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.Similarity() != 0.8 {
		t.Errorf("Similarity() = %f", r.Similarity())
	}
	if r.Rank() != 4 {
		t.Errorf("Rank() = %d", r.Rank())
	}
	if r.Section() != sec {
		t.Error("Section() returned a different pointer")
	}
}
