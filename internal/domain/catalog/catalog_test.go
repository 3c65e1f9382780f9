package catalog

import "testing"

func TestParseCode(t *testing.T) {
	tests := []struct {
		code    string
		subject string
		year    int
		wantErr bool
	}{
		{"CSCI2110", "CSCI", 2, false},
		{"MATH1000", "MATH", 1, false},
		{"GWST9", "GWST", 9, false},
		{"ABCDX00", "ABCD", 0, false},
		{"CSCI", "", 0, true},
		{"", "", 0, true},
	}
	for _, tc := range tests {
		subject, year, err := ParseCode(tc.code)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseCode(%q) err = %v, wantErr %v", tc.code, err, tc.wantErr)
			continue
		}
		if subject != tc.subject || year != tc.year {
			t.Errorf("ParseCode(%q) = %q/%d, want %q/%d", tc.code, subject, year, tc.subject, tc.year)
		}
	}
}

func TestSubjectIndex_FirstWins(t *testing.T) {
	c := Catalog{Subjects: []Subject{
		{Code: "CSCI", Name: "Computer Science"},
		{Code: "CSCI", Name: "Duplicate"},
	}}
	idx := c.SubjectIndex()
	if idx["CSCI"].Name != "Computer Science" {
		t.Errorf("expected first entry, got %q", idx["CSCI"].Name)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(nil); got != "TBD" {
		t.Errorf("nil time: got %q", got)
	}
	if got := FormatTime(&TimeRange{}); got != "TBD" {
		t.Errorf("empty time: got %q", got)
	}
	if got := FormatTime(&TimeRange{Start: "0835", End: "0955"}); got != "0835-0955" {
		t.Errorf("got %q", got)
	}
}

func TestSection_Display(t *testing.T) {
	s := Section{
		CourseCode:  "CSCI2110",
		Title:       "Data Structures",
		Year:        2,
		Days:        []string{"Monday", "Wednesday"},
		Time:        "1005-1125",
		Description: "Lists and trees.",
	}
	want := "CSCI2110 - Data Structures\nYear: 2, Days: Monday, Wednesday\nTime: 1005-1125\nDescription: Lists and trees."
	if got := s.Display(); got != want {
		t.Errorf("unexpected display:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSection_MeetsOn(t *testing.T) {
	s := Section{DayCodes: []string{"M", "W"}}
	if !s.MeetsOn("M") || !s.MeetsOn("W") {
		t.Error("expected section to meet on M and W")
	}
	if s.MeetsOn("T") {
		t.Error("section should not meet on T")
	}
}
