package domain

import "testing"

func TestValidate(t *testing.T) {
	ok := BugRecord{Date: "2024-01-01", Type: "logic", ID: "A1", URL: "http://x", Desc: "d", Lead: "L"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	cases := map[string]BugRecord{
		"missing id":   {Date: "2024-01-01", URL: "http://x"},
		"missing url":  {Date: "2024-01-01", ID: "A1"},
		"bad date":     {Date: "January 1st", ID: "A1", URL: "http://x"},
		"absent date":  {ID: "A1", URL: "http://x"},
		"blank fields": {},
	}
	for name, r := range cases {
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2023-05-05 ")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year() != 2023 || int(d.Month()) != 5 || d.Day() != 5 {
		t.Fatalf("bad parse: %v", d)
	}
}

func TestLabel(t *testing.T) {
	r := BugRecord{ID: "Repo #12", Desc: "crash on load"}
	if got := r.Label(); got != "Repo #12: crash on load" {
		t.Fatalf("label = %q", got)
	}
}
