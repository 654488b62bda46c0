package property

import "testing"

func TestSearchPattern(t *testing.T) {
	// The pattern is passed to ILIKE for both name and address, so a
	// lowercase fragment like "melb" must still match
	// "123 Test Street, Melbourne, Australia" as a substring.
	cases := []struct {
		term string
		want string
	}{
		{"melb", "%melb%"},
		{"  melb  ", "%melb%"},
		{"Carlton Terrace", "%Carlton Terrace%"},
		{"", "%%"},
	}
	for _, tc := range cases {
		if got := searchPattern(tc.term); got != tc.want {
			t.Errorf("searchPattern(%q) = %q, want %q", tc.term, got, tc.want)
		}
	}
}

func TestCountsByProperty(t *testing.T) {
	rows := []recordCounts{
		{PropertyID: 1, WorkCount: 2, IncomeCount: 5, ExpenseCount: 0},
		{PropertyID: 3, WorkCount: 0, IncomeCount: 0, ExpenseCount: 7},
	}

	counts := countsByProperty(rows)
	if len(counts) != 2 {
		t.Fatalf("got %d entries, want 2", len(counts))
	}
	if n := counts[1]; n.WorkCount != 2 || n.IncomeCount != 5 || n.ExpenseCount != 0 {
		t.Errorf("property 1 counts = %+v", n)
	}
	if n := counts[3]; n.ExpenseCount != 7 {
		t.Errorf("property 3 counts = %+v", n)
	}

	// Properties with no records at all just zero-value out of the map.
	if n := counts[2]; n.WorkCount != 0 || n.IncomeCount != 0 || n.ExpenseCount != 0 {
		t.Errorf("missing property counts = %+v, want zeros", n)
	}
}
