package movies

import (
	"reflect"
	"testing"
)

func TestBuildID(t *testing.T) {
	tests := []struct {
		title, year, want string
	}{
		{"Plan 9 from Outer Space", "1959", "Plan 9 from Outer Space (1959)"},
		{"", "", " ()"},
		{"Odd", "19?", "Odd (19?)"},
		{" Spaced ", "2001", " Spaced  (2001)"},
	}
	for _, tt := range tests {
		if got := BuildID(tt.title, tt.year); got != tt.want {
			t.Errorf("BuildID(%q, %q): expected %q, got %q", tt.title, tt.year, tt.want, got)
		}
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		title     string
		year      string
		ok        bool
		composeAs string
	}{
		{"plain", "Plan 9 from Outer Space (1959)", "Plan 9 from Outer Space", "1959", true, "Plan 9 from Outer Space (1959)"},
		{"genre line", "Plan 9 from Outer Space (1959)\t\t\tHorror", "Plan 9 from Outer Space", "1959", true, "Plan 9 from Outer Space (1959)"},
		{"roman suffix", "Crash (2004/I)", "Crash", "2004", true, "Crash (2004)"},
		{"unknown year", "Untitled (????)", "Untitled", "????", true, "Untitled (????)"},
		{"short year", "Cut (19", "Cut", "19", true, "Cut (19)"},
		{"no paren", "No year here", "", "", false, ""},
		{"paren first", "(500) Days of Summer (2009)", "(500) Days of Summer", "2009", true, "(500) Days of Summer (2009)"},
		{"paren only at start", "(untitled)", "", "", false, ""},
		{"empty", "", "", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, year, ok := SplitName(tt.in)
			if ok != tt.ok || title != tt.title || year != tt.year {
				t.Fatalf("expected (%q, %q, %v), got (%q, %q, %v)", tt.title, tt.year, tt.ok, title, year, ok)
			}
			if ok && BuildID(title, year) != tt.composeAs {
				t.Errorf("expected composed %q, got %q", tt.composeAs, BuildID(title, year))
			}
		})
	}
}

func TestSplitNameRoundTripsCanonicalNames(t *testing.T) {
	names := []string{
		"Plan 9 from Outer Space (1959)",
		"2001: A Space Odyssey (1968)",
		"Alien (1979)",
		"M (1931)",
	}
	for _, name := range names {
		title, year, ok := SplitName(name)
		if !ok {
			t.Fatalf("expected %q to split", name)
		}
		if BuildID(title, year) != name {
			t.Errorf("expected composed key to equal verbatim name %q, got %q", name, BuildID(title, year))
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := map[string]int{"1959": 1959, "????": 0, "": 0, "19a9": 0, "0042": 42}
	for in, want := range tests {
		if got := ParseYear(in); got != want {
			t.Errorf("ParseYear(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestRegistry(t *testing.T) {
	t.Run("entry creates lazily and returns the same record", func(t *testing.T) {
		reg := NewRegistry()
		if _, ok := reg.Get("Alien (1979)"); ok {
			t.Fatal("expected no record before first reference")
		}
		a := reg.Entry("Alien (1979)")
		a.Genres = append(a.Genres, "Horror")
		b := reg.Entry("Alien (1979)")
		if a != b {
			t.Error("expected the same record pointer")
		}
		if reg.Len() != 1 {
			t.Errorf("expected 1 record, got %d", reg.Len())
		}
		got, ok := reg.Get("Alien (1979)")
		if !ok || !reflect.DeepEqual(got.Genres, []string{"Horror"}) {
			t.Errorf("expected accumulated genres, got %+v", got)
		}
	})

	t.Run("ids are sorted", func(t *testing.T) {
		reg := NewRegistry()
		reg.Entry("b (2000)")
		reg.Entry("a (2000)")
		reg.Entry("C (2000)")
		want := []string{"C (2000)", "a (2000)", "b (2000)"}
		if got := reg.IDs(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("range stops early", func(t *testing.T) {
		reg := NewRegistry()
		reg.Entry("a (2000)")
		reg.Entry("b (2000)")
		calls := 0
		reg.Range(func(string, *MovieRecord) bool {
			calls++
			return false
		})
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})
}
