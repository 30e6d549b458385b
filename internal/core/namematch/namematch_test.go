package namematch

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Jane Doe", "jane doe"},
		{"collapses whitespace", "  Jane \t Doe ", "jane doe"},
		{"strips accents", "José Núñez", "jose nunez"},
		{"strips decomposed accents", "Jose\u0301 Nu\u0301n\u0303ez", "jose nunez"},
		{"width folds", "Ｊａｎｅ", "jane"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fold(tc.in); got != tc.want {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEqualExact(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"case insensitive", "jane doe", "Jane DOE", true},
		{"accent insensitive", "José Núñez", "Jose Nunez", true},
		{"composed and decomposed forms agree", "Jos\u00e9 Doe", "Jose\u0301 Doe", true},
		{"different names", "Jane Doe", "John Doe", false},
		{"both empty never match", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EqualExact(tc.a, tc.b); got != tc.want {
				t.Fatalf("EqualExact(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestEqualFuzzy(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"nickname prefix", "Rob Smith", "Robert Smith", true},
		{"same prefix different first", "Alan Park", "Alex Park", true}, // loose rule, accepted
		{"different last token", "Robert Jones", "Robert Smith", false},
		{"short first token", "J Smith", "Jane Smith", false},
		{"single token", "Smith", "Jane Smith", false},
		{"middle name keeps last", "Jane Anne Doe", "Jan Doe", true},
		{"case and accents folded first", "RÓB Smith", "robert smith", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EqualFuzzy(tc.a, tc.b); got != tc.want {
				t.Fatalf("EqualFuzzy(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestMatchPrefersExact(t *testing.T) {
	if got := Match("Jane Doe", "jane doe"); got != Exact {
		t.Fatalf("want Exact, got %v", got)
	}
	if got := Match("Rob Smith", "Robert Smith"); got != Fuzzy {
		t.Fatalf("want Fuzzy, got %v", got)
	}
	if got := Match("Jane Doe", "John Roe"); got != None {
		t.Fatalf("want None, got %v", got)
	}
	if Exact.String() != "exact" || Fuzzy.String() != "fuzzy" || None.String() != "none" {
		t.Fatal("kind labels drifted")
	}
}
