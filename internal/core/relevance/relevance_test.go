package relevance

import "testing"

func TestScoreNameTokens(t *testing.T) {
	q := Query{Name: "Jane Q Doe"}
	c := Candidate{Title: "Jane Doe - Engineer", Snippet: "profile"}
	// "jane" and "doe" hit, "q" is too short to count
	if got := Score(q, c); got != 20 {
		t.Fatalf("want 20, got %d", got)
	}
}

func TestScoreJobTitleTokens(t *testing.T) {
	q := Query{JobTitle: "Staff Engineer"}
	c := Candidate{Title: "Acme", Snippet: "a staff engineer at Acme"}
	if got := Score(q, c); got != 10 {
		t.Fatalf("want 10, got %d", got)
	}
}

func TestScoreCompanyExactBeatsTokens(t *testing.T) {
	q := Query{Company: "Initech Systems"}

	exact := Candidate{Snippet: "works at Initech Systems in Austin"}
	if got := Score(q, exact); got != 15 {
		t.Fatalf("verbatim company: want 15, got %d", got)
	}

	partial := Candidate{Snippet: "Initech is hiring; legacy systems experience"}
	if got := Score(q, partial); got != 6 {
		t.Fatalf("token company: want 6, got %d", got)
	}
}

func TestScoreAccumulates(t *testing.T) {
	q := Query{Name: "Jane Doe", JobTitle: "Engineer", Company: "Initech"}
	c := Candidate{
		Title:   "Jane Doe - Engineer - Initech",
		Snippet: "Jane Doe is an engineer at Initech",
	}
	// 2 name tokens (20) + 1 title token (5) + verbatim company (15)
	if got := Score(q, c); got != 40 {
		t.Fatalf("want 40, got %d", got)
	}
}

func TestBestStableOnTies(t *testing.T) {
	q := Query{Name: "Jane Doe"}
	a := Candidate{URL: "https://linkedin.com/in/a", Title: "Jane Doe"}
	b := Candidate{URL: "https://linkedin.com/in/b", Title: "Jane Doe"}

	best, score, ok := Best(q, []Candidate{a, b})
	if !ok {
		t.Fatal("want ok")
	}
	if best.URL != a.URL {
		t.Fatalf("tie should keep first candidate, got %s", best.URL)
	}
	if score != 20 {
		t.Fatalf("want 20, got %d", score)
	}
}

func TestBestEmpty(t *testing.T) {
	if _, _, ok := Best(Query{}, nil); ok {
		t.Fatal("want ok=false on empty input")
	}
}

func TestFilterProfiles(t *testing.T) {
	in := []Candidate{
		{URL: "https://www.linkedin.com/in/jane-doe"},
		{URL: "https://www.linkedin.com/company/initech"},
		{URL: "https://linkedin.com/in/jdoe2"},
		{URL: "https://example.com/jane"},
	}
	out := FilterProfiles(in)
	if len(out) != 2 {
		t.Fatalf("want 2 profiles, got %d", len(out))
	}
	if out[0].URL != in[0].URL || out[1].URL != in[2].URL {
		t.Fatal("filter should preserve order")
	}
}
