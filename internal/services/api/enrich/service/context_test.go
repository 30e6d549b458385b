package service

import (
	"strings"
	"testing"

	"mingle/internal/adapters/search"
)

func TestBuildContextOrdering(t *testing.T) {
	resp := search.Response{
		Answer: "Jane is an engineer at Acme.",
		Results: []search.Result{
			{Content: "snippet one"},
			{Content: "snippet two"},
		},
	}
	sc := buildContext(resp, "I lead the data platform team.")

	iAbout := strings.Index(sc.Text, "I lead the data platform team.")
	iAnswer := strings.Index(sc.Text, "Jane is an engineer at Acme.")
	iSnip := strings.Index(sc.Text, "snippet one")
	if iAbout < 0 || iAnswer < 0 || iSnip < 0 {
		t.Fatalf("missing sections in context: %q", sc.Text)
	}
	if !(iAbout < iAnswer && iAnswer < iSnip) {
		t.Fatalf("want about before answer before snippets, got %q", sc.Text)
	}
	if sc.Limited {
		t.Fatal("context with this much text should not be limited")
	}
	if sc.Sources != 2 {
		t.Fatalf("want 2 sources, got %d", sc.Sources)
	}
}

func TestBuildContextCapsSnippets(t *testing.T) {
	resp := search.Response{
		Results: []search.Result{
			{Content: "one"}, {Content: "two"}, {Content: "three"}, {Content: "four"},
		},
	}
	sc := buildContext(resp, "a long enough self description that clears the limited threshold easily for sure")
	if strings.Contains(sc.Text, "four") {
		t.Fatalf("only 3 snippets should be included: %q", sc.Text)
	}
	if sc.Sources != 4 {
		t.Fatalf("sources should count all results, got %d", sc.Sources)
	}
}

func TestBuildContextTruncatesSnippets(t *testing.T) {
	long := strings.Repeat("x", 1000)
	sc := buildContext(search.Response{Results: []search.Result{{Content: long}}}, "")
	if strings.Contains(sc.Text, strings.Repeat("x", snippetLimit+1)) {
		t.Fatal("snippet should be truncated")
	}
	if !strings.Contains(sc.Text, strings.Repeat("x", snippetLimit)) {
		t.Fatal("truncated snippet should keep the limit prefix")
	}
}

func TestBuildContextLimitedWhenThin(t *testing.T) {
	sc := buildContext(search.Response{}, "")
	if !sc.Limited {
		t.Fatal("empty context must be limited")
	}

	sc = buildContext(search.Response{Answer: "short"}, "")
	if !sc.Limited {
		t.Fatal("tiny context must be limited")
	}
}
