package service

import (
	"strings"

	"mingle/internal/adapters/search"
	str "mingle/internal/platform/strings"
)

const (
	// snippetLimit bounds each raw result snippet fed to the prompt
	snippetLimit = 300

	// maxSnippets is how many individual results make it into the context
	maxSnippets = 3

	// minContextLen below this the search told us essentially nothing
	minContextLen = 80
)

// searchContext is what the prompt builder works from
// Limited means the search came back thin and generation must stay generic
type searchContext struct {
	Text    string
	Limited bool
	Sources int
}

// buildContext assembles prompt context in trust order: the attendee's own
// words first, then the synthesized answer, then raw snippets
func buildContext(resp search.Response, about string) searchContext {
	var parts []string

	if a := strings.TrimSpace(about); a != "" {
		parts = append(parts, "Self-description: "+a)
	}
	if ans := strings.TrimSpace(resp.Answer); ans != "" {
		parts = append(parts, "Search summary: "+ans)
	}
	for i, r := range resp.Results {
		if i >= maxSnippets {
			break
		}
		snip := strings.TrimSpace(r.Content)
		if snip == "" {
			continue
		}
		parts = append(parts, "- "+str.Truncate(snip, snippetLimit))
	}

	sc := searchContext{
		Text:    strings.Join(parts, "\n"),
		Sources: len(resp.Results),
	}
	if len(sc.Text) < minContextLen {
		sc.Limited = true
	}
	return sc
}
