package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"mingle/internal/services/api/enrich/domain"
)

// rawResult is the parsed but not yet normalized model output
type rawResult struct {
	Summary []string
	Tags    []string
}

// recoverResult digs a rawResult out of whatever the model returned
// Tiers: direct parse, fenced code block, largest brace substring, then a
// light repair pass over the brace substring. ok is false only when every
// tier failed; the caller then owns the strict retry and the default
func recoverResult(raw string) (rawResult, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return rawResult{}, false
	}

	if r, ok := parseResult(raw); ok {
		return r, true
	}
	if inner := extractFenced(raw); inner != "" {
		if r, ok := parseResult(inner); ok {
			return r, true
		}
	}
	if inner := extractBraces(raw); inner != "" {
		if r, ok := parseResult(inner); ok {
			return r, true
		}
		if r, ok := parseResult(repairJSON(inner)); ok {
			return r, true
		}
	}
	return rawResult{}, false
}

// parseResult decodes field by field so one malformed field does not sink
// the other
func parseResult(s string) (rawResult, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return rawResult{}, false
	}
	var r rawResult
	if v, ok := m["summary"]; ok {
		_ = json.Unmarshal(v, &r.Summary)
	}
	if v, ok := m["industry_tags"]; ok {
		_ = json.Unmarshal(v, &r.Tags)
	}
	return r, true
}

// extractFenced returns the body of the first markdown code fence, if any
func extractFenced(s string) string {
	i := strings.Index(s, "```")
	if i < 0 {
		return ""
	}
	rest := s[i+3:]
	// drop an optional language hint on the fence line
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		head := strings.TrimSpace(rest[:nl])
		if head == "" || head == "json" || head == "JSON" {
			rest = rest[nl+1:]
		}
	}
	j := strings.Index(rest, "```")
	if j < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:j])
}

// extractBraces returns the widest substring from the first { to the last }
func extractBraces(s string) string {
	i := strings.IndexByte(s, '{')
	j := strings.LastIndexByte(s, '}')
	if i < 0 || j <= i {
		return ""
	}
	return s[i : j+1]
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// repairJSON fixes the two malformations models actually produce:
// typographic quotes and trailing commas
func repairJSON(s string) string {
	rep := strings.NewReplacer(
		"“", `"`, // left double quote
		"”", `"`, // right double quote
		"‘", "'",
		"’", "'",
	)
	return trailingComma.ReplaceAllString(rep.Replace(s), "$1")
}

// normalize clamps a recovered result to the output contract: exactly 3
// summary entries, 1 to 3 tags
func normalize(r rawResult, sc searchContext) domain.EnrichOutput {
	summary := cleanList(r.Summary, 3)
	for i := len(summary); i < 3; i++ {
		summary = append(summary, domain.DefaultSummary()[i])
	}

	tags := cleanList(r.Tags, 3)
	if len(tags) == 0 {
		tags = domain.DefaultTags()
	}

	return domain.EnrichOutput{
		Summary:        summary,
		IndustryTags:   tags,
		SourcesFound:   sc.Sources,
		LimitedContext: sc.Limited,
	}
}

// defaultResult is the guaranteed terminal fallback
func defaultResult(sc searchContext) domain.EnrichOutput {
	return domain.EnrichOutput{
		Summary:        domain.DefaultSummary(),
		IndustryTags:   domain.DefaultTags(),
		SourcesFound:   sc.Sources,
		LimitedContext: sc.Limited,
	}
}

func cleanList(in []string, max int) []string {
	out := make([]string, 0, max)
	for _, s := range in {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
