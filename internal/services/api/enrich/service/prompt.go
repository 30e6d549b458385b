package service

import (
	"strings"

	"mingle/internal/services/api/enrich/domain"
)

// buildPrompt embeds the output contract in the instruction text so the
// happy path already matches the schema the recoverer expects
func buildPrompt(in domain.EnrichInput, sc searchContext) string {
	var b strings.Builder

	b.WriteString("You are writing a short networking profile for an event attendee.\n\n")
	b.WriteString("Attendee:\n")
	b.WriteString("- Name: " + in.Name + "\n")
	if in.JobTitle != "" {
		b.WriteString("- Job title: " + in.JobTitle + "\n")
	}
	if in.Company != "" {
		b.WriteString("- Company: " + in.Company + "\n")
	}
	if in.LinkedinURL != "" {
		b.WriteString("- LinkedIn: " + in.LinkedinURL + "\n")
	}

	if sc.Text != "" {
		b.WriteString("\nContext gathered from the attendee and public sources:\n")
		b.WriteString(sc.Text)
		b.WriteString("\n")
	}

	b.WriteString("\nRules:\n")
	b.WriteString("- Write exactly 3 summary bullets of 10 to 20 words each.\n")
	b.WriteString("- Pick 1 to 3 industry tags, only from this list: ")
	b.WriteString(strings.Join(domain.Vocabulary, "; "))
	b.WriteString(".\n")
	b.WriteString("- Treat the self-description as authoritative and never contradict it.\n")
	b.WriteString("- Do not invent employers, titles, or achievements that the context does not support.\n")
	if sc.Limited {
		b.WriteString("- Very little information was found. Keep every bullet generic and do not guess specifics.\n")
	}

	b.WriteString("\nRespond with JSON only, no prose, in this shape:\n")
	b.WriteString(`{"summary": ["...", "...", "..."], "industry_tags": ["..."]}`)
	b.WriteString("\n")

	return b.String()
}

// strictPrompt is the one-shot reissue used when the first response could
// not be parsed at all
func strictPrompt(in domain.EnrichInput, sc searchContext) string {
	var b strings.Builder
	b.WriteString("Return ONLY a valid JSON object and nothing else. ")
	b.WriteString("No markdown, no code fences, no explanation.\n\n")
	b.WriteString(buildPrompt(in, sc))
	return b.String()
}
