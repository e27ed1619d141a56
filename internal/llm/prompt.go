package llm

import (
	"strings"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
)

const maxTranscriptChars = 6000

// BuildSystemPrompt composes the system message: role, controlled
// vocabularies, and strict-but-practical formatting rules. Every enum is
// spelled out so the model has no excuse to invent tokens; the lenient
// mapper still drops whatever it invents anyway.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an analyst for sales-meeting transcripts of Spanish-speaking SMB prospects.",
		"Return ONLY a JSON object that matches the provided JSON Schema. No prose, no markdown fences.",
		"Scalar fields take exactly one token from their enum; list fields take zero or more distinct tokens.",
		"Tokens are UPPERCASE_SPANISH identifiers; copy them exactly as listed.",
		enumLine("industry", constants.DomainIndustry),
		enumLine("businessModel", constants.DomainBusinessModel),
		enumLine("leadSource", constants.DomainLeadSource),
		enumLine("processMaturity", constants.DomainProcessMaturity),
		enumLine("toolingMaturity", constants.DomainToolingMaturity),
		enumLine("knowledgeComplexity", constants.DomainKnowledgeComplexity),
		enumLine("riskLevel", constants.DomainRiskLevel),
		enumLine("urgency", constants.DomainUrgency),
		enumLine("sentiment", constants.DomainSentiment),
		enumLine("jtbdPrimary (list)", constants.DomainJTBD),
		enumLine("painPoints (list)", constants.DomainPainPoint),
		enumLine("integrations (list)", constants.DomainIntegration),
		enumLine("successMetrics (list)", constants.DomainSuccessMetric),
		enumLine("objections (list)", constants.DomainObjection),
		"If the prospect states an interaction volume, include 'volume' as {\"quantity\": number, \"unit\": one of " +
			strings.Join(constants.Tokens(constants.DomainVolumeUnit), ", ") +
			", \"isPeak\": boolean}; isPeak is true only when the figure refers to a high-season peak.",
		"Never output null. If a field cannot be determined from the transcript, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the transcript, truncated to keep token usage
// bounded on unusually long calls.
func BuildUserPrompt(transcript string) string {
	var b strings.Builder
	b.WriteString("Transcript of the sales meeting (Spanish):\n")
	t := strings.TrimSpace(transcript)
	if len(t) > maxTranscriptChars {
		b.WriteString(t[:maxTranscriptChars])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(t)
	}
	return b.String()
}

func enumLine(field string, d constants.Domain) string {
	return "Allowed " + field + " (enum): " + strings.Join(constants.Tokens(d), ", ") + "."
}
