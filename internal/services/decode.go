package services

import (
	"encoding/json"
	"strings"

	"placementprime/internal/models"
)

// DecodedAnalysis is the structured result recovered from a raw model
// response. Raw holds the JSON object exactly as extracted, so the full
// payload can be persisted even when it carries fields beyond the ones
// echoed to the caller.
type DecodedAnalysis struct {
	ATSScore        int
	SectionScores   models.SectionScores
	MissingKeywords []string
	Feedback        string
	OptimizedLatex  string
	Raw             json.RawMessage
}

// DecodeAnalysis turns a free-form model response into a DecodedAnalysis.
// The model is asked for bare JSON but routinely wraps it in prose or
// markdown anyway, so extraction is layered: a ```json fenced block first,
// then the span between the first '{' and the last '}'. Only when neither
// yields parseable JSON does decoding fail. Fields absent from an otherwise
// parseable object are filled with zero values rather than rejected.
func DecodeAnalysis(text string) (*DecodedAnalysis, error) {
	if block, ok := extractFencedBlock(text); ok {
		if result, err := parseAnalysis(block); err == nil {
			return result, nil
		}
	}

	if span, ok := extractBraceSpan(text); ok {
		if result, err := parseAnalysis(span); err == nil {
			return result, nil
		}
	}

	return nil, ErrInvalidUpstreamOutput
}

// extractFencedBlock returns the interior of the first ```json fenced
// code block, if any.
func extractFencedBlock(text string) (string, bool) {
	lower := strings.ToLower(text)
	start := strings.Index(lower, "```json")
	if start < 0 {
		return "", false
	}

	rest := text[start+len("```json"):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// extractBraceSpan returns the substring from the first '{' to the last
// '}' inclusive.
func extractBraceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < 0 || end <= start {
		return "", false
	}

	return text[start : end+1], true
}

func parseAnalysis(jsonStr string) (*DecodedAnalysis, error) {
	var payload struct {
		ATSScore      *float64 `json:"atsScore"`
		SectionScores *struct {
			Skills     *float64 `json:"skills"`
			Experience *float64 `json:"experience"`
			Education  *float64 `json:"education"`
			Formatting *float64 `json:"formatting"`
		} `json:"sectionScores"`
		MissingKeywords []string `json:"missingKeywords"`
		Feedback        *string  `json:"feedback"`
		OptimizedLatex  *string  `json:"optimizedLatex"`
	}

	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, err
	}

	result := &DecodedAnalysis{
		ATSScore:        numberOrZero(payload.ATSScore),
		MissingKeywords: payload.MissingKeywords,
		Feedback:        stringOrEmpty(payload.Feedback),
		OptimizedLatex:  stringOrEmpty(payload.OptimizedLatex),
		Raw:             json.RawMessage(jsonStr),
	}

	if payload.SectionScores != nil {
		result.SectionScores = models.SectionScores{
			Skills:     numberOrZero(payload.SectionScores.Skills),
			Experience: numberOrZero(payload.SectionScores.Experience),
			Education:  numberOrZero(payload.SectionScores.Education),
			Formatting: numberOrZero(payload.SectionScores.Formatting),
		}
	}

	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}

	return result, nil
}

func numberOrZero(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
