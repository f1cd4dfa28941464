package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullAnalysisJSON = `{
  "atsScore": 82,
  "sectionScores": {"skills": 90, "experience": 85, "education": 70, "formatting": 80},
  "missingKeywords": ["Kubernetes"],
  "feedback": "Strong match",
  "optimizedLatex": "\\documentclass{article}"
}`

func TestDecodeAnalysis_FencedBlock(t *testing.T) {
	raw := "Sure! Here is the analysis you asked for:\n\n```json\n" + fullAnalysisJSON + "\n```\n\nLet me know if you need anything else."

	result, err := DecodeAnalysis(raw)
	require.NoError(t, err)

	assert.Equal(t, 82, result.ATSScore)
	assert.Equal(t, 90, result.SectionScores.Skills)
	assert.Equal(t, 85, result.SectionScores.Experience)
	assert.Equal(t, 70, result.SectionScores.Education)
	assert.Equal(t, 80, result.SectionScores.Formatting)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingKeywords)
	assert.Equal(t, "Strong match", result.Feedback)
	assert.Equal(t, "\\documentclass{article}", result.OptimizedLatex)
}

func TestDecodeAnalysis_FencedBlockUppercaseTag(t *testing.T) {
	raw := "```JSON\n" + fullAnalysisJSON + "\n```"

	result, err := DecodeAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, 82, result.ATSScore)
}

func TestDecodeAnalysis_BraceSpanFallback(t *testing.T) {
	raw := "The candidate looks solid overall. " + fullAnalysisJSON + " Hope that helps!"

	result, err := DecodeAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, 82, result.ATSScore)
	assert.Equal(t, "Strong match", result.Feedback)
}

func TestDecodeAnalysis_BrokenFenceFallsBackToBraceSpan(t *testing.T) {
	// The fenced block itself is not valid JSON; the brace span over the
	// whole text still is.
	raw := "```json\nnot actually json {\"atsScore\": 55}\n```"

	result, err := DecodeAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, 55, result.ATSScore)
}

func TestDecodeAnalysis_NoStructure(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not produce a result, sorry.",
		"score: 82, keywords: none",
		"}{",
	} {
		result, err := DecodeAnalysis(raw)
		assert.Nil(t, result, "input %q", raw)
		assert.ErrorIs(t, err, ErrInvalidUpstreamOutput, "input %q", raw)
	}
}

func TestDecodeAnalysis_MissingFieldsSoftFill(t *testing.T) {
	result, err := DecodeAnalysis(`{"atsScore": 40}`)
	require.NoError(t, err)

	assert.Equal(t, 40, result.ATSScore)
	assert.Equal(t, 0, result.SectionScores.Skills)
	assert.Equal(t, 0, result.SectionScores.Formatting)
	assert.NotNil(t, result.MissingKeywords)
	assert.Empty(t, result.MissingKeywords)
	assert.Equal(t, "", result.Feedback)
	assert.Equal(t, "", result.OptimizedLatex)
}

func TestDecodeAnalysis_MissingFeedbackOnly(t *testing.T) {
	result, err := DecodeAnalysis(`{"atsScore": 70, "missingKeywords": ["Go"], "optimizedLatex": "x"}`)
	require.NoError(t, err)

	assert.Equal(t, "", result.Feedback)
	assert.Equal(t, []string{"Go"}, result.MissingKeywords)
}

func TestDecodeAnalysis_FractionalScoresTruncate(t *testing.T) {
	result, err := DecodeAnalysis(`{"atsScore": 82.6, "sectionScores": {"skills": 90.2}}`)
	require.NoError(t, err)

	assert.Equal(t, 82, result.ATSScore)
	assert.Equal(t, 90, result.SectionScores.Skills)
}

func TestDecodeAnalysis_RawPreservesExtraFields(t *testing.T) {
	raw := `{"atsScore": 10, "vendorNote": "internal"}`

	result, err := DecodeAnalysis(raw)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(result.Raw))
}

func TestExtractBraceSpan(t *testing.T) {
	span, ok := extractBraceSpan(`before {"a": {"b": 1}} after`)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, span)

	_, ok = extractBraceSpan("no braces here")
	assert.False(t, ok)
}
