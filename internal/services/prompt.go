package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the prompt for resume-vs-job-description
// analysis. The output contract names every field the decoder expects.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeContent, jobDescription string) string {
	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) and Resume Coach.
Analyze the following resume against the provided job description.

RESUME CONTENT:
%s

JOB DESCRIPTION:
%s

Provide the output in valid JSON format with the following structure:
{
  "atsScore": number (0-100),
  "sectionScores": {
    "skills": number (0-100),
    "experience": number (0-100),
    "education": number (0-100),
    "formatting": number (0-100)
  },
  "missingKeywords": string[],
  "feedback": "Detailed feedback string",
  "optimizedLatex": "The optimized resume in LaTeX format. Ensure it is valid LaTeX code that compiles. Never leave this empty."
}

Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.`,
		resumeContent, jobDescription)
}
