package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"placementprime/internal/models"
	"placementprime/internal/repositories"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, userID, resumeID uuid.UUID, jobDescription string) (*models.AnalyzeResponse, error)
}

type analyzerService struct {
	resumeRepo    repositories.ResumeRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

func NewAnalyzerService(
	resumeRepo repositories.ResumeRepository,
	geminiService GeminiService,
	timeout time.Duration,
) AnalyzerService {
	return &analyzerService{
		resumeRepo:    resumeRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

// Analyze runs the full analysis pipeline for one resume against one job
// description: load, prompt, one model call, tolerant decode, one
// write-back. Nothing is retried or cached; a decode failure leaves the
// resume untouched.
func (s *analyzerService) Analyze(ctx context.Context, userID, resumeID uuid.UUID, jobDescription string) (*models.AnalyzeResponse, error) {
	resume, err := s.resumeRepo.FindByID(resumeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}

	// A foreign-owned resume is indistinguishable from a missing one.
	if resume.UserID != userID {
		return nil, ErrResumeNotFound
	}

	prompt := s.promptBuilder.BuildAnalysisPrompt(resume.Content, jobDescription)
	log.Printf("🤖 Analyzing resume %s (prompt: %d characters)", resumeID, len(prompt))

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.geminiService.GenerateText(callCtx, prompt)
	if err != nil {
		log.Printf("❌ Model call failed for resume %s: %v", resumeID, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	decoded, err := DecodeAnalysis(response)
	if err != nil {
		log.Printf("❌ Undecodable model response for resume %s (%d characters)", resumeID, len(response))
		return nil, err
	}

	if _, err := s.resumeRepo.UpdateAnalysis(
		resumeID,
		decoded.ATSScore,
		datatypes.JSON(decoded.Raw),
		decoded.OptimizedLatex,
	); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	log.Printf("✅ Analysis completed for resume %s (score: %d)", resumeID, decoded.ATSScore)

	return &models.AnalyzeResponse{
		ATSScore:        decoded.ATSScore,
		SectionScores:   decoded.SectionScores,
		MissingKeywords: decoded.MissingKeywords,
		Feedback:        decoded.Feedback,
		OptimizedLatex:  decoded.OptimizedLatex,
	}, nil
}
