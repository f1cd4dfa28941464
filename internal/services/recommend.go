package services

import "placementprime/internal/models"

// RecommendJobs returns a canned set of job recommendations. There is no
// recommender behind this yet; the endpoint exists so the dashboard has
// something to render.
// TODO: replace with real postings fetched from job board APIs.
func RecommendJobs() []models.RecommendedJob {
	return []models.RecommendedJob{
		{
			Title:       "Senior Full Stack Engineer",
			Company:     "Tech Corp",
			Description: "Looking for React/Node experts...",
			Source:      "LinkedIn",
			MatchScore:  95,
		},
		{
			Title:       "Backend Developer",
			Company:     "Startup Inc",
			Description: "Python/Django role...",
			Source:      "Indeed",
			MatchScore:  88,
		},
	}
}
