package models

type SyncUserRequest struct {
	FirebaseUID string  `json:"firebaseUid" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Name        *string `json:"name,omitempty"`
}

type CreateResumeRequest struct {
	Title            string  `json:"title" validate:"required"`
	Content          string  `json:"content" validate:"required"`
	OriginalFilename *string `json:"originalFilename,omitempty"`
}

type AnalyzeRequest struct {
	ResumeID       string `json:"resumeId" validate:"required,uuid"`
	JobDescription string `json:"jobDescription" validate:"required"`
}

type SectionScores struct {
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Formatting int `json:"formatting"`
}

type AnalyzeResponse struct {
	ATSScore        int           `json:"atsScore"`
	SectionScores   SectionScores `json:"sectionScores"`
	MissingKeywords []string      `json:"missingKeywords"`
	Feedback        string        `json:"feedback"`
	OptimizedLatex  string        `json:"optimizedLatex"`
}

type UploadTextResponse struct {
	Text string `json:"text"`
}

type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required"`
	Company     string  `json:"company" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Source      *string `json:"source,omitempty"`
	URL         *string `json:"url,omitempty" validate:"omitempty,url"`
	MatchScore  *int    `json:"matchScore,omitempty" validate:"omitempty,min=0,max=100"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=new applied interview rejected offer"`
}

type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Description *string `json:"description,omitempty"`
	Source      *string `json:"source,omitempty"`
	URL         *string `json:"url,omitempty" validate:"omitempty,url"`
	MatchScore  *int    `json:"matchScore,omitempty" validate:"omitempty,min=0,max=100"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=new applied interview rejected offer"`
}

type RecommendRequest struct {
	ResumeID string `json:"resumeId" validate:"required,uuid"`
}

type RecommendedJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Source      string `json:"source"`
	MatchScore  int    `json:"matchScore"`
}
