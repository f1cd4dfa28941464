package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Resume stores the raw text submitted by the user plus the analysis
// fields written back by the orchestrator. The three analysis columns
// are either all null (unanalyzed) or all populated (analyzed); they
// are only ever written together in a single update.
type Resume struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	Title            string         `gorm:"type:text;not null" json:"title"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	OriginalFilename *string        `gorm:"type:text" json:"originalFilename,omitempty"`
	ATSScore         *int           `gorm:"column:ats_score" json:"atsScore"`
	AnalysisJSON     datatypes.JSON `gorm:"column:analysis_json;type:jsonb" json:"analysisJson,omitempty"`
	LatexContent     *string        `gorm:"type:text" json:"latexContent,omitempty"`
	CreatedAt        time.Time      `gorm:"type:timestamp;default:now()" json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Resume) TableName() string {
	return "resumes"
}
