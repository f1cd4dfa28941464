package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus = string

// Tracked application statuses. Any status may move to any other
// status; the set is enforced at the HTTP boundary, not by the store.
const (
	JobStatusNew       JobStatus = "new"
	JobStatusApplied   JobStatus = "applied"
	JobStatusInterview JobStatus = "interview"
	JobStatusRejected  JobStatus = "rejected"
	JobStatusOffer     JobStatus = "offer"
)

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Company     string    `gorm:"type:text;not null" json:"company"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Source      *string   `gorm:"type:text" json:"source,omitempty"`
	URL         *string   `gorm:"type:text" json:"url,omitempty"`
	MatchScore  *int      `gorm:"column:match_score" json:"matchScore,omitempty"`
	Status      JobStatus `gorm:"type:text;not null;default:'new'" json:"status"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}
