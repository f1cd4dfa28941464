package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirebaseUID string    `gorm:"type:text;uniqueIndex;not null" json:"firebaseUid"`
	Email       string    `gorm:"type:text;not null" json:"email"`
	Name        *string   `gorm:"type:text" json:"name,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
