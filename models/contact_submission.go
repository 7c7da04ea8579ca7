package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project types offered by the contact form
const (
	ProjectTypeCustomHome   = "custom-home"
	ProjectTypeBarndominium = "barndominium"
	ProjectTypeRenovation   = "renovation"
	ProjectTypeKitchenBath  = "kitchen-bath"
	ProjectTypeAdditions    = "additions"
	ProjectTypeOther        = "other"
)

// ProjectTypes lists the accepted projectType values in form order
var ProjectTypes = []string{
	ProjectTypeCustomHome,
	ProjectTypeBarndominium,
	ProjectTypeRenovation,
	ProjectTypeKitchenBath,
	ProjectTypeAdditions,
	ProjectTypeOther,
}

func IsValidProjectType(value string) bool {
	for _, t := range ProjectTypes {
		if t == value {
			return true
		}
	}
	return false
}

const (
	RelayStatusPending   = "pending"
	RelayStatusSubmitted = "submitted"
	RelayStatusFailed    = "failed"
)

// ContactSubmission is an inquiry sent through the contact form
type ContactSubmission struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FirstName   string    `json:"firstName" db:"first_name" gorm:"type:text;not null"`
	LastName    string    `json:"lastName" db:"last_name" gorm:"type:text;not null"`
	Email       string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone       *string   `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	ProjectType string    `json:"projectType" db:"project_type" gorm:"type:text;not null"`
	Message     string    `json:"message" db:"message" gorm:"type:text;not null"`
	RelayStatus string    `json:"relayStatus" db:"relay_status" gorm:"type:text;not null;default:'pending'"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

func (s *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.RelayStatus == "" {
		s.RelayStatus = RelayStatusPending
	}
	return nil
}

// FullName joins first and last name
func (s ContactSubmission) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
