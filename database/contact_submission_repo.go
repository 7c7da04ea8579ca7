package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/signature-homes-backend/models"
	"gorm.io/gorm"
)

type ContactSubmissionRepo struct {
	db *gorm.DB
}

func NewContactSubmissionRepo(db *gorm.DB) *ContactSubmissionRepo {
	return &ContactSubmissionRepo{db}
}

// Add inserts a new submission; the ID is generated when empty
func (r *ContactSubmissionRepo) Add(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}

// UpdateStatus records the outcome of relaying the submission
func (r *ContactSubmissionRepo) UpdateStatus(id uuid.UUID, status string) error {
	result := r.db.Model(&models.ContactSubmission{}).Where("id = ?", id).Update("relay_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContactSubmissionRepo) FindByID(id uuid.UUID) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	if err := r.db.First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// FindRecent returns the newest submissions first
func (r *ContactSubmissionRepo) FindRecent(limit int) ([]models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	err := r.db.Order("created_at DESC").Limit(limit).Find(&submissions).Error
	return submissions, err
}
