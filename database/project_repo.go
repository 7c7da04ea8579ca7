package database

import (
	"github.com/rpupo63/signature-homes-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all projects in catalog order
func (r *ProjectRepo) FindAll() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Order("position ASC").Order("id ASC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Upsert inserts the project or updates every column of an existing one
func (r *ProjectRepo) Upsert(project *models.Project) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id string) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
