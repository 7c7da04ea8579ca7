package database

import (
	"github.com/rpupo63/signature-homes-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GalleryImageRepo struct {
	db *gorm.DB
}

func NewGalleryImageRepo(db *gorm.DB) *GalleryImageRepo {
	return &GalleryImageRepo{db}
}

// FindAll returns all gallery images in catalog order
func (r *GalleryImageRepo) FindAll() ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	err := r.db.Order("position ASC").Order("id ASC").Find(&images).Error
	return images, err
}

// FindByProjectID returns the images of one project in catalog order
func (r *GalleryImageRepo) FindByProjectID(projectID string) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	err := r.db.Where("project_id = ?", projectID).Order("position ASC").Order("id ASC").Find(&images).Error
	return images, err
}

func (r *GalleryImageRepo) Upsert(image *models.GalleryImage) error {
	return r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(image).Error
}

func (r *GalleryImageRepo) Delete(id int) error {
	return r.db.Delete(&models.GalleryImage{}, id).Error
}
