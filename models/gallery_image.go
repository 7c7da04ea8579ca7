package models

// GalleryImage is a single photo belonging to a Project
type GalleryImage struct {
	ID          int     `json:"id" yaml:"id" db:"id" gorm:"primaryKey;autoIncrement:false"`
	ProjectID   string  `json:"projectId" yaml:"projectId" db:"project_id" gorm:"type:text;not null;index:idx_gallery_image_project_id"`
	ImageURL    string  `json:"imageUrl" yaml:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	Title       *string `json:"title,omitempty" yaml:"title,omitempty" db:"title" gorm:"type:text"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty" db:"description" gorm:"type:text"`
	Featured    bool    `json:"featured" yaml:"featured,omitempty" db:"featured" gorm:"not null;default:false"`
	Position    int     `json:"-" yaml:"-" db:"position" gorm:"type:integer;not null;default:0;index"`

	Project *Project `json:"-" yaml:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
