package models

// Project is a completed build shown in the gallery project selector
type Project struct {
	ID             string  `json:"id" yaml:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name           string  `json:"name" yaml:"name" db:"name" gorm:"type:text;not null"`
	Description    *string `json:"description,omitempty" yaml:"description,omitempty" db:"description" gorm:"type:text"`
	Category       string  `json:"category,omitempty" yaml:"category,omitempty" db:"category" gorm:"type:text;not null;default:'';index"`
	Featured       bool    `json:"featured" yaml:"featured,omitempty" db:"featured" gorm:"not null;default:false"`
	CompletionDate string  `json:"completionDate" yaml:"completionDate" db:"completion_date" gorm:"type:text;not null"`
	Location       *string `json:"location,omitempty" yaml:"location,omitempty" db:"location" gorm:"type:text"`
	Position       int     `json:"-" yaml:"-" db:"position" gorm:"type:integer;not null;default:0;index"`
}

// Project categories offered by the projects page filter
const (
	CategoryAll          = "all"
	CategoryCustomHomes  = "custom-homes"
	CategoryBarndominium = "barndominiums"
	CategoryRenovations  = "renovations"
)

type ProjectCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ProjectCategories in the order the filter tabs show them, "all" excluded
var ProjectCategories = []ProjectCategory{
	{ID: CategoryCustomHomes, Label: "Custom Homes"},
	{ID: CategoryBarndominium, Label: "Barndominiums"},
	{ID: CategoryRenovations, Label: "Home Renovations"},
}

func IsValidProjectCategory(category string) bool {
	for _, c := range ProjectCategories {
		if c.ID == category {
			return true
		}
	}
	return false
}
