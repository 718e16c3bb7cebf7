package models

import (
	"time"
)

// DomesticHelper is a service-provider ("Maushi") profile.
type DomesticHelper struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	FullName    string  `gorm:"size:255;not null" json:"full_name"`
	Gender      *string `gorm:"size:32" json:"gender"`
	Age         *int    `json:"age"`
	Bio         *string `gorm:"type:text" json:"bio"`
	Description *string `gorm:"type:text" json:"description"`

	City     *string `gorm:"size:128;index" json:"city"`
	District *string `gorm:"size:128" json:"district"`
	State    *string `gorm:"size:128" json:"state"`

	ExperienceYears *float64 `json:"experience_years"`
	SalaryMin       *float64 `json:"salary_min"`
	SalaryMax       *float64 `json:"salary_max"`

	HouseCleaning   bool `gorm:"not null;default:false" json:"house_cleaning"`
	ChildCare       bool `gorm:"not null;default:false" json:"child_care"`
	Laundry         bool `gorm:"not null;default:false" json:"laundry"`
	ElderlyCare     bool `gorm:"not null;default:false" json:"elderly_care"`
	PetCare         bool `gorm:"not null;default:false" json:"pet_care"`
	KitchenCleaning bool `gorm:"not null;default:false" json:"kitchen_cleaning"`
	CookOnly        bool `gorm:"not null;default:false" json:"cook_only"`

	Specialties JSON `json:"specialties"`
	Dishes      JSON `json:"dishes"`
	CuisineType JSON `json:"cuisine_type"`
	Services    JSON `json:"services"`
	OtherSkills JSON `json:"other_skills"`

	Images       JSON    `json:"images"`
	FoodImages   JSON    `json:"food_images"`
	ProfilePhoto *string `gorm:"type:text" json:"profile_photo"`

	Phone          *string `gorm:"size:32" json:"phone"`
	AlternatePhone *string `gorm:"size:32" json:"alternate_phone"`
	Whatsapp       *string `gorm:"size:32" json:"whatsapp"`

	WorkingHours            *string `gorm:"size:128" json:"working_hours"`
	PreferredWorkLocations  JSON    `json:"preferred_work_locations"`
	PreferredEmploymentType *string `gorm:"size:64" json:"preferred_employment_type"`

	OwnerID  string `gorm:"size:64;not null;index" json:"owner_id"`
	Verified bool   `gorm:"not null;default:false" json:"verified"`

	CreatedAt time.Time `gorm:"index:idx_domestic_helpers_created_at" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for DomesticHelper
func (DomesticHelper) TableName() string {
	return "domestic_helpers"
}

// HelperCollectionColumns lists the helper columns normalized by the collection migration.
var HelperCollectionColumns = []string{
	"specialties", "dishes", "cuisine_type", "services", "other_skills",
	"images", "food_images", "preferred_work_locations",
}
