package models

import (
	"time"
)

// Property is a room or apartment listing. Nullable columns are pointers so the
// insert payload can carry explicit NULLs. Collection columns hold JSON; rows
// written by older clients may contain JSON-encoded or comma-separated text.
type Property struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  *string `gorm:"type:text" json:"description"`
	PropertyType *string `gorm:"size:64" json:"property_type"`
	BHK          *string `gorm:"column:bhk;size:32" json:"bhk"`
	Flooring     *string `gorm:"size:64" json:"flooring"`
	KitchenType  *string `gorm:"size:64" json:"kitchen_type"`

	State       *string `gorm:"size:128;index" json:"state"`
	District    *string `gorm:"size:128;index" json:"district"`
	City        *string `gorm:"size:128;index" json:"city"`
	Area        *string `gorm:"size:255" json:"area"`
	FullAddress *string `gorm:"type:text" json:"full_address"`
	Pincode     *string `gorm:"size:16" json:"pincode"`

	Doors       *int    `json:"doors"`
	Windows     *int    `json:"windows"`
	Balcony     bool    `gorm:"not null;default:false" json:"balcony"`
	RoofAccess  bool    `gorm:"not null;default:false" json:"roof_access"`
	WaterSystem *string `gorm:"size:128" json:"water_system"`
	Electricity *string `gorm:"size:128" json:"electricity"`
	Parking     *string `gorm:"size:128" json:"parking"`

	MonthlyRent     *float64 `json:"monthly_rent"`
	SecurityDeposit *float64 `json:"security_deposit"`
	Price           *float64 `json:"price"`

	Amenities        JSON `json:"amenities"`
	Furniture        JSON `json:"furniture"`
	PreferredTenants JSON `json:"preferred_tenants"`
	Rules            JSON `json:"rules"`
	Images           JSON `json:"images"`

	MaushiAvailable bool     `gorm:"not null;default:false" json:"maushi_available"`
	MaushiCost      *float64 `json:"maushi_cost"`

	OwnerID        string  `gorm:"size:64;not null;index" json:"owner_id"`
	OwnerName      *string `gorm:"size:255" json:"owner_name"`
	Phone          *string `gorm:"size:32" json:"phone"`
	AlternatePhone *string `gorm:"size:32" json:"alternate_phone"`

	Status   string `gorm:"size:32;not null;default:available" json:"status"`
	Verified bool   `gorm:"not null;default:false" json:"verified"`

	CreatedAt time.Time `gorm:"index:idx_properties_created_at" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}

// Property listing statuses
const (
	StatusAvailable = "available"
	StatusOccupied  = "occupied"
	StatusInactive  = "inactive"
)

// ValidStatus reports whether s is a listing status owners may set.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusInactive:
		return true
	}
	return false
}

// PropertyCollectionColumns lists the columns whose stored representation drifted
// between arrays, JSON text and CSV text.
var PropertyCollectionColumns = []string{"amenities", "furniture", "preferred_tenants", "rules", "images"}
