package submission

import (
	"github.com/roomfinder/roomfinder-api/internal/types"
)

// PropertyForm is the listing form as posted by the UI. Scalar fields arrive as
// strings from HTML inputs or as JSON numbers and booleans, so most are untyped.
// There is deliberately no owner field: ownership comes from the session.
type PropertyForm struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  any    `json:"description"`
	PropertyType any    `json:"propertyType"`
	BHK          any    `json:"bhk"`
	Flooring     any    `json:"flooring"`
	KitchenType  any    `json:"kitchenType"`

	State       any    `json:"state"`
	District    any    `json:"district"`
	City        string `json:"city" validate:"required,max=128"`
	Area        any    `json:"area"`
	FullAddress any    `json:"fullAddress"`
	Pincode     any    `json:"pincode"`

	Doors       any `json:"doors"`
	Windows     any `json:"windows"`
	Balcony     any `json:"balcony"`
	RoofAccess  any `json:"roofAccess"`
	WaterSystem any `json:"waterSystem"`
	Electricity any `json:"electricity"`
	Parking     any `json:"parking"`

	MonthlyRent     any `json:"monthlyRent"`
	SecurityDeposit any `json:"securityDeposit"`
	Price           any `json:"price"`

	Amenities        types.FlexList `json:"amenities"`
	Furniture        types.FlexList `json:"furniture"`
	PreferredTenants types.FlexList `json:"preferredTenants"`
	Rules            types.FlexList `json:"rules"`
	Images           types.FlexList `json:"images"`

	MaushiAvailable any `json:"maushiAvailable"`
	MaushiCost      any `json:"maushiCost"`

	OwnerName      any `json:"ownerName"`
	Phone          any `json:"phone"`
	AlternatePhone any `json:"alternatePhone"`

	CreatedAt string `json:"createdAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// HelperForm is the domestic helper registration form.
type HelperForm struct {
	FullName    string `json:"fullName" validate:"required,max=255"`
	Gender      any    `json:"gender"`
	Age         any    `json:"age"`
	Bio         any    `json:"bio"`
	Description any    `json:"description"`

	City     string `json:"city" validate:"required,max=128"`
	District any    `json:"district"`
	State    any    `json:"state"`

	ExperienceYears any `json:"experienceYears"`
	SalaryMin       any `json:"salaryMin"`
	SalaryMax       any `json:"salaryMax"`

	HouseCleaning   any `json:"houseCleaning"`
	ChildCare       any `json:"childCare"`
	Laundry         any `json:"laundry"`
	ElderlyCare     any `json:"elderlyCare"`
	PetCare         any `json:"petCare"`
	KitchenCleaning any `json:"kitchenCleaning"`
	CookOnly        any `json:"cookOnly"`

	Specialties types.FlexList `json:"specialties"`
	Dishes      types.FlexList `json:"dishes"`
	CuisineType types.FlexList `json:"cuisineType"`
	Services    types.FlexList `json:"services"`
	OtherSkills types.FlexList `json:"otherSkills"`

	Images       types.FlexList `json:"images"`
	FoodImages   types.FlexList `json:"foodImages"`
	ProfilePhoto any            `json:"profilePhoto"`

	Phone          string `json:"phone" validate:"required,max=32"`
	AlternatePhone any    `json:"alternatePhone"`
	Whatsapp       any    `json:"whatsapp"`

	WorkingHours            any            `json:"workingHours"`
	PreferredWorkLocations  types.FlexList `json:"preferredWorkLocations"`
	PreferredEmploymentType any            `json:"preferredEmploymentType"`
}

// Upload form fields
const (
	FieldImages       = "images"
	FieldFoodImages   = "foodImages"
	FieldProfilePhoto = "profilePhoto"
)
