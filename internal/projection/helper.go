package projection

import (
	"strings"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
	"github.com/roomfinder/roomfinder-api/internal/storage"
)

// NegotiableSalary is shown when no salary column is set.
const NegotiableSalary = "Negotiable"

// skillFlags maps boolean skill columns to service labels, in display order.
var skillFlags = []struct {
	Column string
	Label  string
}{
	{"house_cleaning", "House Cleaning"},
	{"child_care", "Child Care"},
	{"laundry", "Laundry"},
	{"elderly_care", "Elderly Care"},
	{"pet_care", "Pet Care"},
	{"kitchen_cleaning", "Kitchen Cleaning"},
	{"cook_only", "Cooking Only"},
}

// HelperView is a domestic helper profile as rendered by listing and profile pages.
type HelperView struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	Gender          string   `json:"gender"`
	Age             *int     `json:"age"`
	Bio             string   `json:"bio"`
	City            string   `json:"city"`
	District        string   `json:"district"`
	State           string   `json:"state"`
	Location        string   `json:"location"`
	ExperienceYears *float64 `json:"experience_years"`

	// Salary is a number, or the string "Negotiable".
	Salary    any      `json:"salary"`
	SalaryMax *float64 `json:"salary_max"`

	Specialties  []string `json:"specialties"`
	Services     []string `json:"services"`
	OtherSkills  []string `json:"other_skills"`
	Images       []string `json:"images"`
	ProfilePhoto string   `json:"profile_photo"`

	Phone                   string   `json:"phone"`
	AlternatePhone          string   `json:"alternate_phone"`
	Whatsapp                string   `json:"whatsapp"`
	WorkingHours            string   `json:"working_hours"`
	PreferredWorkLocations  []string `json:"preferred_work_locations"`
	PreferredEmploymentType string   `json:"preferred_employment_type"`

	Rating    float64 `json:"rating"`
	Verified  bool    `json:"verified"`
	OwnerID   string  `json:"owner_id"`
	CreatedAt any     `json:"created_at"`
}

// Helper projects a domestic_helpers row. Cuisine data and services were written
// under different column names over time, so both are unions of those columns.
func Helper(row models.Row, resolver *storage.Resolver) HelperView {
	photo := firstNonBlank(list(row, "profile_photo"))

	v := HelperView{
		ID:              text(row, "id"),
		FullName:        firstString(row, "full_name", "name"),
		Gender:          text(row, "gender"),
		Age:             normalize.ToInt(row["age"]),
		Bio:             firstString(row, "bio", "description"),
		City:            text(row, "city"),
		District:        text(row, "district"),
		State:           text(row, "state"),
		Location:        firstString(row, "city", "district", "state"),
		ExperienceYears: number(row, "experience_years"),
		Salary:          salary(row),
		SalaryMax:       number(row, "salary_max"),

		Specialties: concat(row, "specialties", "dishes", "cuisine_type"),
		Services:    services(row),
		OtherSkills: list(row, "other_skills"),
		Images:      helperImages(row, photo, resolver),

		Phone:                   text(row, "phone"),
		AlternatePhone:          text(row, "alternate_phone"),
		Whatsapp:                text(row, "whatsapp"),
		WorkingHours:            text(row, "working_hours"),
		PreferredWorkLocations:  list(row, "preferred_work_locations"),
		PreferredEmploymentType: text(row, "preferred_employment_type"),

		Rating:    rating(row),
		Verified:  normalize.ToBool(row["verified"]),
		OwnerID:   text(row, "owner_id"),
		CreatedAt: row["created_at"],
	}
	v.ProfilePhoto = resolver.ResolvePublicURL(photo, storage.BucketHelperImages)
	return v
}

// Helpers projects each row in order.
func Helpers(rows []models.Row, resolver *storage.Resolver) []HelperView {
	out := make([]HelperView, 0, len(rows))
	for _, row := range rows {
		out = append(out, Helper(row, resolver))
	}
	return out
}

func salary(row models.Row) any {
	v := first(row, "salary_min", "salary", "expected_salary")
	if v == nil {
		return NegotiableSalary
	}
	if f := normalize.ToNumber(v); f != nil {
		return *f
	}
	return strings.TrimSpace(normalize.ToString(v))
}

func services(row models.Row) []string {
	out := concat(row, "services", "offerings", "preferred_work", "preferred_work_type")
	for _, flag := range skillFlags {
		if normalize.ToBool(row[flag.Column]) {
			out = append(out, flag.Label)
		}
	}
	return out
}

// helperImages orders food photos first, then general images, then the profile photo.
func helperImages(row models.Row, photo string, resolver *storage.Resolver) []string {
	refs := concat(row, "food_images", "images")
	if photo != "" {
		refs = append(refs, photo)
	}
	images := resolver.ResolveAll(refs, storage.BucketHelperImages)
	if len(images) == 0 {
		return []string{storage.Placeholder}
	}
	return images
}

func firstNonBlank(items []string) string {
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
