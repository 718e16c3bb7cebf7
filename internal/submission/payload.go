package submission

import (
	"strings"
	"time"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
	"github.com/roomfinder/roomfinder-api/internal/types"
)

// Every payload key is always present; an unset field is an explicit nil so the
// store writes NULL rather than skipping the column.

func optString(v any) any {
	s := strings.TrimSpace(normalize.ToString(v))
	if s == "" {
		return nil
	}
	return s
}

func optNumber(v any) any {
	if n := normalize.ToNumber(v); n != nil {
		return *n
	}
	return nil
}

func optInt(v any) any {
	if n := normalize.ToInt(v); n != nil {
		return *n
	}
	return nil
}

func optList(items []string) any {
	if items == nil {
		return nil
	}
	return normalize.ToStringList(items)
}

// merge appends uploaded URLs to the URLs already present in the form.
func merge(existing types.FlexList, uploaded []string) any {
	if existing == nil && len(uploaded) == 0 {
		return nil
	}
	out := make([]string, 0, len(existing)+len(uploaded))
	for _, s := range existing {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return append(out, uploaded...)
}

func createdAt(raw string, now time.Time) time.Time {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

// BuildPropertyPayload maps the form onto properties columns. owner_id is always the
// session user; the form cannot carry one.
func BuildPropertyPayload(id string, session *types.Session, form *PropertyForm, uploaded map[string][]string, now time.Time) models.Row {
	return models.Row{
		"id":            id,
		"title":         strings.TrimSpace(form.Title),
		"description":   optString(form.Description),
		"property_type": optString(form.PropertyType),
		"bhk":           optString(form.BHK),
		"flooring":      optString(form.Flooring),
		"kitchen_type":  optString(form.KitchenType),

		"state":        optString(form.State),
		"district":     optString(form.District),
		"city":         strings.TrimSpace(form.City),
		"area":         optString(form.Area),
		"full_address": optString(form.FullAddress),
		"pincode":      optString(form.Pincode),

		"doors":        optInt(form.Doors),
		"windows":      optInt(form.Windows),
		"balcony":      normalize.ToBool(form.Balcony),
		"roof_access":  normalize.ToBool(form.RoofAccess),
		"water_system": optString(form.WaterSystem),
		"electricity":  optString(form.Electricity),
		"parking":      optString(form.Parking),

		"monthly_rent":     optNumber(form.MonthlyRent),
		"security_deposit": optNumber(form.SecurityDeposit),
		"price":            optNumber(form.Price),

		"amenities":         optList(form.Amenities.Slice()),
		"furniture":         optList(form.Furniture.Slice()),
		"preferred_tenants": optList(form.PreferredTenants.Slice()),
		"rules":             optList(form.Rules.Slice()),
		"images":            merge(form.Images, uploaded[FieldImages]),

		"maushi_available": normalize.ToBool(form.MaushiAvailable),
		"maushi_cost":      optNumber(form.MaushiCost),

		"owner_id":        session.UserID,
		"owner_name":      optString(form.OwnerName),
		"phone":           optString(form.Phone),
		"alternate_phone": optString(form.AlternatePhone),

		"status":     models.StatusAvailable,
		"verified":   false,
		"created_at": createdAt(form.CreatedAt, now),
		"updated_at": now.UTC(),
	}
}

// BuildHelperPayload maps the form onto domestic_helpers columns. An uploaded profile
// photo replaces any URL given in the form.
func BuildHelperPayload(id string, session *types.Session, form *HelperForm, uploaded map[string][]string, now time.Time) models.Row {
	photo := optString(form.ProfilePhoto)
	if up := uploaded[FieldProfilePhoto]; len(up) > 0 {
		photo = up[0]
	}

	return models.Row{
		"id":          id,
		"full_name":   strings.TrimSpace(form.FullName),
		"gender":      optString(form.Gender),
		"age":         optInt(form.Age),
		"bio":         optString(form.Bio),
		"description": optString(form.Description),

		"city":     strings.TrimSpace(form.City),
		"district": optString(form.District),
		"state":    optString(form.State),

		"experience_years": optNumber(form.ExperienceYears),
		"salary_min":       optNumber(form.SalaryMin),
		"salary_max":       optNumber(form.SalaryMax),

		"house_cleaning":   normalize.ToBool(form.HouseCleaning),
		"child_care":       normalize.ToBool(form.ChildCare),
		"laundry":          normalize.ToBool(form.Laundry),
		"elderly_care":     normalize.ToBool(form.ElderlyCare),
		"pet_care":         normalize.ToBool(form.PetCare),
		"kitchen_cleaning": normalize.ToBool(form.KitchenCleaning),
		"cook_only":        normalize.ToBool(form.CookOnly),

		"specialties":  optList(form.Specialties.Slice()),
		"dishes":       optList(form.Dishes.Slice()),
		"cuisine_type": optList(form.CuisineType.Slice()),
		"services":     optList(form.Services.Slice()),
		"other_skills": optList(form.OtherSkills.Slice()),

		"images":        merge(form.Images, uploaded[FieldImages]),
		"food_images":   merge(form.FoodImages, uploaded[FieldFoodImages]),
		"profile_photo": photo,

		"phone":           strings.TrimSpace(form.Phone),
		"alternate_phone": optString(form.AlternatePhone),
		"whatsapp":        optString(form.Whatsapp),

		"working_hours":             optString(form.WorkingHours),
		"preferred_work_locations":  optList(form.PreferredWorkLocations.Slice()),
		"preferred_employment_type": optString(form.PreferredEmploymentType),

		"owner_id":   session.UserID,
		"verified":   false,
		"created_at": now.UTC(),
		"updated_at": now.UTC(),
	}
}
