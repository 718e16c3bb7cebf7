package projection

import (
	"strings"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
	"github.com/roomfinder/roomfinder-api/internal/storage"
)

// PropertyView is a listing as rendered by browse and detail pages.
type PropertyView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	FullLocation string   `json:"full_location"`
	Type         string   `json:"type"`
	Sharing      string   `json:"sharing"`
	Features     []string `json:"features"`
	Images       []string `json:"images"`
	Rating       float64  `json:"rating"`
	Owner        string   `json:"owner"`
	Verified     bool     `json:"verified"`
	Status       string   `json:"status"`

	PropertyType     string   `json:"property_type"`
	BHK              string   `json:"bhk"`
	City             string   `json:"city"`
	District         string   `json:"district"`
	State            string   `json:"state"`
	Area             string   `json:"area"`
	Pincode          string   `json:"pincode"`
	MonthlyRent      *float64 `json:"monthly_rent"`
	SecurityDeposit  *float64 `json:"security_deposit"`
	MaushiAvailable  bool     `json:"maushi_available"`
	MaushiCost       *float64 `json:"maushi_cost"`
	Amenities        []string `json:"amenities"`
	Furniture        []string `json:"furniture"`
	PreferredTenants []string `json:"preferred_tenants"`
	Rules            []string `json:"rules"`
	Phone            string   `json:"phone"`
	OwnerID          string   `json:"owner_id"`
	CreatedAt        any      `json:"created_at"`
}

// Property projects a properties row. Missing and legacy-named columns fall back
// along fixed chains; collection columns may be arrays, JSON text or CSV text.
func Property(row models.Row, resolver *storage.Resolver) PropertyView {
	amenities := list(row, "amenities")
	furniture := list(row, "furniture")
	tenants := list(row, "preferred_tenants")

	v := PropertyView{
		ID:          text(row, "id"),
		Title:       text(row, "title"),
		Description: text(row, "description"),
		Location:    firstString(row, "full_address", "city", "state"),
		FullLocation: joinNonBlank(", ",
			text(row, "area"), text(row, "city"), text(row, "district"), text(row, "state")),
		Type:     propertyType(row),
		Sharing:  firstString(row, "sharing"),
		Features: append(append([]string{}, amenities...), furniture...),
		Images:   resolver.ResolveAll(propertyImages(row), storage.BucketPropertyImages),
		Rating:   rating(row),
		Owner:    firstString(row, "owner_name"),
		Verified: normalize.ToBool(row["verified"]),
		Status:   firstString(row, "status"),

		PropertyType:     text(row, "property_type"),
		BHK:              text(row, "bhk"),
		City:             text(row, "city"),
		District:         text(row, "district"),
		State:            text(row, "state"),
		Area:             text(row, "area"),
		Pincode:          text(row, "pincode"),
		MonthlyRent:      number(row, "monthly_rent"),
		SecurityDeposit:  number(row, "security_deposit"),
		MaushiAvailable:  normalize.ToBool(row["maushi_available"]),
		MaushiCost:       number(row, "maushi_cost"),
		Amenities:        amenities,
		Furniture:        furniture,
		PreferredTenants: tenants,
		Rules:            list(row, "rules"),
		Phone:            text(row, "phone"),
		OwnerID:          text(row, "owner_id"),
		CreatedAt:        row["created_at"],
	}

	if p := normalize.ToNumber(first(row, "price", "monthly_rent")); p != nil {
		v.Price = *p
	}
	if v.Sharing == "" && len(tenants) > 0 {
		v.Sharing = strings.Join(tenants, ", ")
	}
	if v.Status == "" {
		v.Status = models.StatusAvailable
	}
	return v
}

// Properties projects each row in order.
func Properties(rows []models.Row, resolver *storage.Resolver) []PropertyView {
	out := make([]PropertyView, 0, len(rows))
	for _, row := range rows {
		out = append(out, Property(row, resolver))
	}
	return out
}

func propertyType(row models.Row) string {
	bhk := firstString(row, "bhk")
	if bhk == "" {
		return "Room"
	}
	if strings.Contains(strings.ToLower(bhk), "bhk") {
		return bhk
	}
	return bhk + "BHK"
}

// propertyImages keeps a lone scalar reference instead of dropping it.
func propertyImages(row models.Row) []string {
	return list(row, "images")
}
