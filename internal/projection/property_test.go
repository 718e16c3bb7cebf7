package projection

import (
	"testing"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *storage.Resolver {
	return storage.NewResolver(storage.NewMemoryStore("http://localhost:3000"))
}

func TestPropertyFallbacks(t *testing.T) {
	row := models.Row{"bhk": "2", "monthly_rent": 4500, "full_address": nil, "city": "Gunupur"}
	v := Property(row, testResolver())

	assert.Equal(t, "2BHK", v.Type)
	assert.Equal(t, float64(4500), v.Price)
	assert.Equal(t, "Gunupur", v.Location)
	assert.Equal(t, "Gunupur", v.FullLocation)
	assert.Equal(t, DefaultRating, v.Rating)
	assert.Equal(t, models.StatusAvailable, v.Status)
	assert.False(t, v.Verified)
	assert.Equal(t, []string{}, v.Features)
	assert.Equal(t, []string{}, v.Images)
}

func TestPropertyTypeAlreadyContainsBHK(t *testing.T) {
	assert.Equal(t, "Studio BHK", Property(models.Row{"bhk": "Studio BHK"}, nil).Type)
	assert.Equal(t, "1bhk", Property(models.Row{"bhk": "1bhk"}, nil).Type)
	assert.Equal(t, "3BHK", Property(models.Row{"bhk": float64(3)}, nil).Type)
	assert.Equal(t, "Room", Property(models.Row{"bhk": ""}, nil).Type)
	assert.Equal(t, "Room", Property(models.Row{}, nil).Type)
}

func TestPropertyPriceChain(t *testing.T) {
	assert.Equal(t, float64(5000), Property(models.Row{"price": "5000", "monthly_rent": 4500}, nil).Price)
	assert.Equal(t, float64(4500), Property(models.Row{"price": nil, "monthly_rent": "4500"}, nil).Price)
	assert.Equal(t, float64(0), Property(models.Row{}, nil).Price)
	assert.Equal(t, float64(0), Property(models.Row{"price": "free"}, nil).Price)
}

func TestPropertyLocationChain(t *testing.T) {
	assert.Equal(t, "12 MG Road", Property(models.Row{"full_address": "12 MG Road", "city": "Pune"}, nil).Location)
	assert.Equal(t, "Odisha", Property(models.Row{"full_address": "", "state": "Odisha"}, nil).Location)
	assert.Equal(t, "", Property(models.Row{}, nil).Location)

	v := Property(models.Row{"area": "Station Road", "city": "Gunupur", "district": "Rayagada", "state": "Odisha"}, nil)
	assert.Equal(t, "Station Road, Gunupur, Rayagada, Odisha", v.FullLocation)
}

func TestPropertySharing(t *testing.T) {
	assert.Equal(t, "Double", Property(models.Row{"sharing": "Double", "preferred_tenants": `["Students"]`}, nil).Sharing)
	assert.Equal(t, "Students, Working", Property(models.Row{"preferred_tenants": `["Students","Working"]`}, nil).Sharing)
	assert.Equal(t, "", Property(models.Row{}, nil).Sharing)
}

func TestPropertyFeaturesAmenitiesFirst(t *testing.T) {
	row := models.Row{
		"amenities": `["WiFi","Geyser"]`,
		"furniture": "Bed, Table",
	}
	assert.Equal(t, []string{"WiFi", "Geyser", "Bed", "Table"}, Property(row, nil).Features)
}

func TestPropertyImages(t *testing.T) {
	r := testResolver()

	v := Property(models.Row{"images": `["https://cdn/a.jpg","p1/b.jpg"]`}, r)
	assert.Equal(t, []string{
		"https://cdn/a.jpg",
		"http://localhost:3000/storage/v1/object/public/property-images/p1/b.jpg",
	}, v.Images)

	single := Property(models.Row{"images": "https://cdn/only.jpg"}, r)
	assert.Equal(t, []string{"https://cdn/only.jpg"}, single.Images)

	quoted := Property(models.Row{"images": `"https://cdn/quoted.jpg"`}, r)
	assert.Equal(t, []string{"https://cdn/quoted.jpg"}, quoted.Images)

	numeric := Property(models.Row{"images": int64(7)}, r)
	require.Len(t, numeric.Images, 1)
}

func TestPropertyCollectionsFromStoredText(t *testing.T) {
	row := models.Row{
		"images":    []byte(`{"b":"https://cdn/first.png","a":"https://cdn/second.png"}`),
		"amenities": `{"z":"WiFi","a":"AC"}`,
		"furniture": "true",
		"rules":     "42",
	}
	v := Property(row, testResolver())

	assert.Equal(t, []string{"https://cdn/first.png", "https://cdn/second.png"}, v.Images)
	assert.Equal(t, []string{"WiFi", "AC", "true"}, v.Features)
	assert.Equal(t, []string{"42"}, v.Rules)
}

func TestPropertyStoredFields(t *testing.T) {
	row := models.Row{
		"id":               "p1",
		"title":            "Sunny room",
		"rating":           float64(3.8),
		"owner_name":       "Asha",
		"verified":         int64(1),
		"status":           "occupied",
		"maushi_available": "true",
		"maushi_cost":      "1500",
		"owner_id":         "user-1",
	}
	v := Property(row, nil)
	assert.Equal(t, "p1", v.ID)
	assert.Equal(t, 3.8, v.Rating)
	assert.Equal(t, "Asha", v.Owner)
	assert.True(t, v.Verified)
	assert.Equal(t, "occupied", v.Status)
	assert.True(t, v.MaushiAvailable)
	require.NotNil(t, v.MaushiCost)
	assert.Equal(t, float64(1500), *v.MaushiCost)
	assert.Equal(t, "user-1", v.OwnerID)
}
