package projection

import (
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
)

// ReviewView is a review as shown under a listing.
type ReviewView struct {
	ID         string  `json:"id"`
	PropertyID string  `json:"property_id"`
	TenantName string  `json:"tenant_name"`
	Rating     int     `json:"rating"`
	Comment    string  `json:"comment"`
	OwnerReply *string `json:"owner_reply"`
	CreatedAt  any     `json:"created_at"`
}

// Review projects a reviews row.
func Review(row models.Row) ReviewView {
	v := ReviewView{
		ID:         text(row, "id"),
		PropertyID: text(row, "property_id"),
		TenantName: text(row, "tenant_name"),
		Comment:    text(row, "comment"),
		CreatedAt:  row["created_at"],
	}
	if r := normalize.ToInt(row["rating"]); r != nil {
		v.Rating = *r
	}
	if reply := row["owner_reply"]; reply != nil {
		s := normalize.ToString(reply)
		v.OwnerReply = &s
	}
	return v
}

// Reviews projects each row in order.
func Reviews(rows []models.Row) []ReviewView {
	out := make([]ReviewView, 0, len(rows))
	for _, row := range rows {
		out = append(out, Review(row))
	}
	return out
}
