package models

import (
	"time"
)

// Review is tenant feedback on a property. OwnerReply is written at most once.
type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	PropertyID string    `gorm:"size:36;not null;index" json:"property_id"`
	AuthorID   string    `gorm:"size:64;not null" json:"author_id"`
	TenantName string    `gorm:"size:255;not null" json:"tenant_name"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment"`
	OwnerReply *string   `gorm:"type:text" json:"owner_reply"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}
