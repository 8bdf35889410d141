// internal/model/contact_link.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type RelationshipType string

const (
	RelationshipProspect RelationshipType = "prospect"
	RelationshipCustomer RelationshipType = "customer"
	RelationshipInactive RelationshipType = "inactive"
)

func (r RelationshipType) Valid() bool {
	switch r {
	case RelationshipProspect, RelationshipCustomer, RelationshipInactive:
		return true
	}
	return false
}

// ContactBusinessUnit links a contact to a business unit. Unique per
// (contact_id, business_unit_id); the full set for a contact is replaced
// wholesale on each save.
type ContactBusinessUnit struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"organization_id"`
	ContactID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_contact_business_units_pair" json:"contact_id"`
	BusinessUnitID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_contact_business_units_pair" json:"business_unit_id"`
	RelationshipType RelationshipType `gorm:"type:text;not null;default:'prospect'" json:"relationship_type"`
	SinceAt          *time.Time       `gorm:"type:date" json:"since_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	Contact      Contact      `gorm:"foreignKey:ContactID" json:"-"`
	BusinessUnit BusinessUnit `gorm:"foreignKey:BusinessUnitID" json:"-"`
}

// ChannelPreference is the per-contact, per-business-unit, per-channel
// consent flag. Requires an existing ContactBusinessUnit link, enforced at
// the service layer.
type ChannelPreference struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	ContactID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_channel_preferences_key" json:"contact_id"`
	BusinessUnitID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_channel_preferences_key" json:"business_unit_id"`
	Channel        Channel    `gorm:"type:text;not null;uniqueIndex:idx_channel_preferences_key" json:"channel"`
	OptIn          bool       `gorm:"not null" json:"opt_in"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	Source         string     `gorm:"type:text;not null;default:'manual'" json:"source"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Contact      Contact      `gorm:"foreignKey:ContactID" json:"-"`
	BusinessUnit BusinessUnit `gorm:"foreignKey:BusinessUnitID" json:"-"`
}
