// internal/model/business_unit.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsapp Channel = "whatsapp"
)

// Channels lists every supported communication channel.
var Channels = []Channel{ChannelEmail, ChannelWhatsapp}

func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelWhatsapp
}

// BusinessUnit is a tenant-defined sub-organization (e.g. a regional
// distributor) that contacts can be linked to. (organization_id, code)
// is unique; units are soft-disabled via IsActive, never deleted.
type BusinessUnit struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_business_units_org_code" json:"organization_id"`
	Code           string    `gorm:"type:text;not null;uniqueIndex:idx_business_units_org_code" json:"code"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	CNPJ           *string   `gorm:"type:text" json:"cnpj"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// ChannelConfig is the channel-specific configuration blob, persisted as
// JSONB. Keys depend on the channel: SMTP fields for email, provider and
// token fields for WhatsApp.
type ChannelConfig map[string]any

// Scan implements the sql.Scanner interface
func (c *ChannelConfig) Scan(value interface{}) error {
	if value == nil {
		*c = ChannelConfig{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, c)
	}

	return json.Unmarshal(raw, c)
}

// Value implements the driver.Valuer interface
func (c ChannelConfig) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// ChannelSetting holds the per-(business unit, channel) activation flag and
// configuration. At most one row per (business_unit_id, channel).
type ChannelSetting struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	BusinessUnitID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_channel_settings_unit_channel" json:"business_unit_id"`
	Channel        Channel       `gorm:"type:text;not null;uniqueIndex:idx_channel_settings_unit_channel" json:"channel"`
	IsActive       bool          `gorm:"not null;default:false" json:"is_active"`
	Config         ChannelConfig `gorm:"type:jsonb;not null;default:'{}'" json:"config"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	BusinessUnit BusinessUnit `gorm:"foreignKey:BusinessUnitID" json:"-"`
}
