// internal/model/contact.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	FullName       string    `gorm:"type:text;not null" json:"full_name"`
	Email          string    `gorm:"type:text" json:"email"`
	Phone          string    `gorm:"type:text" json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}
