// internal/repository/contact.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/model"
	"gorm.io/gorm"
)

type ContactRepositoryIface interface {
	FindByIDInOrganization(ctx context.Context, orgID, id uuid.UUID) (*model.Contact, error)
	FindAllByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Contact, error)
}

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) FindByIDInOrganization(ctx context.Context, orgID, id uuid.UUID) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).
		First(&contact, "id = ? AND organization_id = ?", id, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("finding contact: %w", err)
	}
	return &contact, nil
}

func (r *ContactRepository) FindAllByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Contact, error) {
	var contacts []*model.Contact
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("full_name ASC").
		Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("finding contacts: %w", err)
	}
	return contacts, nil
}
