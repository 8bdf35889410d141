// internal/repository/contact_link.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/model"
	"gorm.io/gorm"
)

type ContactLinkRepositoryIface interface {
	FindByContact(ctx context.Context, orgID, contactID uuid.UUID) ([]*model.ContactBusinessUnit, error)
	FindByContactAndUnits(ctx context.Context, orgID, contactID uuid.UUID, unitIDs []uuid.UUID) ([]*model.ContactBusinessUnit, error)
	ReplaceForContact(ctx context.Context, orgID, contactID uuid.UUID, links []*model.ContactBusinessUnit) error
}

type ContactLinkRepository struct {
	db *gorm.DB
}

func NewContactLinkRepository(db *gorm.DB) *ContactLinkRepository {
	return &ContactLinkRepository{db: db}
}

func (r *ContactLinkRepository) FindByContact(ctx context.Context, orgID, contactID uuid.UUID) ([]*model.ContactBusinessUnit, error) {
	var links []*model.ContactBusinessUnit
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND contact_id = ?", orgID, contactID).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("finding contact links: %w", err)
	}
	return links, nil
}

func (r *ContactLinkRepository) FindByContactAndUnits(ctx context.Context, orgID, contactID uuid.UUID, unitIDs []uuid.UUID) ([]*model.ContactBusinessUnit, error) {
	var links []*model.ContactBusinessUnit
	if len(unitIDs) == 0 {
		return links, nil
	}
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND contact_id = ? AND business_unit_id IN ?", orgID, contactID, unitIDs).
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("finding contact links by units: %w", err)
	}
	return links, nil
}

// ReplaceForContact swaps the contact's full link set in one transaction.
// The delete and insert either both apply or neither does, so a failed
// insert can never leave the contact with zero links.
func (r *ContactLinkRepository) ReplaceForContact(ctx context.Context, orgID, contactID uuid.UUID, links []*model.ContactBusinessUnit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ? AND contact_id = ?", orgID, contactID).
			Delete(&model.ContactBusinessUnit{}).Error; err != nil {
			return fmt.Errorf("deleting existing links: %w", err)
		}

		if len(links) > 0 {
			if err := tx.Create(links).Error; err != nil {
				return fmt.Errorf("inserting links: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
