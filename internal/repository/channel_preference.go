// internal/repository/channel_preference.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/model"
	"gorm.io/gorm"
)

type ChannelPreferenceRepositoryIface interface {
	FindByContact(ctx context.Context, orgID, contactID uuid.UUID) ([]*model.ChannelPreference, error)
	ReplaceForContact(ctx context.Context, orgID, contactID uuid.UUID, prefs []*model.ChannelPreference) error
}

type ChannelPreferenceRepository struct {
	db *gorm.DB
}

func NewChannelPreferenceRepository(db *gorm.DB) *ChannelPreferenceRepository {
	return &ChannelPreferenceRepository{db: db}
}

func (r *ChannelPreferenceRepository) FindByContact(ctx context.Context, orgID, contactID uuid.UUID) ([]*model.ChannelPreference, error) {
	var prefs []*model.ChannelPreference
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND contact_id = ?", orgID, contactID).
		Order("updated_at DESC").
		Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("finding channel preferences: %w", err)
	}
	return prefs, nil
}

// ReplaceForContact swaps the contact's full preference set in one
// transaction, same contract as ContactLinkRepository.ReplaceForContact.
func (r *ChannelPreferenceRepository) ReplaceForContact(ctx context.Context, orgID, contactID uuid.UUID, prefs []*model.ChannelPreference) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ? AND contact_id = ?", orgID, contactID).
			Delete(&model.ChannelPreference{}).Error; err != nil {
			return fmt.Errorf("deleting existing preferences: %w", err)
		}

		if len(prefs) > 0 {
			if err := tx.Create(prefs).Error; err != nil {
				return fmt.Errorf("inserting preferences: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
