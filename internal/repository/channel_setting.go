// internal/repository/channel_setting.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChannelSettingRepositoryIface interface {
	FindByBusinessUnit(ctx context.Context, orgID, unitID uuid.UUID) ([]*model.ChannelSetting, error)
	FindByBusinessUnitAndChannel(ctx context.Context, orgID, unitID uuid.UUID, channel model.Channel) (*model.ChannelSetting, error)
	Upsert(ctx context.Context, setting *model.ChannelSetting) error
}

type ChannelSettingRepository struct {
	db *gorm.DB
}

func NewChannelSettingRepository(db *gorm.DB) *ChannelSettingRepository {
	return &ChannelSettingRepository{db: db}
}

func (r *ChannelSettingRepository) FindByBusinessUnit(ctx context.Context, orgID, unitID uuid.UUID) ([]*model.ChannelSetting, error) {
	var settings []*model.ChannelSetting
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND business_unit_id = ?", orgID, unitID).
		Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("finding channel settings: %w", err)
	}
	return settings, nil
}

func (r *ChannelSettingRepository) FindByBusinessUnitAndChannel(ctx context.Context, orgID, unitID uuid.UUID, channel model.Channel) (*model.ChannelSetting, error) {
	var setting model.ChannelSetting
	err := r.db.WithContext(ctx).
		First(&setting, "organization_id = ? AND business_unit_id = ? AND channel = ?", orgID, unitID, channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding channel setting: %w", err)
	}
	return &setting, nil
}

// Upsert writes the setting with a conflict key of (business_unit_id,
// channel) so repeated saves overwrite rather than duplicate.
func (r *ChannelSettingRepository) Upsert(ctx context.Context, setting *model.ChannelSetting) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_unit_id"}, {Name: "channel"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_active", "config", "updated_at",
		}),
	}).Create(setting).Error
	if err != nil {
		return fmt.Errorf("upserting channel setting: %w", err)
	}
	return nil
}
