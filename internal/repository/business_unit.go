// internal/repository/business_unit.go
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

type BusinessUnitRepositoryIface interface {
	Create(ctx context.Context, unit *model.BusinessUnit) error
	FindAllByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.BusinessUnit, error)
	FindByIDInOrganization(ctx context.Context, orgID, id uuid.UUID) (*model.BusinessUnit, error)
	FindByIDsInOrganization(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*model.BusinessUnit, error)
	Update(ctx context.Context, unit *model.BusinessUnit) error
}

type BusinessUnitRepository struct {
	db *gorm.DB
}

func NewBusinessUnitRepository(db *gorm.DB) *BusinessUnitRepository {
	return &BusinessUnitRepository{db: db}
}

// Create inserts a business unit, enforcing the (organization_id, code)
// uniqueness inside a transaction so the caller gets a typed conflict
// instead of a raw constraint violation.
func (r *BusinessUnitRepository) Create(ctx context.Context, unit *model.BusinessUnit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.BusinessUnit{}).
			Where("organization_id = ? AND code = ?", unit.OrganizationID, unit.Code).
			Count(&count).Error; err != nil {
			return fmt.Errorf("checking existing code: %w", err)
		}
		if count > 0 {
			return domain.ErrDuplicateBusinessUnitCode
		}

		if err := tx.Create(unit).Error; err != nil {
			// the unique index catches inserts that raced past the count
			if dup := translateDuplicate(err, domain.ErrDuplicateBusinessUnitCode); dup != err {
				return dup
			}
			return fmt.Errorf("creating business unit: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBusinessUnitCode) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *BusinessUnitRepository) FindAllByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.BusinessUnit, error) {
	var units []*model.BusinessUnit
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&units).Error; err != nil {
		return nil, fmt.Errorf("finding business units: %w", err)
	}
	return units, nil
}

func (r *BusinessUnitRepository) FindByIDInOrganization(ctx context.Context, orgID, id uuid.UUID) (*model.BusinessUnit, error) {
	var unit model.BusinessUnit
	if err := r.db.WithContext(ctx).
		First(&unit, "id = ? AND organization_id = ?", id, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBusinessUnitNotFound
		}
		return nil, fmt.Errorf("finding business unit: %w", err)
	}
	return &unit, nil
}

func (r *BusinessUnitRepository) FindByIDsInOrganization(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*model.BusinessUnit, error) {
	var units []*model.BusinessUnit
	if len(ids) == 0 {
		return units, nil
	}
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Find(&units).Error; err != nil {
		return nil, fmt.Errorf("finding business units by ids: %w", err)
	}
	return units, nil
}

func (r *BusinessUnitRepository) Update(ctx context.Context, unit *model.BusinessUnit) error {
	if err := r.db.WithContext(ctx).Save(unit).Error; err != nil {
		return fmt.Errorf("updating business unit: %w", err)
	}
	return nil
}
