// internal/repository/organization.go
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

type OrganizationRepositoryIface interface {
	Create(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	CreateWithAdmin(ctx context.Context, org *model.Organization, admin *model.Profile) error
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

// CreateWithAdmin creates an organization and its first admin profile in a
// single transaction. Used by the installer's account bootstrap and by the
// seed-admin CLI.
func (r *OrganizationRepository) CreateWithAdmin(ctx context.Context, org *model.Organization, admin *model.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Profile{}).
			Where("email = ?", admin.Email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("checking existing profile: %w", err)
		}
		if count > 0 {
			return domain.ErrEmailAlreadyExists
		}

		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		admin.OrganizationID = org.ID
		admin.Role = model.RoleAdmin
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("creating admin profile: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
