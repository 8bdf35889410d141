// internal/service/business_unit.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/repository"
)

type BusinessUnitService struct {
	repo     repository.BusinessUnitRepositoryIface
	validate *validator.Validate
}

func NewBusinessUnitService(repo repository.BusinessUnitRepositoryIface) *BusinessUnitService {
	return &BusinessUnitService{
		repo:     repo,
		validate: validator.New(),
	}
}

type CreateBusinessUnitInput struct {
	Code string  `json:"code" validate:"required,min=2,max=30"`
	Name string  `json:"name" validate:"required,min=2,max=120"`
	CNPJ *string `json:"cnpj" validate:"omitempty,max=30"`
}

// Create registers a new business unit for the organization. The code is
// trimmed and uppercased before the uniqueness check so "sp" and "SP"
// collide as the same code.
func (s *BusinessUnitService) Create(ctx context.Context, orgID uuid.UUID, input CreateBusinessUnitInput) (*model.BusinessUnit, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	var cnpj *string
	if input.CNPJ != nil {
		if trimmed := strings.TrimSpace(*input.CNPJ); trimmed != "" {
			cnpj = &trimmed
		}
	}

	unit := &model.BusinessUnit{
		OrganizationID: orgID,
		Code:           strings.ToUpper(input.Code),
		Name:           input.Name,
		CNPJ:           cnpj,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// List returns all of the organization's business units ordered by name.
func (s *BusinessUnitService) List(ctx context.Context, orgID uuid.UUID) ([]*model.BusinessUnit, error) {
	return s.repo.FindAllByOrganization(ctx, orgID)
}

// ToggleActive flips the unit's active flag. Units belonging to another
// organization surface as not found.
func (s *BusinessUnitService) ToggleActive(ctx context.Context, orgID, unitID uuid.UUID) (*model.BusinessUnit, error) {
	unit, err := s.repo.FindByIDInOrganization(ctx, orgID, unitID)
	if err != nil {
		return nil, err
	}

	unit.IsActive = !unit.IsActive
	if err := s.repo.Update(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// Get returns a single unit scoped to the organization.
func (s *BusinessUnitService) Get(ctx context.Context, orgID, unitID uuid.UUID) (*model.BusinessUnit, error) {
	return s.repo.FindByIDInOrganization(ctx, orgID, unitID)
}
