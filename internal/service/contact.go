// internal/service/contact.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/repository"
)

type ContactService struct {
	repo repository.ContactRepositoryIface
}

func NewContactService(repo repository.ContactRepositoryIface) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) List(ctx context.Context, orgID uuid.UUID) ([]*model.Contact, error) {
	return s.repo.FindAllByOrganization(ctx, orgID)
}

func (s *ContactService) Get(ctx context.Context, orgID, contactID uuid.UUID) (*model.Contact, error) {
	return s.repo.FindByIDInOrganization(ctx, orgID, contactID)
}
