package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/mocks"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/service"
)

func TestContactLinkSetLinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	contactID := uuid.New()
	unitA := uuid.New()
	unitB := uuid.New()

	contact := &model.Contact{ID: contactID, OrganizationID: orgID, FullName: "Ana Souza"}

	t.Run("duplicate unit ids collapse to the last occurrence", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		unitRepo := mocks.NewMockBusinessUnitRepositoryIface(ctrl)
		linkRepo := mocks.NewMockContactLinkRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindByIDInOrganization(gomock.Any(), orgID, contactID).
			Return(contact, nil)

		unitRepo.EXPECT().
			FindByIDsInOrganization(gomock.Any(), orgID, []uuid.UUID{unitA, unitB}).
			Return([]*model.BusinessUnit{
				{ID: unitA, OrganizationID: orgID},
				{ID: unitB, OrganizationID: orgID},
			}, nil)

		linkRepo.EXPECT().
			ReplaceForContact(gomock.Any(), orgID, contactID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, links []*model.ContactBusinessUnit) error {
				assert.Len(t, links, 2)
				assert.Equal(t, unitA, links[0].BusinessUnitID)
				assert.Equal(t, model.RelationshipCustomer, links[0].RelationshipType, "last occurrence wins")
				assert.Equal(t, unitB, links[1].BusinessUnitID)
				return nil
			})

		svc := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
		err := svc.SetLinks(context.Background(), orgID, contactID, []service.LinkItem{
			{BusinessUnitID: unitA, RelationshipType: model.RelationshipProspect},
			{BusinessUnitID: unitB, RelationshipType: model.RelationshipProspect},
			{BusinessUnitID: unitA, RelationshipType: model.RelationshipCustomer},
		})

		assert.NoError(t, err)
	})

	t.Run("missing relationship type defaults to prospect", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		unitRepo := mocks.NewMockBusinessUnitRepositoryIface(ctrl)
		linkRepo := mocks.NewMockContactLinkRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindByIDInOrganization(gomock.Any(), orgID, contactID).
			Return(contact, nil)

		unitRepo.EXPECT().
			FindByIDsInOrganization(gomock.Any(), orgID, []uuid.UUID{unitA}).
			Return([]*model.BusinessUnit{{ID: unitA, OrganizationID: orgID}}, nil)

		linkRepo.EXPECT().
			ReplaceForContact(gomock.Any(), orgID, contactID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, links []*model.ContactBusinessUnit) error {
				assert.Equal(t, model.RelationshipProspect, links[0].RelationshipType)
				return nil
			})

		svc := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
		err := svc.SetLinks(context.Background(), orgID, contactID, []service.LinkItem{
			{BusinessUnitID: unitA},
		})

		assert.NoError(t, err)
	})

	t.Run("unit outside the organization rejects the whole batch", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		unitRepo := mocks.NewMockBusinessUnitRepositoryIface(ctrl)
		linkRepo := mocks.NewMockContactLinkRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindByIDInOrganization(gomock.Any(), orgID, contactID).
			Return(contact, nil)

		// only one of the two units resolves inside the org
		unitRepo.EXPECT().
			FindByIDsInOrganization(gomock.Any(), orgID, []uuid.UUID{unitA, unitB}).
			Return([]*model.BusinessUnit{{ID: unitA, OrganizationID: orgID}}, nil)

		svc := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
		err := svc.SetLinks(context.Background(), orgID, contactID, []service.LinkItem{
			{BusinessUnitID: unitA, RelationshipType: model.RelationshipCustomer},
			{BusinessUnitID: unitB, RelationshipType: model.RelationshipCustomer},
		})

		assert.ErrorIs(t, err, domain.ErrUnknownBusinessUnit)
	})

	t.Run("invalid relationship type is rejected", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		unitRepo := mocks.NewMockBusinessUnitRepositoryIface(ctrl)
		linkRepo := mocks.NewMockContactLinkRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindByIDInOrganization(gomock.Any(), orgID, contactID).
			Return(contact, nil)

		svc := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
		err := svc.SetLinks(context.Background(), orgID, contactID, []service.LinkItem{
			{BusinessUnitID: unitA, RelationshipType: "vendor"},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidRelationship)
	})

	t.Run("empty payload clears all links", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		unitRepo := mocks.NewMockBusinessUnitRepositoryIface(ctrl)
		linkRepo := mocks.NewMockContactLinkRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindByIDInOrganization(gomock.Any(), orgID, contactID).
			Return(contact, nil)

		linkRepo.EXPECT().
			ReplaceForContact(gomock.Any(), orgID, contactID, gomock.Len(0)).
			Return(nil)

		svc := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
		err := svc.SetLinks(context.Background(), orgID, contactID, nil)

		assert.NoError(t, err)
	})

	t.Run("unknown contact surfaces as not found", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		unitRepo := mocks.NewMockBusinessUnitRepositoryIface(ctrl)
		linkRepo := mocks.NewMockContactLinkRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindByIDInOrganization(gomock.Any(), orgID, contactID).
			Return(nil, domain.ErrContactNotFound)

		svc := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
		err := svc.SetLinks(context.Background(), orgID, contactID, nil)

		assert.ErrorIs(t, err, domain.ErrContactNotFound)
	})
}

func TestContactLinkGetLinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	contactID := uuid.New()
	unitID := uuid.New()

	contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
	unitRepo := mocks.NewMockBusinessUnitRepositoryIface(ctrl)
	linkRepo := mocks.NewMockContactLinkRepositoryIface(ctrl)

	contactRepo.EXPECT().
		FindByIDInOrganization(gomock.Any(), orgID, contactID).
		Return(&model.Contact{ID: contactID, OrganizationID: orgID}, nil)

	linkRepo.EXPECT().
		FindByContact(gomock.Any(), orgID, contactID).
		Return([]*model.ContactBusinessUnit{
			{ContactID: contactID, BusinessUnitID: unitID, RelationshipType: model.RelationshipCustomer},
		}, nil)

	unitRepo.EXPECT().
		FindAllByOrganization(gomock.Any(), orgID).
		Return([]*model.BusinessUnit{{ID: unitID, OrganizationID: orgID, Code: "SP"}}, nil)

	svc := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
	view, err := svc.GetLinks(context.Background(), orgID, contactID)

	assert.NoError(t, err)
	assert.Len(t, view.Links, 1)
	assert.Len(t, view.BusinessUnits, 1)
}
