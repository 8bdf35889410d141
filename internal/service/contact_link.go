// internal/service/contact_link.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/repository"
)

type ContactLinkService struct {
	linkRepo    repository.ContactLinkRepositoryIface
	contactRepo repository.ContactRepositoryIface
	unitRepo    repository.BusinessUnitRepositoryIface
}

func NewContactLinkService(
	linkRepo repository.ContactLinkRepositoryIface,
	contactRepo repository.ContactRepositoryIface,
	unitRepo repository.BusinessUnitRepositoryIface,
) *ContactLinkService {
	return &ContactLinkService{
		linkRepo:    linkRepo,
		contactRepo: contactRepo,
		unitRepo:    unitRepo,
	}
}

type LinkItem struct {
	BusinessUnitID   uuid.UUID              `json:"businessUnitId"`
	RelationshipType model.RelationshipType `json:"relationshipType"`
	SinceAt          *time.Time             `json:"sinceAt"`
}

type ContactLinksView struct {
	Links         []*model.ContactBusinessUnit `json:"links"`
	BusinessUnits []*model.BusinessUnit        `json:"businessUnits"`
}

// GetLinks returns the contact's links together with the organization's
// full unit catalog so callers can render the selectable set.
func (s *ContactLinkService) GetLinks(ctx context.Context, orgID, contactID uuid.UUID) (*ContactLinksView, error) {
	if _, err := s.contactRepo.FindByIDInOrganization(ctx, orgID, contactID); err != nil {
		return nil, err
	}

	links, err := s.linkRepo.FindByContact(ctx, orgID, contactID)
	if err != nil {
		return nil, err
	}

	units, err := s.unitRepo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &ContactLinksView{Links: links, BusinessUnits: units}, nil
}

// SetLinks replaces the contact's full link set. Duplicate unit ids in the
// payload collapse to the last occurrence; any unit outside the caller's
// organization rejects the whole batch. There are no partial updates;
// callers resend the complete desired state.
func (s *ContactLinkService) SetLinks(ctx context.Context, orgID, contactID uuid.UUID, items []LinkItem) error {
	if _, err := s.contactRepo.FindByIDInOrganization(ctx, orgID, contactID); err != nil {
		return err
	}

	deduped := dedupeLinks(items)

	if len(deduped) > 0 {
		ids := make([]uuid.UUID, 0, len(deduped))
		for _, item := range deduped {
			if !item.RelationshipType.Valid() {
				return fmt.Errorf("%w: %q", domain.ErrInvalidRelationship, item.RelationshipType)
			}
			ids = append(ids, item.BusinessUnitID)
		}

		units, err := s.unitRepo.FindByIDsInOrganization(ctx, orgID, ids)
		if err != nil {
			return err
		}
		if len(units) != len(ids) {
			return domain.ErrUnknownBusinessUnit
		}
	}

	links := make([]*model.ContactBusinessUnit, 0, len(deduped))
	for _, item := range deduped {
		links = append(links, &model.ContactBusinessUnit{
			OrganizationID:   orgID,
			ContactID:        contactID,
			BusinessUnitID:   item.BusinessUnitID,
			RelationshipType: item.RelationshipType,
			SinceAt:          item.SinceAt,
		})
	}

	return s.linkRepo.ReplaceForContact(ctx, orgID, contactID, links)
}

// dedupeLinks keeps the last occurrence per business unit, preserving the
// order in which units first appear.
func dedupeLinks(items []LinkItem) []LinkItem {
	index := make(map[uuid.UUID]int, len(items))
	out := make([]LinkItem, 0, len(items))
	for _, item := range items {
		if item.RelationshipType == "" {
			item.RelationshipType = model.RelationshipProspect
		}
		if pos, seen := index[item.BusinessUnitID]; seen {
			out[pos] = item
			continue
		}
		index[item.BusinessUnitID] = len(out)
		out = append(out, item)
	}
	return out
}
