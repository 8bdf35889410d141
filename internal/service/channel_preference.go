// internal/service/channel_preference.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/repository"
)

// DefaultPreferenceSource labels preference rows written without an
// explicit origin.
const DefaultPreferenceSource = "manual"

type ChannelPreferenceService struct {
	prefRepo    repository.ChannelPreferenceRepositoryIface
	linkRepo    repository.ContactLinkRepositoryIface
	contactRepo repository.ContactRepositoryIface
	now         func() time.Time
}

func NewChannelPreferenceService(
	prefRepo repository.ChannelPreferenceRepositoryIface,
	linkRepo repository.ContactLinkRepositoryIface,
	contactRepo repository.ContactRepositoryIface,
) *ChannelPreferenceService {
	return &ChannelPreferenceService{
		prefRepo:    prefRepo,
		linkRepo:    linkRepo,
		contactRepo: contactRepo,
		now:         time.Now,
	}
}

// WithClock overrides the time source used for unsubscribe stamps
func (s *ChannelPreferenceService) WithClock(now func() time.Time) *ChannelPreferenceService {
	s.now = now
	return s
}

type PreferenceItem struct {
	BusinessUnitID uuid.UUID     `json:"businessUnitId"`
	Channel        model.Channel `json:"channel"`
	OptIn          bool          `json:"optIn"`
	Source         string        `json:"source"`
}

type ChannelPreferencesView struct {
	LinkedBusinessUnitIDs []uuid.UUID                `json:"linkedBusinessUnitIds"`
	Preferences           []*model.ChannelPreference `json:"preferences"`
}

func (s *ChannelPreferenceService) GetPreferences(ctx context.Context, orgID, contactID uuid.UUID) (*ChannelPreferencesView, error) {
	if _, err := s.contactRepo.FindByIDInOrganization(ctx, orgID, contactID); err != nil {
		return nil, err
	}

	prefs, err := s.prefRepo.FindByContact(ctx, orgID, contactID)
	if err != nil {
		return nil, err
	}

	links, err := s.linkRepo.FindByContact(ctx, orgID, contactID)
	if err != nil {
		return nil, err
	}

	linkedIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		linkedIDs = append(linkedIDs, link.BusinessUnitID)
	}

	return &ChannelPreferencesView{
		LinkedBusinessUnitIDs: linkedIDs,
		Preferences:           prefs,
	}, nil
}

// SetPreferences replaces the contact's full preference set. Every
// referenced unit must already be linked to the contact, otherwise the
// whole batch is rejected and prior preferences stay untouched. Opting
// out stamps the unsubscribe time; opting back in clears it.
func (s *ChannelPreferenceService) SetPreferences(ctx context.Context, orgID, contactID uuid.UUID, items []PreferenceItem) error {
	if _, err := s.contactRepo.FindByIDInOrganization(ctx, orgID, contactID); err != nil {
		return err
	}

	deduped := dedupePreferences(items)

	if len(deduped) > 0 {
		unitIDs := uniqueUnitIDs(deduped)
		for _, item := range deduped {
			if !item.Channel.Valid() {
				return fmt.Errorf("%w: %q", domain.ErrInvalidChannel, item.Channel)
			}
		}

		links, err := s.linkRepo.FindByContactAndUnits(ctx, orgID, contactID, unitIDs)
		if err != nil {
			return err
		}

		linked := make(map[uuid.UUID]struct{}, len(links))
		for _, link := range links {
			linked[link.BusinessUnitID] = struct{}{}
		}
		for _, id := range unitIDs {
			if _, ok := linked[id]; !ok {
				return domain.ErrBusinessUnitNotLinked
			}
		}
	}

	now := s.now().UTC()
	prefs := make([]*model.ChannelPreference, 0, len(deduped))
	for _, item := range deduped {
		source := strings.TrimSpace(item.Source)
		if source == "" {
			source = DefaultPreferenceSource
		}

		var unsubscribedAt *time.Time
		if !item.OptIn {
			ts := now
			unsubscribedAt = &ts
		}

		prefs = append(prefs, &model.ChannelPreference{
			OrganizationID: orgID,
			ContactID:      contactID,
			BusinessUnitID: item.BusinessUnitID,
			Channel:        item.Channel,
			OptIn:          item.OptIn,
			UnsubscribedAt: unsubscribedAt,
			Source:         source,
		})
	}

	return s.prefRepo.ReplaceForContact(ctx, orgID, contactID, prefs)
}

// dedupePreferences keeps the last occurrence per (unit, channel) key.
func dedupePreferences(items []PreferenceItem) []PreferenceItem {
	type key struct {
		unit    uuid.UUID
		channel model.Channel
	}
	index := make(map[key]int, len(items))
	out := make([]PreferenceItem, 0, len(items))
	for _, item := range items {
		k := key{unit: item.BusinessUnitID, channel: item.Channel}
		if pos, seen := index[k]; seen {
			out[pos] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

func uniqueUnitIDs(items []PreferenceItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	out := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.BusinessUnitID]; ok {
			continue
		}
		seen[item.BusinessUnitID] = struct{}{}
		out = append(out, item.BusinessUnitID)
	}
	return out
}
