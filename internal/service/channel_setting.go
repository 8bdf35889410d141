// internal/service/channel_setting.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/email"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/repository"
)

type ChannelSettingService struct {
	settingRepo repository.ChannelSettingRepositoryIface
	unitRepo    repository.BusinessUnitRepositoryIface
	mailer      *email.Service
	validate    *validator.Validate
}

func NewChannelSettingService(
	settingRepo repository.ChannelSettingRepositoryIface,
	unitRepo repository.BusinessUnitRepositoryIface,
	mailer *email.Service,
) *ChannelSettingService {
	return &ChannelSettingService{
		settingRepo: settingRepo,
		unitRepo:    unitRepo,
		mailer:      mailer,
		validate:    validator.New(),
	}
}

// EmailChannelConfig is the validated shape of the email channel blob.
type EmailChannelConfig struct {
	SenderName   *string `json:"senderName" validate:"omitempty,max=120"`
	SenderEmail  *string `json:"senderEmail" validate:"omitempty,email,max=160"`
	ReplyTo      *string `json:"replyTo" validate:"omitempty,email,max=160"`
	SMTPHost     *string `json:"smtpHost" validate:"omitempty,max=160"`
	SMTPPort     *int    `json:"smtpPort" validate:"omitempty,min=1,max=65535"`
	SMTPUsername *string `json:"smtpUsername" validate:"omitempty,max=160"`
	SMTPPassword *string `json:"smtpPassword" validate:"omitempty,max=500"`
	SMTPSecure   *bool   `json:"smtpSecure"`
}

// WhatsappChannelConfig is the validated shape of the WhatsApp channel blob.
type WhatsappChannelConfig struct {
	Provider          *string `json:"provider" validate:"omitempty,max=80"`
	PhoneNumberID     *string `json:"phoneNumberId" validate:"omitempty,max=200"`
	BusinessAccountID *string `json:"businessAccountId" validate:"omitempty,max=200"`
	AccessToken       *string `json:"accessToken" validate:"omitempty,max=500"`
	FromNumber        *string `json:"fromNumber" validate:"omitempty,max=30"`
	WebhookURL        *string `json:"webhookUrl" validate:"omitempty,url,max=500"`
}

type UpsertChannelSettingInput struct {
	Channel  model.Channel   `json:"channel"`
	IsActive bool            `json:"isActive"`
	Config   json.RawMessage `json:"config"`
}

type ChannelView struct {
	IsActive  bool                `json:"isActive"`
	Config    model.ChannelConfig `json:"config"`
	UpdatedAt *time.Time          `json:"updatedAt"`
}

type ChannelSettingsView struct {
	BusinessUnit *model.BusinessUnit     `json:"businessUnit"`
	Channels     map[string]*ChannelView `json:"channels"`
}

// Get returns both channels for the unit, defaulting to inactive with an
// empty config when a channel has never been saved.
func (s *ChannelSettingService) Get(ctx context.Context, orgID, unitID uuid.UUID) (*ChannelSettingsView, error) {
	unit, err := s.unitRepo.FindByIDInOrganization(ctx, orgID, unitID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingRepo.FindByBusinessUnit(ctx, orgID, unitID)
	if err != nil {
		return nil, err
	}

	view := &ChannelSettingsView{
		BusinessUnit: unit,
		Channels:     make(map[string]*ChannelView, len(model.Channels)),
	}
	for _, ch := range model.Channels {
		view.Channels[string(ch)] = &ChannelView{Config: model.ChannelConfig{}}
	}
	for _, setting := range settings {
		updatedAt := setting.UpdatedAt
		view.Channels[string(setting.Channel)] = &ChannelView{
			IsActive:  setting.IsActive,
			Config:    setting.Config,
			UpdatedAt: &updatedAt,
		}
	}

	return view, nil
}

// Upsert validates the channel-specific config shape, normalizes blank
// strings to null and writes the row keyed by (business_unit_id, channel).
func (s *ChannelSettingService) Upsert(ctx context.Context, orgID, unitID uuid.UUID, input UpsertChannelSettingInput) (*model.ChannelSetting, error) {
	if !input.Channel.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidChannel, input.Channel)
	}

	if _, err := s.unitRepo.FindByIDInOrganization(ctx, orgID, unitID); err != nil {
		return nil, err
	}

	config, err := s.parseConfig(input.Channel, input.Config)
	if err != nil {
		return nil, err
	}

	setting := &model.ChannelSetting{
		OrganizationID: orgID,
		BusinessUnitID: unitID,
		Channel:        input.Channel,
		IsActive:       input.IsActive,
		Config:         config,
	}

	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	return setting, nil
}

// SendTest sends a test message through the unit's configured email
// channel so operators can verify SMTP credentials before going live.
func (s *ChannelSettingService) SendTest(ctx context.Context, orgID, unitID uuid.UUID, channel model.Channel, recipient string) error {
	if channel != model.ChannelEmail {
		return fmt.Errorf("%w: test messages are only supported for the email channel", domain.ErrInvalidChannel)
	}
	if strings.TrimSpace(recipient) == "" {
		return fmt.Errorf("%w: recipient is required", domain.ErrInvalidInput)
	}

	unit, err := s.unitRepo.FindByIDInOrganization(ctx, orgID, unitID)
	if err != nil {
		return err
	}

	setting, err := s.settingRepo.FindByBusinessUnitAndChannel(ctx, orgID, unitID, channel)
	if err != nil {
		return err
	}
	if setting == nil || !setting.IsActive {
		return domain.ErrChannelNotConfigured
	}

	smtpSettings := smtpSettingsFromConfig(setting.Config)
	msg := email.Message{
		To:       strings.TrimSpace(recipient),
		Subject:  fmt.Sprintf("[%s] Channel configuration test", unit.Code),
		TextBody: fmt.Sprintf("Test message from business unit %s (%s).", unit.Name, unit.Code),
		HTMLBody: fmt.Sprintf("<p>Test message from business unit <strong>%s</strong> (%s).</p>", unit.Name, unit.Code),
	}

	if err := s.mailer.Send(smtpSettings, msg); err != nil {
		return fmt.Errorf("sending test email: %w", err)
	}

	return nil
}

func (s *ChannelSettingService) parseConfig(channel model.Channel, raw json.RawMessage) (model.ChannelConfig, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	switch channel {
	case model.ChannelEmail:
		var cfg EmailChannelConfig
		if err := decodeStrict(raw, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidChannelConfig, err.Error())
		}
		if err := s.validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidChannelConfig, err.Error())
		}
		return sanitizeConfig(map[string]any{
			"senderName":   normalizeStringPtr(cfg.SenderName),
			"senderEmail":  normalizeStringPtr(cfg.SenderEmail),
			"replyTo":      normalizeStringPtr(cfg.ReplyTo),
			"smtpHost":     normalizeStringPtr(cfg.SMTPHost),
			"smtpPort":     intPtrValue(cfg.SMTPPort),
			"smtpUsername": normalizeStringPtr(cfg.SMTPUsername),
			"smtpPassword": passwordPtrValue(cfg.SMTPPassword),
			"smtpSecure":   boolPtrValue(cfg.SMTPSecure),
		}), nil

	case model.ChannelWhatsapp:
		var cfg WhatsappChannelConfig
		if err := decodeStrict(raw, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidChannelConfig, err.Error())
		}
		if err := s.validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidChannelConfig, err.Error())
		}
		return sanitizeConfig(map[string]any{
			"provider":          normalizeStringPtr(cfg.Provider),
			"phoneNumberId":     normalizeStringPtr(cfg.PhoneNumberID),
			"businessAccountId": normalizeStringPtr(cfg.BusinessAccountID),
			"accessToken":       passwordPtrValue(cfg.AccessToken),
			"fromNumber":        normalizeStringPtr(cfg.FromNumber),
			"webhookUrl":        normalizeStringPtr(cfg.WebhookURL),
		}), nil
	}

	return nil, domain.ErrInvalidChannel
}

// decodeStrict rejects unknown fields so typos in config keys fail loudly
// instead of silently persisting.
func decodeStrict(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// sanitizeConfig converts the typed values into a config map, keeping
// explicit nulls for unset fields.
func sanitizeConfig(values map[string]any) model.ChannelConfig {
	out := make(model.ChannelConfig, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}

func normalizeStringPtr(v *string) any {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return trimmed
}

// passwordPtrValue preserves secrets untouched; trimming could corrupt
// credentials that legitimately contain whitespace.
func passwordPtrValue(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func intPtrValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolPtrValue(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func smtpSettingsFromConfig(cfg model.ChannelConfig) *email.SMTPSettings {
	settings := &email.SMTPSettings{
		Host:     configString(cfg, "smtpHost"),
		Username: configString(cfg, "smtpUsername"),
		Password: configString(cfg, "smtpPassword"),
		From:     configString(cfg, "senderEmail"),
		FromName: configString(cfg, "senderName"),
	}
	if port, ok := cfg["smtpPort"]; ok && port != nil {
		switch v := port.(type) {
		case int:
			settings.Port = v
		case float64:
			settings.Port = int(v)
		}
	}
	return settings
}

func configString(cfg model.ChannelConfig, key string) string {
	if v, ok := cfg[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
