// internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vinculocrm/vinculo/internal/auth"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/repository"
)

type AuthService struct {
	profileRepo    repository.ProfileRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	validate       *validator.Validate
}

func NewAuthService(
	profileRepo repository.ProfileRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *AuthService {
	return &AuthService{
		profileRepo:    profileRepo,
		orgRepo:        orgRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		validate:       validator.New(),
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	Profile *model.Profile `json:"profile"`
	Token   string         `json:"token"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	profile, err := s.profileRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.passwordHasher.Verify(input.Password, profile.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !verified {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Generate(profile.ID.String(), profile.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{Profile: profile, Token: token}, nil
}

type CreateAdminInput struct {
	CompanyName string `json:"companyName" validate:"required,min=2,max=160"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

type CreateAdminOutput struct {
	Organization *model.Organization `json:"organization"`
	Profile      *model.Profile      `json:"profile"`
}

// CreateAdmin provisions an organization together with its first admin
// account. Both the installer and the seed-admin CLI flow through here.
func (s *AuthService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*CreateAdminOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	org := &model.Organization{Name: strings.TrimSpace(input.CompanyName)}
	admin := &model.Profile{
		Email:        strings.TrimSpace(input.Email),
		FullName:     strings.TrimSpace(input.CompanyName) + " Admin",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	}

	if err := s.orgRepo.CreateWithAdmin(ctx, org, admin); err != nil {
		return nil, err
	}

	return &CreateAdminOutput{Organization: org, Profile: admin}, nil
}

// FindProfile resolves a caller's profile by id, used by the identity
// middleware on every authenticated request.
func (s *AuthService) FindProfile(ctx context.Context, id string) (*model.Profile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return s.profileRepo.FindByID(ctx, uid)
}
