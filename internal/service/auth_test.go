package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vinculocrm/vinculo/internal/auth"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/mocks"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/service"
)

func TestAuthLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	profileID := uuid.New()

	hasher := auth.NewPasswordHasher()
	hash, _ := hasher.Hash("correct_password")

	profile := &model.Profile{
		ID:             profileID,
		OrganizationID: orgID,
		Email:          "admin@example.com",
		FullName:       "Admin",
		Role:           model.RoleAdmin,
		PasswordHash:   hash,
	}

	newService := func(profileRepo *mocks.MockProfileRepositoryIface, orgRepo *mocks.MockOrganizationRepositoryIface) *service.AuthService {
		return service.NewAuthService(profileRepo, orgRepo, hasher, auth.NewTokenManager("test_secret", time.Hour))
	}

	t.Run("successful login returns profile and token", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		profileRepo.EXPECT().
			FindByEmail(gomock.Any(), profile.Email).
			Return(profile, nil)

		svc := newService(profileRepo, orgRepo)
		out, err := svc.Login(context.Background(), service.LoginInput{
			Email:    profile.Email,
			Password: "correct_password",
		})

		assert.NoError(t, err)
		assert.Equal(t, profile, out.Profile)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("wrong password maps to invalid credentials", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		profileRepo.EXPECT().
			FindByEmail(gomock.Any(), profile.Email).
			Return(profile, nil)

		svc := newService(profileRepo, orgRepo)
		_, err := svc.Login(context.Background(), service.LoginInput{
			Email:    profile.Email,
			Password: "wrong_password",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		profileRepo.EXPECT().
			FindByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, domain.ErrProfileNotFound)

		svc := newService(profileRepo, orgRepo)
		_, err := svc.Login(context.Background(), service.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthCreateAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()

	t.Run("creates organization with admin role", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().
			CreateWithAdmin(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, org *model.Organization, admin *model.Profile) error {
				assert.Equal(t, "Acme Ltda", org.Name)
				assert.Equal(t, model.RoleAdmin, admin.Role)
				assert.NotEmpty(t, admin.PasswordHash)
				return nil
			})

		svc := service.NewAuthService(profileRepo, orgRepo, hasher, auth.NewTokenManager("test_secret", time.Hour))
		out, err := svc.CreateAdmin(context.Background(), service.CreateAdminInput{
			CompanyName: "Acme Ltda",
			Email:       "admin@acme.example",
			Password:    "s3cure-pass",
		})

		assert.NoError(t, err)
		assert.NotNil(t, out.Organization)
		assert.NotNil(t, out.Profile)
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().
			CreateWithAdmin(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.ErrEmailAlreadyExists)

		svc := service.NewAuthService(profileRepo, orgRepo, hasher, auth.NewTokenManager("test_secret", time.Hour))
		_, err := svc.CreateAdmin(context.Background(), service.CreateAdminInput{
			CompanyName: "Acme Ltda",
			Email:       "admin@acme.example",
			Password:    "s3cure-pass",
		})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		svc := service.NewAuthService(profileRepo, orgRepo, hasher, auth.NewTokenManager("test_secret", time.Hour))
		_, err := svc.CreateAdmin(context.Background(), service.CreateAdminInput{
			CompanyName: "Acme Ltda",
			Email:       "admin@acme.example",
			Password:    "abc",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
