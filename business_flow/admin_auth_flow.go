package businessflow

import (
	"context"
	"strings"

	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/app/services"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	"github.com/solangehq/maison-api/utils"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthFlow defines operations for back-office authentication.
type AdminAuthFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Me(ctx context.Context, adminID uint) (*dto.AdminDTO, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest, metadata *ClientMetadata) (*dto.SessionDTO, error)
	EnsureSeedAdmin(ctx context.Context, email, password, displayName string) error
}

// AdminAuthFlowImpl implements AdminAuthFlow.
type AdminAuthFlowImpl struct {
	adminRepo    repository.AdminRepository
	tokenService services.TokenService
}

// NewAdminAuthFlow creates a new admin auth flow instance.
func NewAdminAuthFlow(adminRepo repository.AdminRepository, tokenService services.TokenService) AdminAuthFlow {
	return &AdminAuthFlowImpl{
		adminRepo:    adminRepo,
		tokenService: tokenService,
	}
}

// Login authenticates an admin with email and password.
func (f *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}

	admin, err := f.adminRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		// Burn a hash comparison so missing accounts cost the same as
		// wrong passwords.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$12$C6UzMDM.H6dfI/f/IKcEeO7VhI3rN1rr7lU1nNb0aKPb0D0cE1a9S"), []byte(req.Password))
		return nil, NewBusinessError("INVALID_CREDENTIALS", "email or password is incorrect", ErrAdminNotFound)
	}
	if !admin.CanManage() {
		return nil, NewBusinessError("ACCOUNT_INACTIVE", "admin account is inactive", ErrAdminInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "email or password is incorrect", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := f.tokenService.GenerateAdminTokens(admin.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "failed to generate session tokens", err)
	}

	now := utils.UTCNow()
	if err := f.adminRepo.TouchLastLogin(ctx, admin.ID, now); err == nil {
		admin.LastLoginAt = &now
	}

	return &dto.LoginResponse{
		Admin: ToAdminDTO(*admin),
		Session: dto.SessionDTO{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    int(f.tokenService.AccessTokenTTL().Seconds()),
		},
	}, nil
}

// Me returns the authenticated admin's profile.
func (f *AdminAuthFlowImpl) Me(ctx context.Context, adminID uint) (*dto.AdminDTO, error) {
	admin, err := f.adminRepo.ByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.CanManage() {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "admin not found", ErrAdminNotFound)
	}

	out := ToAdminDTO(*admin)
	return &out, nil
}

// Refresh exchanges a refresh token for a new session.
func (f *AdminAuthFlowImpl) Refresh(ctx context.Context, req *dto.RefreshRequest, metadata *ClientMetadata) (*dto.SessionDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}

	accessToken, refreshToken, err := f.tokenService.RefreshAdminToken(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("INVALID_TOKEN", "refresh token is invalid or expired", err)
	}

	return &dto.SessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(f.tokenService.AccessTokenTTL().Seconds()),
	}, nil
}

// EnsureSeedAdmin creates the initial admin account when no account with
// the given email exists. Called at startup with configured credentials.
func (f *AdminAuthFlowImpl) EnsureSeedAdmin(ctx context.Context, email, password, displayName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	existing, err := f.adminRepo.ByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         models.AdminRoleOwner,
		IsActive:     utils.ToPtr(true),
	}
	return f.adminRepo.Save(ctx, &admin)
}
