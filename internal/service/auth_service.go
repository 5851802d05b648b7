package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"legaldesk/internal/dto"
	"legaldesk/internal/models"
	"legaldesk/internal/repository"
	"legaldesk/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	profiles   ProfileRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(profiles ProfileRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		profiles:   profiles,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates a client account. Staff accounts come from cmd/seed.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	profile, err := s.createProfile(ctx, req.Email, req.Password, req.FullName, models.RoleClient)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(profile)
}

// CreateStaff creates an attorney or admin account.
func (s *AuthService) CreateStaff(ctx context.Context, req *dto.StaffAccount) (*models.Profile, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.createProfile(ctx, req.Email, req.Password, req.FullName, models.Role(req.Role))
}

func (s *AuthService) createProfile(ctx context.Context, email, password, fullName string, role models.Role) (*models.Profile, error) {
	// Hash password
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     optional(fullName),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, storeError("create profile", err)
	}

	s.logger.Info("Profile created",
		zap.String("user_id", profile.ID.String()),
		zap.String("role", string(role)),
	)
	return profile, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profiles.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("get profile", err)
	}

	if !auth.CheckPasswordHash(req.Password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(profile)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("get profile", err)
	}
	return s.issueTokens(profile)
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, caller Caller) (*dto.UserResponse, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, storeError("get profile", err)
	}
	resp := userResponse(profile)
	return &resp, nil
}

func (s *AuthService) issueTokens(profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(profile.ID.String(), profile.Email, string(profile.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(profile.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:         userResponse(profile),
	}, nil
}

func userResponse(p *models.Profile) dto.UserResponse {
	return dto.UserResponse{
		ID:        p.ID.String(),
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
