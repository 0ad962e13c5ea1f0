package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/lshigami/surveyhub/internal/validation"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials = "Unable to log in with provided credentials."
	msgInvalidToken       = "Invalid token."
	msgRevokedToken       = "Token has been revoked."
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req dto.LoginDTO) (*dto.TokenDTO, error)
	// Authenticate resolves a bearer token into the calling principal.
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
	Logout(ctx context.Context, p *auth.Principal) error
	CurrentUser(ctx context.Context, p *auth.Principal) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, p *auth.Principal, req dto.PasswordChangeDTO) error
	// EnsureAdmin creates the administrator account, or promotes an existing
	// user with that name.
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenManager
	revocations auth.RevocationStore
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, revocations auth.RevocationStore) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, revocations: revocations}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterDTO) (*dto.UserDTO, error) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, apperror.ValidationField("username", "A user with that username already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := model.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Uint("userID", user.ID).Str("username", user.Username).Msg("User registered")
	resp := toUserDTO(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		log.Warn().Str("username", req.Username).Msg("Login failed")
		return nil, apperror.Unauthenticated(msgInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("userID", user.ID).Msg("User logged in")
	return &dto.TokenDTO{Key: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	p, err := s.tokens.Parse(token)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindUnauthenticated, Message: msgInvalidToken, Err: err}
	}
	revoked, err := s.revocations.IsRevoked(ctx, p.TokenID)
	if err != nil {
		return nil, fmt.Errorf("error checking token revocation: %w", err)
	}
	if revoked {
		return nil, apperror.Unauthenticated(msgRevokedToken)
	}

	// Role changes and account removal apply to tokens already issued.
	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperror.Error{Kind: apperror.KindUnauthenticated, Message: msgInvalidToken, Err: err}
		}
		return nil, fmt.Errorf("error loading user %d: %w", p.UserID, err)
	}
	p.Username = user.Username
	p.IsAdmin = user.IsAdmin
	return p, nil
}

func (s *authService) Logout(ctx context.Context, p *auth.Principal) error {
	if !p.Authenticated() {
		return nil
	}
	if err := s.revocations.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	log.Info().Uint("userID", p.UserID).Msg("User logged out")
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, p *auth.Principal) (*dto.UserDTO, error) {
	if !p.Authenticated() {
		return nil, apperror.Unauthenticated("Authentication credentials were not provided.")
	}
	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, apperror.FromLookup(err, "user")
	}
	resp := toUserDTO(*user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, p *auth.Principal, req dto.PasswordChangeDTO) error {
	if !p.Authenticated() {
		return apperror.Unauthenticated("Authentication credentials were not provided.")
	}
	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return apperror.FromLookup(err, "user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return apperror.ValidationField("old_password", "Your old password was entered incorrectly. Please enter it again.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	log.Info().Uint("userID", user.ID).Msg("Password changed")
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if err := validation.Struct(&dto.LoginDTO{Username: username, Password: password}); err != nil {
		return err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.IsAdmin {
			return nil
		}
		user.IsAdmin = true
		if err := s.userRepo.Save(ctx, user); err != nil {
			return fmt.Errorf("failed to promote %s to admin: %w", username, err)
		}
		log.Info().Str("username", username).Msg("Existing user promoted to admin")
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return fmt.Errorf("error fetching admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := model.User{Username: username, PasswordHash: string(hash), IsAdmin: true}
	if err := s.userRepo.Create(ctx, &admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Info().Str("username", username).Msg("Admin user created")
	return nil
}
