package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/repositories"
	"github.com/chathuri2/CrickInfo/utils"
)

const passwordResetTokenTTL = time.Hour

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	GeneratePasswordResetToken(ctx context.Context, email string) (*models.User, string, error)
	ResetPasswordByToken(ctx context.Context, token, newPassword string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	emailSvc EmailService
}

func NewAuthService(userRepo repositories.UserRepository, emailSvc EmailService) AuthService {
	return &authService{
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if s.emailSvc != nil {
		// Welcome email failures must not fail registration.
		go s.emailSvc.SendWelcomeEmail(user.Email, user.Username)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (s *authService) GeneratePasswordResetToken(ctx context.Context, email string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("fetching user by email: %w", err)
	}

	token, err := generateRandomToken(32)
	if err != nil {
		return nil, "", fmt.Errorf("generating reset token: %w", err)
	}

	expires := time.Now().Add(passwordResetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExpiresAt = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("storing reset token: %w", err)
	}

	if s.emailSvc != nil {
		go s.emailSvc.SendPasswordResetEmail(user.Email, user.Username, token)
	}

	return user, token, nil
}

func (s *authService) ResetPasswordByToken(ctx context.Context, token, newPassword string) (*models.User, error) {
	if len(newPassword) < 8 {
		return nil, ErrPasswordTooShort
	}

	user, err := s.userRepo.GetByPasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("fetching user by reset token: %w", err)
	}

	if user.PasswordResetExpiresAt == nil || time.Now().After(*user.PasswordResetExpiresAt) {
		return nil, ErrResetTokenInvalid
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = hash
	user.PasswordResetToken = nil
	user.PasswordResetExpiresAt = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating password: %w", err)
	}

	return user, nil
}

func generateRandomToken(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
