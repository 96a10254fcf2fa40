package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffdesk/internal/auth"
	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

const bcryptCost = 12

// AuthService handles registration, login, and the refresh token lifecycle.
// Exactly one refresh token per user is valid at a time; every login,
// refresh, and logout replaces or clears the stored token.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, auth.TokenPair, error)
	Login(ctx context.Context, email, password string) (*model.User, auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password and opens a session.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, auth.TokenPair, error) {
	email = normalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, auth.TokenPair{}, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.TokenPair{}, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, auth.TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleEmployee,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, auth.TokenPair{}, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// Login authenticates credentials and opens a session. Unknown email and
// wrong password produce the same error so the response never reveals
// whether an account exists.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, auth.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, auth.TokenPair{}, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, auth.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh rotates the token pair. The presented token must verify against
// the refresh secret and match the token stored on the user row; anything
// else is treated as an invalid session.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.jwtService.VerifyRefresh(refreshToken)
	if err != nil {
		return auth.TokenPair{}, apperrors.ErrInvalidRefreshToken
	}
	userID, err := claims.SubjectID()
	if err != nil {
		return auth.TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return auth.TokenPair{}, apperrors.ErrInvalidRefreshToken
	}
	if user.RefreshToken != refreshToken {
		// Rotated out: an older token is being replayed.
		return auth.TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	return s.openSession(ctx, user.ID)
}

// Logout clears the stored refresh token when the presented one is valid.
// An unverifiable token is not an error: cookies are cleared by the handler
// regardless.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	userID, err := claims.SubjectID()
	if err != nil {
		return nil
	}
	return s.userRepo.SetRefreshToken(ctx, userID, "")
}

// openSession signs a fresh pair and persists the refresh token, making it
// the single token the user can refresh with.
func (s *authService) openSession(ctx context.Context, userID uuid.UUID) (auth.TokenPair, error) {
	pair, err := s.jwtService.SignPair(userID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("sign token pair: %w", err)
	}
	if err := s.userRepo.SetRefreshToken(ctx, userID, pair.Refresh); err != nil {
		return auth.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	return pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
