// Package user implements account registration, authentication and the
// administrative account operations.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "haven/database/repository/user"
	"haven/models"
	"haven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// sessionDuration is how long an issued token stays valid.
const sessionDuration = 72 * time.Hour

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email already on file.
	ErrEmailTaken = errors.New("email already registered")
)

// RegisterRequest is the wire form of a self-service registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResult carries the account and its freshly issued session token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService is the account API.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateStaff(ctx context.Context, email, fullName, password string, role models.Role, venueID string) (*models.User, error)
	AssignVenue(ctx context.Context, userID, venueID string) error
	DeleteUser(ctx context.Context, userID string) error
}

// DefaultUserService implements UserService over the Mongo user repository
// and the Redis auth cache.
type DefaultUserService struct {
	repo userRepo.UserRepository
}

// NewUserService wires a DefaultUserService.
func NewUserService(repo userRepo.UserRepository) *DefaultUserService {
	return &DefaultUserService{repo: repo}
}

// Register creates a customer account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.repo.Create(ctx, user)
	if errors.Is(err, userRepo.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("User registered", zap.String("userID", user.ID))
	return s.issueSession(ctx, user)
}

// Login verifies credentials and issues a session token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

// issueSession signs a JWT and records its hash in the auth cache so the
// middleware can verify the token was not revoked.
func (s *DefaultUserService) issueSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	cacheKey := utils.AuthCachePrefix + user.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, utils.HashToken(token), sessionDuration).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Logout drops the cached session, invalidating any outstanding token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	return utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err()
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateFCMToken stores the device token used for push notifications.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.repo.SetFCMToken(ctx, userID, token)
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// CreateStaff provisions an owner or admin account. Owners are bound to the
// venue whose bookings they will manage.
func (s *DefaultUserService) CreateStaff(ctx context.Context, email, fullName, password string, role models.Role, venueID string) (*models.User, error) {
	if role != models.RoleOwner && role != models.RoleAdmin {
		return nil, fmt.Errorf("staff role must be owner or admin, got %q", role)
	}
	if role == models.RoleOwner && venueID == "" {
		return nil, fmt.Errorf("owner accounts require an assigned venue")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:            uuid.New().String(),
		Email:         strings.ToLower(strings.TrimSpace(email)),
		FullName:      fullName,
		PasswordHash:  string(hash),
		Role:          role,
		VenueAssigned: venueID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = s.repo.Create(ctx, user)
	if errors.Is(err, userRepo.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Staff account created",
		zap.String("userID", user.ID),
		zap.String("role", string(role)),
		zap.String("venueID", venueID))
	return user, nil
}

// AssignVenue rebinds an owner to a different venue.
func (s *DefaultUserService) AssignVenue(ctx context.Context, userID, venueID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleOwner {
		return fmt.Errorf("only owner accounts can be assigned a venue")
	}
	return s.repo.AssignVenue(ctx, userID, venueID)
}

// DeleteUser removes an account and revokes its session.
func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	return s.Logout(ctx, userID)
}
