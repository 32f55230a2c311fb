package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/metrics"
	"github.com/samedayramps/app-samedayramps/internal/util"
)

// AuthService implements staff authentication
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginResult carries a successful login response
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates a staff member by email and password and returns a
// bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	log.Printf("[AUTH] Login attempt for user: %s", email)

	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: user '%s' not found", email)
			metrics.RecordAuthAttempt(false)
			return nil, unauthorized("incorrect email or password")
		}
		log.Printf("[AUTH] Login failed: database error for user '%s': %v", email, err)
		metrics.RecordAuthAttempt(false)
		return nil, internal("login failed", err)
	}

	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", email)
		metrics.RecordAuthAttempt(false)
		return nil, unauthorized("incorrect email or password")
	}

	if !user.IsActive {
		log.Printf("[AUTH] Login failed: user '%s' is inactive", email)
		metrics.RecordAuthAttempt(false)
		return nil, unauthorized("user account is inactive")
	}

	// Update last login
	now := time.Now()
	user.LastLogin = &now
	s.db.WithContext(ctx).Save(&user)

	// Generate token
	token, err := util.GenerateToken(&user)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", email, err)
		return nil, internal("failed to generate token", err)
	}

	log.Printf("[AUTH] Login successful for user '%s' (id=%d, admin=%v, staff=%v)", email, user.ID, user.IsAdmin, user.IsStaff)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// CreateUserInput carries a staff user creation request
type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
	IsStaff  bool   `json:"is_staff"`
}

// CreateUser registers a new staff member
func (s *AuthService) CreateUser(ctx context.Context, in *CreateUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	password := strings.TrimSpace(in.Password)

	log.Printf("[AUTH] CreateUser request: email=%s", email)

	ve := NewValidationError()
	if !emailRegex.MatchString(email) {
		ve.Add("email", "Invalid email address")
	}
	if len(password) < 8 {
		ve.Add("password", "Password must be at least 8 characters")
	}
	if ve.HasErrors() {
		log.Printf("[AUTH] CreateUser failed: validation error: %v", ve)
		return nil, ve
	}

	// Check if email exists
	var existingUser domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Printf("[AUTH] CreateUser failed: email '%s' already exists", email)
		return nil, conflict("email already registered")
	}

	// Hash password
	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		log.Printf("[AUTH] CreateUser failed: password hashing error: %v", err)
		return nil, internal("failed to hash password", err)
	}

	// Create user
	user := domain.User{
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       in.IsActive,
		IsAdmin:        in.IsAdmin,
		IsStaff:        in.IsStaff,
	}
	if fullName := strings.TrimSpace(in.FullName); fullName != "" {
		user.FullName = &fullName
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Printf("[AUTH] CreateUser failed: database error: %v", err)
		return nil, internal("failed to create user", err)
	}

	log.Printf("[AUTH] CreateUser successful: email=%s, id=%d", email, user.ID)
	return &user, nil
}

// GetUserByEmail returns a staff member by email
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
