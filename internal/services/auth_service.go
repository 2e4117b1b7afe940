package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oakmart/storefront-backend/internal/config"
	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrGrantNotAllowed    = errors.New("admin grant not allowed")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates the identity and provisions its profile in one
// transaction, so read paths never have to create profile rows.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = strings.Split(req.Email, "@")[0]
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Password:     string(hash),
		AuthProvider: "email",
	}
	profile := models.Profile{
		ID:       user.ID,
		Email:    req.Email,
		FullName: fullName,
		Phone:    req.Phone,
		Role:     models.RoleUser,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user, &profile)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profileFor(&user)
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(&user, profile)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.db.Model(&stored).Update("revoked", true).Error; err != nil {
			return nil, fmt.Errorf("failed to revoke expired token: %w", err)
		}
		return nil, ErrInvalidToken
	}

	// Rotate: each refresh token is single-use. If the revocation write fails
	// the old token would stay live, so no new pair is issued.
	if err := s.db.Model(&stored).Update("revoked", true).Error; err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	profile, err := s.profileFor(&user)
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(&user, profile)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// Me returns the caller's identity and profile.
func (s *AuthService) Me(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	profile, err := s.profileFor(&user)
	if err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: profile.FullName,
		Role:     profile.Role,
	}, nil
}

// GrantAdmin promotes the caller to admin. Allowed when no admin exists yet,
// when the caller's email matches the configured bootstrap email, or when the
// bootstrap token matches. After bootstrap the role flag is the only
// authority.
func (s *AuthService) GrantAdmin(userID uuid.UUID, email, adminToken string) error {
	allowed := s.cfg.AdminToken != "" && adminToken == s.cfg.AdminToken

	if !allowed && s.cfg.AdminEmail != "" &&
		strings.EqualFold(email, s.cfg.AdminEmail) {
		allowed = true
	}

	if !allowed {
		// Fail closed: an unanswerable "does an admin exist yet" must not
		// grant the role.
		var count int64
		if err := s.db.Model(&models.Profile{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		allowed = count == 0
	}

	if !allowed {
		return ErrGrantNotAllowed
	}

	result := s.db.Model(&models.Profile{}).Where("id = ?", userID).
		Update("role", models.RoleAdmin)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *AuthService) profileFor(user *models.User) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", user.ID).Error; err != nil {
		return nil, fmt.Errorf("profile missing for user %s: %w", user.ID, err)
	}
	return &profile, nil
}

func (s *AuthService) generateTokenPair(user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
