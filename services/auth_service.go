package services

import (
	"context"
	"errors"
	"strings"

	"ecotaste-backend/models"
	"ecotaste-backend/utils"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RecoveryMailer delivers the one-time recovery key after registration.
type RecoveryMailer interface {
	SendRecoveryKeyEmail(ctx context.Context, to, key string) error
}

// AuthService handles registration and login. Credentials live only here:
// passwords as bcrypt hashes, recovery keys as SHA-256 digests.
type AuthService struct {
	db     *gorm.DB
	mailer RecoveryMailer // may be nil when SES is not configured
	log    zerolog.Logger
}

func NewAuthService(db *gorm.DB, mailer RecoveryMailer, log zerolog.Logger) *AuthService {
	return &AuthService{db: db, mailer: mailer, log: log}
}

// Register creates the account with a fresh stats row and returns the
// recovery key. The key is shown to the caller exactly once.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string, role models.UserRole) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !role.IsValid() {
		return "", errors.New("role must be student or cafeteria")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}
	recoveryKey, err := utils.GenerateRecoveryKey()
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:           email,
		Password:        hashed,
		FullName:        fullName,
		Role:            role,
		RecoveryKeyHash: utils.SHA256Hex(recoveryKey),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserStats{UserID: user.ID}).Error
	})
	if err != nil {
		return "", err
	}

	if s.mailer != nil {
		if err := s.mailer.SendRecoveryKeyEmail(ctx, email, recoveryKey); err != nil {
			// Best effort: the key was already returned to the caller.
			s.log.Warn().Err(err).Str("email", email).Msg("recovery key email failed")
		}
	}

	return recoveryKey, nil
}

// Login verifies the password and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(user.ID, user.Email, user.Role)
}

// Profile returns the account without its credential fields.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	user.Password = ""
	user.RecoveryKeyHash = ""
	return &user, nil
}
