package service

import (
	"errors"
	"strings"
	"time"

	"github.com/infoshqip/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// MaxFailedLogins is the number of failed attempts per email before
	// the account is temporarily locked out.
	MaxFailedLogins = 5
	// LoginAttemptWindow is how far back failed attempts are counted.
	LoginAttemptWindow = 15 * time.Minute
)

// AuthService verifies admin credentials and enforces the per-email
// login rate limit.
type AuthService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAuthService creates an AuthService instance.
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb, now: time.Now}
}

// WithNow overrides the clock, used by tests.
func (s *AuthService) WithNow(now func() time.Time) *AuthService {
	if now != nil {
		s.now = now
	}
	return s
}

// Authenticate checks the password for the given email. The rate limit
// is consulted first, so a locked-out email fails without revealing
// whether the credentials were correct. Every outcome is recorded as a
// login attempt.
func (s *AuthService) Authenticate(email, password string) (*db.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	limited, err := s.IsRateLimited(email)
	if err != nil {
		return nil, err
	}
	if limited {
		return nil, ErrTooManyAttempts
	}

	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if recordErr := s.RecordAttempt(email, false); recordErr != nil {
				return nil, recordErr
			}
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if recordErr := s.RecordAttempt(email, false); recordErr != nil {
			return nil, recordErr
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.RecordAttempt(email, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// IsRateLimited reports whether the email has reached the failed
// attempt threshold within the current window.
func (s *AuthService) IsRateLimited(email string) (bool, error) {
	cutoff := s.now().UTC().Add(-LoginAttemptWindow)

	var failures int64
	if err := s.db.Model(&db.LoginAttempt{}).
		Where("email = ? AND success = ? AND created_at >= ?", normalizeEmail(email), false, cutoff).
		Count(&failures).Error; err != nil {
		return false, err
	}
	return failures >= MaxFailedLogins, nil
}

// RecordAttempt stores a login attempt outcome for rate limiting.
func (s *AuthService) RecordAttempt(email string, success bool) error {
	attempt := db.LoginAttempt{
		Email:     normalizeEmail(email),
		Success:   success,
		CreatedAt: s.now().UTC(),
	}
	return s.db.Create(&attempt).Error
}

// IsAdmin reports whether the user carries the admin role.
func (s *AuthService) IsAdmin(userID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&db.UserRole{}).
		Where("user_id = ? AND role = ?", userID, db.RoleAdmin).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUser fetches a user by id, used to resolve the session identity.
func (s *AuthService) GetUser(userID uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
