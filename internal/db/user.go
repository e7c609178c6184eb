package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RoleAdmin is the only role the CMS currently understands.
const RoleAdmin = "admin"

// User is an account that can sign in to the admin panel.
type User struct {
	gorm.Model
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// UserRole grants a role to a user. Access to the CMS requires an admin
// role row; a bare account can sign in but sees nothing.
type UserRole struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_user_roles_user_role"`
	Role      string `gorm:"size:32;uniqueIndex:idx_user_roles_user_role"`
	CreatedAt time.Time
}

// TableName pins the table name.
func (UserRole) TableName() string {
	return "user_roles"
}

// EnsureAdminUser creates a bcrypt-hashed admin account with the admin role
// when the given credentials are non-empty and the email is not taken.
func EnsureAdminUser(email, password string) error {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	err := DB.Where("email = ?", trimmedEmail).First(&existing).Error
	switch {
	case err == nil:
		return ensureAdminRole(existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{Email: trimmedEmail, Password: string(hashed)}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	return ensureAdminRole(user.ID)
}

func ensureAdminRole(userID uint) error {
	var role UserRole
	err := DB.Where("user_id = ? AND role = ?", userID, RoleAdmin).First(&role).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return DB.Create(&UserRole{UserID: userID, Role: RoleAdmin}).Error
}
