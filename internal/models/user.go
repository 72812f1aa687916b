package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleGuide    UserRole = "guide"
	UserRoleAdmin    UserRole = "admin"
	UserRoleOwner    UserRole = "owner"
)

// User is a staff account on the rental dashboard.
type User struct {
	gorm.Model
	Username     string `gorm:"column:username;unique;not null"`
	Email        string `gorm:"column:email;unique;not null"`
	Password     string `gorm:"-:migration"` // Temporary field for password handling
	PasswordHash string `gorm:"column:password_hash;not null"`
	PhoneNumber  string `gorm:"column:phone_number"`
	Role         string `gorm:"column:role;not null;default:'employee'"`
	IsVerified   bool   `gorm:"column:is_verified;default:false"`
	FCMToken     string `gorm:"column:fcm_token;default:''"`

	// ApprovalAlerts controls whether this user is notified about
	// pending price-override approvals.
	ApprovalAlerts bool `gorm:"column:approval_alerts;default:true"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// CanApprove reports whether the user may approve price overrides directly.
func (u *User) CanApprove() bool {
	return u.Role == string(UserRoleAdmin) || u.Role == string(UserRoleOwner)
}
