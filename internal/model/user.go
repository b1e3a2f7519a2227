package model

import (
	"golang.org/x/crypto/bcrypt"
)

// AdminUser is a back-office account: a vendor (tenant) or a super admin.
type AdminUser struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Name     string `gorm:"type:varchar(255)" json:"name"`
	// Role is nullable on legacy rows; readers fall back to vendor.
	Role     string `gorm:"type:varchar(20)" json:"role"`
	Avatar   string `gorm:"type:varchar(500)" json:"avatar,omitempty"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

// EffectiveRole resolves the stored role, treating an empty value as vendor.
func (a *AdminUser) EffectiveRole() Role {
	if a.Role == "" {
		return RoleVendor
	}
	return Role(a.Role)
}

func (a *AdminUser) SetPassword(password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return nil
}

func (a *AdminUser) CheckPassword(password string) bool {
	return checkPassword(a.Password, password)
}

// User is an end-user (job seeker) account. It has no role column.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Phone    string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Avatar   string `gorm:"type:varchar(500)" json:"avatar,omitempty"`
}

func (u *User) SetPassword(password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return checkPassword(u.Password, password)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
