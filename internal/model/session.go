package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminSession is a login session rooted at an AdminUser. At most one exists per admin.
type AdminSession struct {
	BaseModel
	Token       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"sessionToken"`
	AdminUserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"adminUserId"`
	AdminUser   *AdminUser `gorm:"foreignKey:AdminUserID" json:"-"`
	DeviceInfo  *string    `gorm:"type:text" json:"deviceInfo,omitempty"`
	ExpiresAt   time.Time  `gorm:"not null;index" json:"expiresAt"`
}

// UserSession is a login session rooted at an end-user.
type UserSession struct {
	BaseModel
	Token      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"sessionToken"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	DeviceInfo *string   `gorm:"type:text" json:"deviceInfo,omitempty"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expiresAt"`
}
