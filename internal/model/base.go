package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the UUID primary key and timestamps shared by every table.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID unless the caller already chose one.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

func (base *BaseModel) GetID() uuid.UUID   { return base.ID }
func (base *BaseModel) SetID(id uuid.UUID) { base.ID = id }

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&AdminUser{},
		&User{},
		&AdminSession{},
		&UserSession{},
		&CandidateStatus{},
		&Hr{},
		&Candidate{},
		&AdminMenuPermission{},
		&HrMenuPermission{},
		&CustomLocation{},
		&OutletType{},
		&VendorPosition{},
		&Payment{},
	}
}
