package model

import "github.com/google/uuid"

// OwnedRecord is implemented by vendor-scoped lookup lists. The owner column differs per table.
type OwnedRecord interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	OwnerColumn() string
	SetOwner(id uuid.UUID)
	GetName() string
}

type CustomLocation struct {
	BaseModel
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	City                 string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	State                string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	CreatedByAdminUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"createdByAdminUserId"`
}

func (*CustomLocation) OwnerColumn() string     { return "created_by_admin_user_id" }
func (l *CustomLocation) SetOwner(id uuid.UUID) { l.CreatedByAdminUserID = id }
func (l *CustomLocation) GetName() string       { return l.Name }

type OutletType struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	AdminUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"adminUserId"`
}

func (*OutletType) OwnerColumn() string     { return "admin_user_id" }
func (o *OutletType) SetOwner(id uuid.UUID) { o.AdminUserID = id }
func (o *OutletType) GetName() string       { return o.Name }

type VendorPosition struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Department  string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	AdminUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"adminUserId"`
}

func (*VendorPosition) OwnerColumn() string     { return "admin_user_id" }
func (p *VendorPosition) SetOwner(id uuid.UUID) { p.AdminUserID = id }
func (p *VendorPosition) GetName() string       { return p.Name }
