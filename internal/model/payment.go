package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PaymentCreated = "created"
	PaymentPaid    = "paid"
)

// Payment mirrors one Razorpay order. Amount is in the smallest currency unit (paise).
type Payment struct {
	BaseModel
	AdminUserID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"adminUserId"`
	RazorpayOrderID   string            `gorm:"type:varchar(100);uniqueIndex;not null" json:"razorpayOrderId"`
	RazorpayPaymentID *string           `gorm:"type:varchar(100)" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature *string           `gorm:"type:varchar(255)" json:"-"`
	Amount            int64             `gorm:"not null" json:"amount"`
	Currency          string            `gorm:"type:varchar(10);not null" json:"currency"`
	Receipt           string            `gorm:"type:varchar(100)" json:"receipt"`
	Status            string            `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes             datatypes.JSONMap `json:"notes,omitempty"`
	PaidAt            *time.Time        `json:"paidAt,omitempty"`
}
