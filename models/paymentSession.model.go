package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentSessionStatus defines the local state of a hosted checkout session
type PaymentSessionStatus string

const (
	PaymentSessionCreated  PaymentSessionStatus = "created"
	PaymentSessionCredited PaymentSessionStatus = "credited"
	PaymentSessionExpired  PaymentSessionStatus = "expired"
)

// PaymentSession tracks each hosted checkout session we created, so
// that verification of the same session id can never credit twice.
type PaymentSession struct {
	gorm.Model
	SessionID   string               `json:"session_id" gorm:"uniqueIndex;not null"`
	Reference   string               `json:"reference" gorm:"type:varchar(40)"` // internal reference passed to the provider
	UserID      uint                 `json:"user_id" gorm:"not null;index"`
	TokenTypeID uint                 `json:"token_type_id" gorm:"not null"`
	Tokens      int64                `json:"tokens" gorm:"not null"`
	Amount      float64              `json:"amount" gorm:"not null"` // paid currency amount
	Status      PaymentSessionStatus `json:"status" gorm:"type:varchar(20);default:'created';index"`
	CreditedAt  *time.Time           `json:"credited_at"`
}

func (PaymentSession) TableName() string {
	return "payment_sessions"
}
