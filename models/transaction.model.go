package models

import "gorm.io/gorm"

// Transaction is the append-only audit record of admin-initiated token
// grants. Rows are never updated or deleted.
type Transaction struct {
	gorm.Model
	AdminID     uint   `json:"admin_id" gorm:"not null;index"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	TokenTypeID uint   `json:"token_type_id" gorm:"not null"`
	Tokens      int64  `json:"tokens" gorm:"not null"`
	Reason      string `json:"reason" gorm:"type:text"`
}

func (Transaction) TableName() string {
	return "transactions"
}
